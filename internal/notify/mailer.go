package notify

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/noah-isme/elevate-careers-api/internal/models"
	"github.com/noah-isme/elevate-careers-api/pkg/config"
)

// Result reports which of the two notification legs went out.
type Result struct {
	CandidateSent bool `json:"candidate_sent"`
	CompanySent   bool `json:"company_sent"`
}

// Notifier delivers best-effort notifications. Implementations never
// propagate delivery failures to callers; they log and report them in
// the Result only.
type Notifier interface {
	NotifyEnrollment(enrollment *models.TrainingEnrollment) Result
	NotifyDiscoveryCall(call *models.DiscoveryCall) Result
	NotifyTalentPool(profile *models.TalentProfile) Result
}

// Mailer sends notifications over SMTP.
type Mailer struct {
	cfg    config.EmailConfig
	dialer *gomail.Dialer
	logger *zap.Logger
}

// NewMailer constructs a Mailer. With missing credentials it still
// constructs but every send is skipped and logged.
func NewMailer(cfg config.EmailConfig, logger *zap.Logger) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	var dialer *gomail.Dialer
	if cfg.Configured() {
		dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return &Mailer{cfg: cfg, dialer: dialer, logger: logger}
}

// NotifyEnrollment emails the candidate a confirmation and the company
// an alert about a new enrollment.
func (m *Mailer) NotifyEnrollment(enrollment *models.TrainingEnrollment) Result {
	reference := ""
	if enrollment.PaymentReference != nil {
		reference = *enrollment.PaymentReference
	}
	candidateBody := fmt.Sprintf(
		"Hi %s,\n\nThank you for enrolling in %s.\nStatus: %s\nPayment status: %s\n",
		enrollment.FullName(), enrollment.TrainingProgram, enrollment.EnrollmentStatus, enrollment.PaymentStatus)
	if reference != "" {
		candidateBody += fmt.Sprintf("Payment reference: %s\nCurrency: %s\n", reference, enrollment.Currency)
	}
	companyBody := fmt.Sprintf(
		"New training enrollment\n\nName: %s\nEmail: %s\nPhone: %s\nCountry: %s\nProgram: %s\nPrice: %g %s\nReference: %s\n",
		enrollment.FullName(), enrollment.Email, enrollment.Phone, enrollment.Country,
		enrollment.TrainingProgram, enrollment.Price, enrollment.Currency, reference)

	return Result{
		CandidateSent: m.send(enrollment.Email, "Enrollment Confirmation: "+enrollment.TrainingProgram, candidateBody),
		CompanySent:   m.send(m.cfg.CompanyRecipient, "New Enrollment: "+enrollment.TrainingProgram, companyBody),
	}
}

// NotifyDiscoveryCall emails the requester an acknowledgement and the
// company the request details.
func (m *Mailer) NotifyDiscoveryCall(call *models.DiscoveryCall) Result {
	clientBody := fmt.Sprintf(
		"Hi %s,\n\nWe received your discovery call request for %s. Our team will reach out shortly.\n",
		call.Name, call.Service)
	companyBody := fmt.Sprintf(
		"New discovery call request\n\nName: %s\nBusiness: %s\nEmail: %s\nPhone: %s\nService: %s\nRequirements: %s\n",
		call.Name, call.BusinessName, call.Email, call.Phone, call.Service, call.Requirements)

	return Result{
		CandidateSent: m.send(call.Email, "Discovery Call Request Received", clientBody),
		CompanySent:   m.send(m.cfg.CompanyRecipient, "New Discovery Call: "+call.Service, companyBody),
	}
}

// NotifyTalentPool emails the candidate a registration confirmation and
// the company the profile summary.
func (m *Mailer) NotifyTalentPool(profile *models.TalentProfile) Result {
	candidateBody := fmt.Sprintf(
		"Hi %s,\n\nYour talent pool registration was received and is under review.\n",
		profile.FullName)
	companyBody := fmt.Sprintf(
		"New talent pool registration\n\nName: %s\nEmail: %s\nCountry: %s\nField: %s\nLevel: %s\nSkills: %s\n",
		profile.FullName, profile.Email, profile.Country, profile.FieldOfExperience,
		profile.ExperienceLevel, strings.Join(profile.Skills, ", "))

	return Result{
		CandidateSent: m.send(profile.Email, "Talent Pool Registration Received", candidateBody),
		CompanySent:   m.send(m.cfg.CompanyRecipient, "New Talent Pool Profile: "+profile.FullName, companyBody),
	}
}

func (m *Mailer) send(to, subject, body string) bool {
	if to == "" {
		return false
	}
	if m.dialer == nil {
		m.logger.Warn("mailer not configured, skipping notification", zap.String("to", to), zap.String("subject", subject))
		return false
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("failed to send notification", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return false
	}
	return true
}
