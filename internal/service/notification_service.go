package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/elevate-careers-api/internal/models"
	"github.com/noah-isme/elevate-careers-api/internal/notify"
	"github.com/noah-isme/elevate-careers-api/pkg/config"
	"github.com/noah-isme/elevate-careers-api/pkg/jobs"
)

const (
	jobTypeEnrollment    = "enrollment_notification"
	jobTypeDiscoveryCall = "discovery_call_notification"
	jobTypeTalentPool    = "talent_pool_notification"
)

// NotificationService dispatches notifications through a background
// queue. Dispatch methods return immediately; delivery outcomes are
// only logged. A nil NotificationService is safe to call and does
// nothing.
type NotificationService struct {
	queue    *jobs.Queue
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewNotificationService wires the notifier behind a worker queue.
// Returns nil when notifications are disabled.
func NewNotificationService(cfg config.NotificationsConfig, notifier notify.Notifier, logger *zap.Logger) *NotificationService {
	if !cfg.Enabled {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &NotificationService{notifier: notifier, logger: logger}
	s.queue = jobs.NewQueue("notifications", s.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		BufferSize: cfg.BufferSize,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return s
}

// Start begins background delivery.
func (s *NotificationService) Start(ctx context.Context) {
	if s == nil {
		return
	}
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *NotificationService) Stop() {
	if s == nil {
		return
	}
	s.queue.Stop()
}

// DispatchEnrollment queues enrollment notifications.
func (s *NotificationService) DispatchEnrollment(enrollment *models.TrainingEnrollment) {
	s.enqueue(jobTypeEnrollment, enrollment)
}

// DispatchDiscoveryCall queues discovery call notifications.
func (s *NotificationService) DispatchDiscoveryCall(call *models.DiscoveryCall) {
	s.enqueue(jobTypeDiscoveryCall, call)
}

// DispatchTalentPool queues talent pool notifications.
func (s *NotificationService) DispatchTalentPool(profile *models.TalentProfile) {
	s.enqueue(jobTypeTalentPool, profile)
}

func (s *NotificationService) enqueue(jobType string, payload interface{}) {
	if s == nil {
		return
	}
	job := jobs.Job{ID: uuid.NewString(), Type: jobType, Payload: payload}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warn("failed to enqueue notification",
			zap.String("type", jobType), zap.Error(err))
	}
}

func (s *NotificationService) handle(_ context.Context, job jobs.Job) error {
	var result notify.Result

	switch job.Type {
	case jobTypeEnrollment:
		enrollment, ok := job.Payload.(*models.TrainingEnrollment)
		if !ok {
			return fmt.Errorf("unexpected payload for %s", job.Type)
		}
		result = s.notifier.NotifyEnrollment(enrollment)
	case jobTypeDiscoveryCall:
		call, ok := job.Payload.(*models.DiscoveryCall)
		if !ok {
			return fmt.Errorf("unexpected payload for %s", job.Type)
		}
		result = s.notifier.NotifyDiscoveryCall(call)
	case jobTypeTalentPool:
		profile, ok := job.Payload.(*models.TalentProfile)
		if !ok {
			return fmt.Errorf("unexpected payload for %s", job.Type)
		}
		result = s.notifier.NotifyTalentPool(profile)
	default:
		s.logger.Warn("unknown notification job type", zap.String("type", job.Type))
		return nil
	}

	s.logger.Info("notification processed",
		zap.String("type", job.Type),
		zap.Bool("candidate_sent", result.CandidateSent),
		zap.Bool("company_sent", result.CompanySent))
	return nil
}
