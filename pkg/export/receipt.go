package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Receipt holds the fields rendered onto a payment receipt.
type Receipt struct {
	Reference       string
	TrainingProgram string
	CustomerName    string
	CustomerEmail   string
	Amount          string
	Currency        string
	PaidAt          *time.Time
	TransactionID   string
}

// ReceiptRenderer renders completed-payment receipts as PDF documents.
type ReceiptRenderer struct {
	companyName string
}

// NewReceiptRenderer constructs a renderer stamped with the company name.
func NewReceiptRenderer(companyName string) *ReceiptRenderer {
	if companyName == "" {
		companyName = "Elevate Careers"
	}
	return &ReceiptRenderer{companyName: companyName}
}

// Render produces the receipt PDF bytes.
func (r *ReceiptRenderer) Render(receipt Receipt) ([]byte, error) {
	if receipt.Reference == "" {
		return nil, fmt.Errorf("receipt requires a payment reference")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, r.companyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, "Payment Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	rows := [][2]string{
		{"Reference", receipt.Reference},
		{"Training Program", receipt.TrainingProgram},
		{"Customer", receipt.CustomerName},
		{"Email", receipt.CustomerEmail},
		{"Amount", fmt.Sprintf("%s %s", receipt.Amount, receipt.Currency)},
	}
	if receipt.TransactionID != "" {
		rows = append(rows, [2]string{"Transaction ID", receipt.TransactionID})
	}
	if receipt.PaidAt != nil {
		rows = append(rows, [2]string{"Paid At", receipt.PaidAt.UTC().Format("2006-01-02 15:04 MST")})
	}

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(50, 8, row[0], "1", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(130, 8, row[1], "1", 1, "", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", time.Now().UTC().Format("2006-01-02 15:04 MST")), "", 1, "", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
