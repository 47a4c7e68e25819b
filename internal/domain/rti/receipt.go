package rti

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// ConfirmationPDF renders a one-page filing confirmation for an already
// generated submission: who it was filed for, which period, how many
// employees, and the embedded IRmark so the document on record can be matched
// against the gateway acknowledgement.
func (s *Service) ConfirmationPDF(result *FpsResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Full Payment Submission Confirmation")
	pdf.Ln(14)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("PAYE reference: %s/%s", s.employer.TaxOfficeNumber, s.employer.TaxOfficeReference))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Accounts office reference: %s", s.employer.AccountsOfficeReference))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Tax year: %s, period %d", result.TaxYear, result.TaxPeriod))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Employees included: %d", result.EmployeeCount))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Generated at: %s", result.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))
	pdf.Ln(10)
	pdf.SetFont("Courier", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("IRmark: %s", result.IRmark))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
