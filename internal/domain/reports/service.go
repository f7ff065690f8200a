package reports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/expiry"
)

type Service struct {
	store *Store
	now   func() time.Time
}

func NewService(store *Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) window() (time.Time, time.Time) {
	today := s.now()
	from := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return from, from.AddDate(0, 0, expiry.FollowUpDays)
}

func (s *Service) Dashboard(ctx context.Context) (*Stats, error) {
	from, to := s.window()
	return s.store.Counts(ctx, from, to)
}

func (s *Service) UrgentProbations(ctx context.Context) ([]UrgentProbation, error) {
	from, to := s.window()
	return s.store.UrgentProbations(ctx, from, to)
}

func (s *Service) UrgentContracts(ctx context.Context) ([]UrgentContract, error) {
	from, to := s.window()
	return s.store.UrgentContracts(ctx, from, to)
}

// ExpiringContractsPDF renders the urgent-contracts panel as a simple
// tabular PDF for offline follow-up.
func (s *Service) ExpiringContractsPDF(ctx context.Context) ([]byte, error) {
	contracts, err := s.UrgentContracts(ctx)
	if err != nil {
		return nil, err
	}
	today := s.now()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Expiring Contracts")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s, next %d days", today.Format("2006-01-02"), expiry.FollowUpDays))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(35, 8, "Contract", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, "Employee", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Department", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "End Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Days Left", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, c := range contracts {
		end := c.EndDate
		_, days := expiry.Classify(&end, today, expiry.ContractThresholds)
		pdf.CellFormat(35, 7, c.ContractNumber, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, c.EmployeeName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, c.Department, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, end.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", days), "1", 1, "R", false, 0, "")
	}
	if len(contracts) == 0 {
		pdf.Cell(0, 8, "No contracts expire inside the follow-up window.")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
