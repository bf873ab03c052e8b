package statistics

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// OverviewReportPDF renders the statistics overview and the top-employee
// table into a PDF, streamed back to the caller rather than written to
// disk.
func (s *Service) OverviewReportPDF(ctx context.Context) ([]byte, error) {
	overview, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.TopEmployees(ctx)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Evaluation Statistics")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employees: %d", overview.TotalEmployees))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Evaluated: %d", overview.EvaluatedEmployees))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Average score: %.1f", overview.AverageScore))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Rated excellent: %d", overview.ExcellentEmployees))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(40, 10, "Top employees")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(12, 8, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 8, "Name", "1", 0, "", false, 0, "")
	pdf.CellFormat(45, 8, "Position", "1", 0, "", false, 0, "")
	pdf.CellFormat(45, 8, "Department", "1", 0, "", false, 0, "")
	pdf.CellFormat(25, 8, "Score", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, entry := range top {
		pdf.CellFormat(12, 8, fmt.Sprintf("%d", entry.Rank), "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 8, entry.FullName, "1", 0, "", false, 0, "")
		pdf.CellFormat(45, 8, entry.Position, "1", 0, "", false, 0, "")
		pdf.CellFormat(45, 8, entry.DepartmentName, "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%.1f", entry.AverageScore), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
