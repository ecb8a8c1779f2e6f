package report

import (
	"bytes"
	"fmt"

	"sparkwash-api/internal/pkg/errs"
	"sparkwash-api/internal/usecase/queries"

	"github.com/phpdave11/gofpdf"
)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// SummaryPDFRenderer renders the manager's monthly bookings summary as a
// one-page A4 document.
type SummaryPDFRenderer struct{}

func NewSummaryPDFRenderer() *SummaryPDFRenderer {
	return &SummaryPDFRenderer{}
}

func (r *SummaryPDFRenderer) Render(locationName string, year, month int, rows []*queries.ServiceSummaryRow) ([]byte, string, error) {
	if month < 1 || month > 12 {
		return nil, "", errs.New("month out of range")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Monthly Bookings Summary", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "MONTHLY BOOKINGS SUMMARY")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Location : "+locationName)
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Period   : %s %d", monthNames[month-1], year))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(120, 8, "Service")
	pdf.Cell(0, 8, "Bookings")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 11)
	total := 0
	for _, row := range rows {
		pdf.Cell(120, 7, row.ServiceName)
		pdf.Cell(0, 7, fmt.Sprintf("%d", row.Bookings))
		pdf.Ln(7)
		total += row.Bookings
	}
	if len(rows) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 7, "No completed bookings this month.")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(120, 8, "Total")
	pdf.Cell(0, 8, fmt.Sprintf("%d", total))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", errs.Wrap(err, "failed to render summary pdf")
	}

	filename := fmt.Sprintf("summary_%04d-%02d.pdf", year, month)
	return buf.Bytes(), filename, nil
}
