// Package reports renders the printable daily reservation sheet used at the
// host stand.
package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/yeremiapane/restaurant-reservations/models"
)

var sheetHeader = []string{"Time", "Name", "Mobile", "People", "Status", "Note"}

// column widths in mm for the PDF layout
var sheetWidths = []float64{18, 48, 34, 16, 22, 52}

func row(r models.Reservation) []string {
	return []string{
		r.ReservationTime,
		r.FirstName + " " + r.LastName,
		r.MobileNumber,
		strconv.Itoa(r.People),
		r.Status,
		r.Note,
	}
}

// WriteCSV writes one line per reservation after a header line.
func WriteCSV(w io.Writer, reservations []models.Reservation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sheetHeader); err != nil {
		return err
	}
	for _, r := range reservations {
		if err := cw.Write(row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePDF renders an A4 sheet listing the reservations for date.
func WritePDF(w io.Writer, date string, reservations []models.Reservation) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Reservations "+date, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Reservations for "+date, "", 1, "L", false, 0, "")

	covers := 0
	for _, r := range reservations {
		covers += r.People
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d reservations, %d covers", len(reservations), covers), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range sheetHeader {
		pdf.CellFormat(sheetWidths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, r := range reservations {
		for i, cell := range row(r) {
			pdf.CellFormat(sheetWidths[i], 7, tr(truncate(cell, 30)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
