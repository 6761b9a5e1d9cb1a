package ticket

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PageRenderer renders resolved pages into a single growing document. The
// exporter drives it strictly sequentially; implementations need no
// internal locking. Output finalizes the document.
type PageRenderer interface {
	AddPage(data *PageData, qr []byte) error
	Output() ([]byte, error)
}

// RendererFactory produces a fresh renderer for one export run
type RendererFactory func() PageRenderer

// pdfRenderer draws boarding-pass pages onto A4 PDF pages
type pdfRenderer struct {
	pdf   *gofpdf.Fpdf
	pages int
}

// NewPDFRenderer returns a PageRenderer backed by an A4 portrait PDF
func NewPDFRenderer() PageRenderer {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	return &pdfRenderer{pdf: pdf}
}

// Boarding pass frame, in mm on the A4 page
const (
	passX = 15.0
	passY = 40.0
	passW = 180.0
	passH = 110.0
)

func (r *pdfRenderer) AddPage(data *PageData, qr []byte) error {
	r.pages++
	pdf := r.pdf
	pdf.AddPage()

	// Outer frame
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.4)
	pdf.Rect(passX, passY, passW, passH, "D")

	// Header bar with airline branding
	pdf.SetFillColor(18, 52, 97)
	pdf.Rect(passX, passY, passW, 16, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(passX+4, passY+4)
	pdf.CellFormat(100, 8, data.AirlineName, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(passX+106, passY+4)
	pdf.CellFormat(28, 8, data.AirlineCode, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(passX+passW-44, passY+4)
	pdf.CellFormat(40, 8, "BOARDING PASS", "", 0, "R", false, 0, "")

	pdf.SetTextColor(30, 30, 30)

	// Origin / destination block
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(passX+6, passY+22)
	pdf.CellFormat(60, 12, data.OriginCity, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 16)
	pdf.SetXY(passX+70, passY+24)
	pdf.CellFormat(20, 8, ">>", "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(passX+94, passY+22)
	pdf.CellFormat(80, 12, data.DestinationCity, "", 0, "L", false, 0, "")

	// Localized city names under the city block
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.SetXY(passX+6, passY+34)
	pdf.CellFormat(60, 5, data.OriginCityLocal, "", 0, "L", false, 0, "")
	pdf.SetXY(passX+94, passY+34)
	pdf.CellFormat(80, 5, data.DestinationLocal, "", 0, "L", false, 0, "")

	// Flight / aircraft / date / seat block
	labels := []struct {
		label string
		value string
	}{
		{"FLIGHT", data.FlightNumber},
		{"AIRCRAFT", data.AircraftModel},
		{"DATE", data.DateGregorian},
		{"DATE (JALALI)", data.DateJalali},
		{"TIME", data.DepartureTime},
		{"SEAT", data.Seat},
	}
	colW := passW / float64(len(labels))
	for i, f := range labels {
		x := passX + float64(i)*colW
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(110, 110, 110)
		pdf.SetXY(x+2, passY+42)
		pdf.CellFormat(colW-4, 4, f.label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(30, 30, 30)
		pdf.SetXY(x+2, passY+47)
		pdf.CellFormat(colW-4, 6, f.value, "", 0, "L", false, 0, "")
	}

	// Passenger identity block
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(110, 110, 110)
	pdf.SetXY(passX+6, passY+60)
	pdf.CellFormat(100, 4, "PASSENGER", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(30, 30, 30)
	pdf.SetXY(passX+6, passY+65)
	pdf.CellFormat(110, 8, data.LatinName, "", 0, "L", false, 0, "")
	if data.PassengerName != data.LatinName {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetXY(passX+116, passY+65)
		pdf.CellFormat(58, 8, data.PassengerName, "", 0, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(110, 110, 110)
	pdf.SetXY(passX+6, passY+75)
	pdf.CellFormat(60, 4, "DOCUMENT NO", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(30, 30, 30)
	pdf.SetXY(passX+6, passY+80)
	pdf.CellFormat(60, 6, data.DocumentNumber, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(110, 110, 110)
	pdf.SetXY(passX+76, passY+75)
	pdf.CellFormat(60, 4, "BOOKING REF", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(30, 30, 30)
	pdf.SetXY(passX+76, passY+80)
	pdf.CellFormat(60, 6, data.BookingCode, "", 0, "L", false, 0, "")

	// Footer: pseudo-barcode strip left, QR right
	r.drawBarcode(data.BarcodeText, passX+6, passY+passH-18, 110, 12)

	if len(qr) > 0 {
		name := fmt.Sprintf("qr-%d", r.pages)
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(qr))
		pdf.ImageOptions(name, passX+passW-26, passY+passH-26, 20, 20, false, opts, 0, "")
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(110, 110, 110)
	pdf.SetXY(passX+6, passY+passH-5)
	pdf.CellFormat(110, 4, data.TicketNumber, "", 0, "L", false, 0, "")

	if pdf.Err() {
		return fmt.Errorf("pdf error on page %d: %s", r.pages, pdf.Error())
	}
	return nil
}

// drawBarcode draws a decorative bar strip derived from the text. It is
// not a scannable symbology; the QR code carries the machine-readable
// identifier.
func (r *pdfRenderer) drawBarcode(text string, x, y, w, h float64) {
	if text == "" {
		return
	}
	pdf := r.pdf
	pdf.SetFillColor(30, 30, 30)

	pos := x
	i := 0
	for pos < x+w {
		b := text[i%len(text)]
		barW := 0.3 + float64(b%4)*0.3
		gap := 0.4 + float64(b%3)*0.3
		if pos+barW > x+w {
			break
		}
		pdf.Rect(pos, y, barW, h, "F")
		pos += barW + gap
		i++
	}
}

func (r *pdfRenderer) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to finalize pdf: %w", err)
	}
	return buf.Bytes(), nil
}
