package ticket

import (
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// qrSizePX is the pixel edge of the generated QR image
const qrSizePX = 256

// QRPayload builds the opaque identifier encoded into a page's QR code.
// It is deterministic over its inputs and unique per passenger+booking
// pair: ticket number, document number and flight date.
func QRPayload(ticketNumber, documentNumber string, flightDate time.Time) string {
	return fmt.Sprintf("%s|%s|%s", ticketNumber, documentNumber, flightDate.Format("2006-01-02"))
}

// EncodeQR renders the payload into a PNG image
func EncodeQR(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, qrSizePX)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}
