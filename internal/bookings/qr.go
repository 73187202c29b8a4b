package bookings

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// QRPayload is the ticket data encoded into the QR image. The signature
// covers every other field so gate scanners can verify offline.
type QRPayload struct {
	BookingID        string `json:"booking_id"`
	BookingReference string `json:"booking_reference"`
	ShowingID        string `json:"showing_id"`
	IssuedAt         int64  `json:"issued_at"`
	Signature        string `json:"signature,omitempty"`
}

// signQRPayload computes the HMAC-SHA256 signature over the payload fields.
func signQRPayload(payload *QRPayload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s|%s|%d",
		payload.BookingID, payload.BookingReference, payload.ShowingID, payload.IssuedAt)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyQRPayload reports whether the payload signature is authentic.
func VerifyQRPayload(payload *QRPayload, secret string) bool {
	expected := signQRPayload(payload, secret)
	return hmac.Equal([]byte(expected), []byte(payload.Signature))
}

// buildQRTicket signs the payload and renders it as a PNG data URL.
func buildQRTicket(booking *Booking, secret string) (*QRPayload, string, error) {
	payload := &QRPayload{
		BookingID:        booking.ID.String(),
		BookingReference: booking.BookingReference,
		ShowingID:        booking.ShowingID.String(),
		IssuedAt:         time.Now().Unix(),
	}
	payload.Signature = signQRPayload(payload, secret)

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal QR payload: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode QR image: %w", err)
	}

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	return payload, dataURL, nil
}
