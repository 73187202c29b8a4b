package bookings

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRTicket_SignatureVerifies(t *testing.T) {
	booking := &Booking{
		ID:               uuid.New(),
		BookingReference: "ABC123",
		ShowingID:        uuid.New(),
	}

	payload, image, err := buildQRTicket(booking, "test-secret")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(image, "data:image/png;base64,"))
	assert.True(t, VerifyQRPayload(payload, "test-secret"))
}

func TestQRTicket_TamperFlipsSignature(t *testing.T) {
	booking := &Booking{
		ID:               uuid.New(),
		BookingReference: "ABC123",
		ShowingID:        uuid.New(),
	}

	payload, _, err := buildQRTicket(booking, "test-secret")
	require.NoError(t, err)

	payload.BookingReference = "XYZ999"
	assert.False(t, VerifyQRPayload(payload, "test-secret"))
}

func TestQRTicket_WrongSecretFails(t *testing.T) {
	booking := &Booking{
		ID:               uuid.New(),
		BookingReference: "ABC123",
		ShowingID:        uuid.New(),
	}

	payload, _, err := buildQRTicket(booking, "test-secret")
	require.NoError(t, err)

	assert.False(t, VerifyQRPayload(payload, "other-secret"))
}
