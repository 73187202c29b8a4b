package bookings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound      = errors.New("booking not found")
	ErrBookingNotOwned      = errors.New("booking belongs to another user")
	ErrBookingCancelled     = errors.New("booking is already cancelled")
	ErrNoSeatsSelected      = errors.New("no seats selected")
	ErrDuplicateSeat        = errors.New("duplicate seat in selection")
	ErrSeatNotOnScreen      = errors.New("seat does not belong to the showing's screen")
	ErrSeatInactive         = errors.New("seat is not active")
	ErrInvalidTicketType    = errors.New("invalid ticket type")
	ErrMissingTicketType    = errors.New("ticket type required for every seat when the showing has no uniform price")
	ErrShowingStarted       = errors.New("showing has already started")
	ErrReferenceExhausted   = errors.New("could not generate a unique booking reference")
	ErrIdempotencyKeyReused = errors.New("idempotency key already used for a different request")
)

// SeatConflictError reports which seats were already claimed when a booking
// attempt lost the race.
type SeatConflictError struct {
	ShowingID uuid.UUID
	SeatIDs   []uuid.UUID
}

func (e *SeatConflictError) Error() string {
	ids := make([]string, len(e.SeatIDs))
	for i, id := range e.SeatIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("seats already booked for showing %s: %s", e.ShowingID, strings.Join(ids, ", "))
}

// SeatIDStrings returns the conflicting seat IDs for the API response.
func (e *SeatConflictError) SeatIDStrings() []string {
	ids := make([]string, len(e.SeatIDs))
	for i, id := range e.SeatIDs {
		ids[i] = id.String()
	}
	return ids
}
