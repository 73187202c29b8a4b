package bookings

// SeatTicket assigns a ticket type to one selected seat. Showings without a
// uniform price require an entry for every seat.
type SeatTicket struct {
	SeatID     string `json:"seat_id" binding:"required,uuid"`
	TicketType string `json:"ticket_type" binding:"required,tickettype"`
}

type CreateBookingRequest struct {
	ShowingID      string       `json:"showing_id" binding:"required,uuid"`
	SeatIDs        []string     `json:"seat_ids" binding:"required,min=1,max=10,dive,uuid"`
	SeatTickets    []SeatTicket `json:"seat_tickets" binding:"omitempty,dive"`
	PaymentMethod  string       `json:"payment_method" binding:"omitempty,oneof=CREDIT_CARD CASH MOBILE_PAYMENT"`
	IdempotencyKey string       `json:"idempotency_key" binding:"omitempty,min=8,max=128"`
}

type BookingHistoryQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}
