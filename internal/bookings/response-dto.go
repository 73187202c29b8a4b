package bookings

import (
	"sort"
	"time"
)

// BookingSeatView is the display shape for one booked seat. Label is
// {row}{column}; Price is the stored value resolved at booking time, never
// recomputed from current tariffs.
type BookingSeatView struct {
	SeatID     string     `json:"seat_id"`
	Label      string     `json:"label"`
	Row        string     `json:"row"`
	Column     int        `json:"column"`
	TicketType TicketType `json:"ticket_type"`
	Price      int        `json:"price"`
}

type PaymentView struct {
	ID          string        `json:"id"`
	Amount      int           `json:"amount"`
	Currency    string        `json:"currency"`
	Status      PaymentStatus `json:"status"`
	Method      PaymentMethod `json:"method"`
	ProcessedAt *time.Time    `json:"processed_at,omitempty"`
}

type BookingResponse struct {
	ID               string            `json:"id"`
	BookingReference string            `json:"booking_reference"`
	Status           Status            `json:"status"`
	TotalPrice       int               `json:"total_price"`
	PaymentMethod    PaymentMethod     `json:"payment_method,omitempty"`
	MovieTitle       string            `json:"movie_title,omitempty"`
	CinemaName       string            `json:"cinema_name,omitempty"`
	ScreenNumber     string            `json:"screen_number,omitempty"`
	StartTime        *time.Time        `json:"start_time,omitempty"`
	Seats            []BookingSeatView `json:"seats"`
	Payment          *PaymentView      `json:"payment,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	CancelledAt      *time.Time        `json:"cancelled_at,omitempty"`
}

type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

type QRTicketResponse struct {
	Payload *QRPayload `json:"payload"`
	Image   string     `json:"image"`
}

// ToResponse builds the joined display shape. Seats come out sorted by row
// letter then column number.
func (b *Booking) ToResponse() BookingResponse {
	resp := BookingResponse{
		ID:               b.ID.String(),
		BookingReference: b.BookingReference,
		Status:           b.Status,
		TotalPrice:       b.TotalPrice,
		PaymentMethod:    b.PaymentMethod,
		CreatedAt:        b.CreatedAt,
		CancelledAt:      b.CancelledAt,
	}

	if b.Showing != nil {
		start := b.Showing.StartTime
		resp.StartTime = &start
		if b.Showing.Movie != nil {
			resp.MovieTitle = b.Showing.Movie.Title
		}
		if b.Showing.Screen != nil {
			resp.ScreenNumber = b.Showing.Screen.Number
			if b.Showing.Screen.Cinema != nil {
				resp.CinemaName = b.Showing.Screen.Cinema.Name
			}
		}
	}

	resp.Seats = make([]BookingSeatView, 0, len(b.Seats))
	for i := range b.Seats {
		bs := &b.Seats[i]
		view := BookingSeatView{
			SeatID:     bs.SeatID.String(),
			TicketType: bs.TicketType,
			Price:      bs.Price,
		}
		if bs.Seat != nil {
			view.Label = bs.Seat.Label()
			view.Row = bs.Seat.Row
			view.Column = bs.Seat.Column
		}
		resp.Seats = append(resp.Seats, view)
	}

	sort.Slice(resp.Seats, func(i, j int) bool {
		if resp.Seats[i].Row != resp.Seats[j].Row {
			return resp.Seats[i].Row < resp.Seats[j].Row
		}
		return resp.Seats[i].Column < resp.Seats[j].Column
	})

	if b.Payment != nil {
		resp.Payment = &PaymentView{
			ID:          b.Payment.ID.String(),
			Amount:      b.Payment.Amount,
			Currency:    b.Payment.Currency,
			Status:      b.Payment.Status,
			Method:      b.Payment.Method,
			ProcessedAt: b.Payment.ProcessedAt,
		}
	}

	return resp
}
