package bookings

// TicketType is the fare category for one seat.
type TicketType string

const (
	TicketGeneral TicketType = "GENERAL"
	TicketStudent TicketType = "STUDENT"
	TicketYouth   TicketType = "YOUTH"
	TicketChild   TicketType = "CHILD"
)

// DefaultPrices is the tariff table in yen, applied when the showing has no
// uniform price.
var DefaultPrices = map[TicketType]int{
	TicketGeneral: 1800,
	TicketStudent: 1600,
	TicketYouth:   1400,
	TicketChild:   1000,
}

func (t TicketType) IsValid() bool {
	_, ok := DefaultPrices[t]
	return ok
}

// Status is the booking lifecycle state. CONFIRMED is the only status that
// blocks seats; CANCELLED releases them. Payment fulfillment is tracked on
// the Payment record, never here.
type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// BlocksSeats reports whether a booking in this status claims its seats.
func (s Status) BlocksSeats() bool {
	return s == StatusConfirmed
}

type PaymentMethod string

const (
	PaymentMethodCreditCard    PaymentMethod = "CREDIT_CARD"
	PaymentMethodCash          PaymentMethod = "CASH"
	PaymentMethodMobilePayment PaymentMethod = "MOBILE_PAYMENT"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodCash, PaymentMethodMobilePayment:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)
