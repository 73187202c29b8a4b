package bookings

import (
	"time"

	"cinebook/internal/cinemas"
	"cinebook/internal/showings"
	"cinebook/internal/users"

	"github.com/google/uuid"
)

// Booking is a confirmed seat claim for a showing. The reference is the
// human-facing code printed on tickets; the row ID stays internal.
type Booking struct {
	ID               uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingReference string        `json:"booking_reference" gorm:"uniqueIndex;not null;size:6"`
	UserID           uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	ShowingID        uuid.UUID     `json:"showing_id" gorm:"type:uuid;not null;index"`
	TotalPrice       int           `json:"total_price" gorm:"not null"`
	Status           Status        `json:"status" gorm:"type:varchar(20);not null;default:'CONFIRMED'"`
	PaymentMethod    PaymentMethod `json:"payment_method" gorm:"type:varchar(20)"`
	IdempotencyKey   *string       `json:"-" gorm:"uniqueIndex;size:128"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	CancelledAt      *time.Time    `json:"cancelled_at,omitempty"`

	User    *users.User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Showing *showings.Showing `json:"showing,omitempty" gorm:"foreignKey:ShowingID"`
	Seats   []BookingSeat     `json:"seats,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
	Payment *Payment          `json:"payment,omitempty" gorm:"foreignKey:BookingID"`
}

// BookingSeat claims one seat for one showing at a price resolved at booking
// time. ShowingID is denormalized so the partial unique index
// (showing_id, seat_id) WHERE NOT released can enforce single ownership at
// the storage layer. Cancellation flips Released instead of deleting rows.
type BookingSeat struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID  uuid.UUID  `json:"booking_id" gorm:"type:uuid;not null;index"`
	ShowingID  uuid.UUID  `json:"showing_id" gorm:"type:uuid;not null"`
	SeatID     uuid.UUID  `json:"seat_id" gorm:"type:uuid;not null"`
	TicketType TicketType `json:"ticket_type" gorm:"type:varchar(10);not null"`
	Price      int        `json:"price" gorm:"not null"`
	Released   bool       `json:"-" gorm:"not null;default:false"`
	CreatedAt  time.Time  `json:"created_at"`

	Seat *cinemas.Seat `json:"seat,omitempty" gorm:"foreignKey:SeatID"`
}

// Payment tracks fulfillment for a booking. Its status never affects seat
// blocking.
type Payment struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID     uuid.UUID     `json:"booking_id" gorm:"type:uuid;not null;index"`
	Amount        int           `json:"amount" gorm:"not null"`
	Currency      string        `json:"currency" gorm:"size:3;not null;default:'JPY'"`
	Status        PaymentStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	Method        PaymentMethod `json:"method" gorm:"type:varchar(20)"`
	TransactionID string        `json:"transaction_id,omitempty" gorm:"size:128"`
	ProcessedAt   *time.Time    `json:"processed_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (BookingSeat) TableName() string {
	return "booking_seats"
}

func (Payment) TableName() string {
	return "payments"
}

// IsLive reports whether the booking currently blocks its seats.
func (b *Booking) IsLive() bool {
	return b.Status.BlocksSeats()
}
