package notifications

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"cinebook/internal/bookings"
	"cinebook/pkg/logger"
)

// Emailer sends booking confirmation mail.
type Emailer interface {
	SendBookingConfirmation(to string, event *bookings.BookingConfirmedEvent) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpEmailer struct {
	config *SMTPConfig
}

func NewSMTPEmailer(config *SMTPConfig) Emailer {
	return &smtpEmailer{config: config}
}

func (e *smtpEmailer) SendBookingConfirmation(to string, event *bookings.BookingConfirmedEvent) error {
	subject := fmt.Sprintf("Booking confirmed: %s", event.BookingReference)
	body := buildConfirmationBody(event)

	msg := strings.Join([]string{
		"From: " + e.config.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", e.config.Host, e.config.Port)
	auth := smtp.PlainAuth("", e.config.Username, e.config.Password, e.config.Host)

	if err := smtp.SendMail(addr, auth, e.config.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send confirmation mail: %w", err)
	}
	return nil
}

func buildConfirmationBody(event *bookings.BookingConfirmedEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your booking is confirmed.\n\n")
	fmt.Fprintf(&b, "Reference: %s\n", event.BookingReference)
	if event.MovieTitle != "" {
		fmt.Fprintf(&b, "Movie: %s\n", event.MovieTitle)
	}
	if !event.StartTime.IsZero() {
		fmt.Fprintf(&b, "Showtime: %s\n", event.StartTime.Format(time.RFC1123))
	}
	if len(event.SeatLabels) > 0 {
		fmt.Fprintf(&b, "Seats: %s\n", strings.Join(event.SeatLabels, ", "))
	}
	fmt.Fprintf(&b, "Total: %d JPY\n\n", event.TotalPrice)
	fmt.Fprintf(&b, "Show the QR code in the app at the gate.\n")
	return b.String()
}

// logEmailer logs instead of sending, used when SMTP is not configured.
type logEmailer struct{}

func NewLogEmailer() Emailer {
	return logEmailer{}
}

func (logEmailer) SendBookingConfirmation(to string, event *bookings.BookingConfirmedEvent) error {
	logger.Info("booking confirmation (mail disabled)",
		"to", to,
		"reference", event.BookingReference,
		"total", event.TotalPrice,
	)
	return nil
}
