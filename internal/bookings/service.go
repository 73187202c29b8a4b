package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"cinebook/internal/cinemas"
	"cinebook/internal/shared/constants"
	"cinebook/internal/showings"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
)

// ShowingGetter supplies showing records. Satisfied by showings.Repository.
type ShowingGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*showings.Showing, error)
}

// SeatCatalog supplies seat records. Satisfied by cinemas.Repository.
type SeatCatalog interface {
	GetSeatsByIDs(ctx context.Context, ids []uuid.UUID) ([]cinemas.Seat, error)
}

// BookingConfirmedEvent is handed to the notification publisher after a
// booking commits.
type BookingConfirmedEvent struct {
	BookingID        string    `json:"booking_id"`
	BookingReference string    `json:"booking_reference"`
	UserID           string    `json:"user_id"`
	ShowingID        string    `json:"showing_id"`
	MovieTitle       string    `json:"movie_title"`
	StartTime        time.Time `json:"start_time"`
	SeatLabels       []string  `json:"seat_labels"`
	TotalPrice       int       `json:"total_price"`
	CreatedAt        time.Time `json:"created_at"`
}

// NotificationPublisher delivers booking events to the notification pipeline.
type NotificationPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event *BookingConfirmedEvent) error
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	SetNotificationPublisher(publisher NotificationPublisher)

	CreateBooking(ctx context.Context, userID uuid.UUID, req *CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, userID uuid.UUID, isAdmin bool, bookingID uuid.UUID) (*BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingHistoryQuery) (*PaginatedBookings, error)
	CancelBooking(ctx context.Context, userID uuid.UUID, isAdmin bool, bookingID uuid.UUID) error
	GetQRTicket(ctx context.Context, userID uuid.UUID, isAdmin bool, bookingID uuid.UUID) (*QRTicketResponse, error)

	// Facts other packages consume through adapters.
	CountLiveByShowing(ctx context.Context, showingID uuid.UUID) (int64, error)
	GetClaimedSeatIDs(ctx context.Context, showingID uuid.UUID) ([]uuid.UUID, error)
}

type service struct {
	repo         Repository
	showingStore ShowingGetter
	seatCatalog  SeatCatalog
	qrSecret     string
	cacheService cache.Service
	publisher    NotificationPublisher
}

func NewService(repo Repository, showingStore ShowingGetter, seatCatalog SeatCatalog, qrSecret string) Service {
	return &service{
		repo:         repo,
		showingStore: showingStore,
		seatCatalog:  seatCatalog,
		qrSecret:     qrSecret,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetNotificationPublisher(publisher NotificationPublisher) {
	s.publisher = publisher
}

// CreateBooking validates the request, re-resolves availability and pricing,
// and persists the booking atomically. All failures leave no partial state.
func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req *CreateBookingRequest) (*BookingResponse, error) {
	showingID, err := uuid.Parse(req.ShowingID)
	if err != nil {
		return nil, showings.ErrShowingNotFound
	}

	// Idempotent replay: a retried request with the same key returns the
	// booking the first attempt created.
	if req.IdempotencyKey != "" {
		original, err := s.repo.GetByIdempotencyKey(ctx, req.IdempotencyKey)
		if err == nil {
			if original.UserID != userID || original.ShowingID != showingID {
				return nil, ErrIdempotencyKeyReused
			}
			return s.GetBooking(ctx, userID, false, original.ID)
		}
		if !errors.Is(err, ErrBookingNotFound) {
			return nil, err
		}
	}

	showing, err := s.showingStore.GetByID(ctx, showingID)
	if err != nil {
		return nil, err
	}
	if showing.StartTime.Before(time.Now()) {
		return nil, ErrShowingStarted
	}

	seatIDs, ticketTypes, err := resolveSeatSelection(req, showing.UniformPrice)
	if err != nil {
		return nil, err
	}

	seatsByID, err := s.loadSeats(ctx, showing, seatIDs)
	if err != nil {
		return nil, err
	}

	prices, total, err := ResolveTotal(showing.UniformPrice, ticketTypes)
	if err != nil {
		return nil, err
	}

	reference, err := newUniqueReference(ctx, s.repo.ReferenceExists)
	if err != nil {
		return nil, err
	}

	method := PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = PaymentMethodCreditCard
	}

	booking := &Booking{
		BookingReference: reference,
		UserID:           userID,
		ShowingID:        showingID,
		TotalPrice:       total,
		Status:           StatusConfirmed,
		PaymentMethod:    method,
	}
	if req.IdempotencyKey != "" {
		key := req.IdempotencyKey
		booking.IdempotencyKey = &key
	}

	booking.Seats = make([]BookingSeat, len(seatIDs))
	for i, seatID := range seatIDs {
		booking.Seats[i] = BookingSeat{
			ShowingID:  showingID,
			SeatID:     seatID,
			TicketType: ticketTypes[i],
			Price:      prices[i],
		}
	}

	booking.Payment = &Payment{
		Amount:   total,
		Currency: "JPY",
		Status:   PaymentPending,
		Method:   method,
	}

	if err := s.repo.CreateBookingTx(ctx, booking); err != nil {
		var conflict *SeatConflictError
		if errors.As(err, &conflict) {
			logger.GetDefault().LogSeatConflict(ctx, showingID.String(), conflict.SeatIDStrings())
		}
		return nil, err
	}

	s.invalidateSeatState(ctx, showingID)
	logger.GetDefault().LogBookingCreated(ctx, booking.ID.String(), reference, showingID.String(), userID.String())

	// Attach relations for the response and the notification event.
	booking.Showing = showing
	for i := range booking.Seats {
		if seat, ok := seatsByID[booking.Seats[i].SeatID]; ok {
			booking.Seats[i].Seat = seat
		}
	}

	s.publishConfirmation(ctx, booking)

	resp := booking.ToResponse()
	return &resp, nil
}

// resolveSeatSelection validates seat IDs and maps each seat to its ticket
// type. Tariff-priced showings require a ticket type per seat; under a uniform
// price the types are ignored for pricing and absent entries record GENERAL.
func resolveSeatSelection(req *CreateBookingRequest, uniformPrice *int) ([]uuid.UUID, []TicketType, error) {
	if len(req.SeatIDs) == 0 {
		return nil, nil, ErrNoSeatsSelected
	}

	seatIDs := make([]uuid.UUID, len(req.SeatIDs))
	seen := make(map[uuid.UUID]bool, len(req.SeatIDs))
	for i, raw := range req.SeatIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid seat id %q", raw)
		}
		if seen[id] {
			return nil, nil, fmt.Errorf("%w: %s", ErrDuplicateSeat, raw)
		}
		seen[id] = true
		seatIDs[i] = id
	}

	typeBySeat := make(map[uuid.UUID]TicketType, len(req.SeatTickets))
	for _, st := range req.SeatTickets {
		id, err := uuid.Parse(st.SeatID)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid seat id %q in seat_tickets", st.SeatID)
		}
		if !seen[id] {
			return nil, nil, fmt.Errorf("seat %s in seat_tickets is not in seat_ids", st.SeatID)
		}
		ticketType := TicketType(st.TicketType)
		if !ticketType.IsValid() {
			return nil, nil, fmt.Errorf("%w: %q", ErrInvalidTicketType, st.TicketType)
		}
		typeBySeat[id] = ticketType
	}

	ticketTypes := make([]TicketType, len(seatIDs))
	for i, id := range seatIDs {
		t, ok := typeBySeat[id]
		if !ok {
			if uniformPrice == nil {
				return nil, nil, fmt.Errorf("%w: seat %s", ErrMissingTicketType, req.SeatIDs[i])
			}
			t = TicketGeneral
		}
		ticketTypes[i] = t
	}

	return seatIDs, ticketTypes, nil
}

func (s *service) loadSeats(ctx context.Context, showing *showings.Showing, seatIDs []uuid.UUID) (map[uuid.UUID]*cinemas.Seat, error) {
	seats, err := s.seatCatalog.GetSeatsByIDs(ctx, seatIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load seats: %w", err)
	}

	byID := make(map[uuid.UUID]*cinemas.Seat, len(seats))
	for i := range seats {
		byID[seats[i].ID] = &seats[i]
	}

	for _, id := range seatIDs {
		seat, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", cinemas.ErrSeatNotFound, id)
		}
		if seat.ScreenID != showing.ScreenID {
			return nil, fmt.Errorf("%w: %s", ErrSeatNotOnScreen, id)
		}
		if !seat.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrSeatInactive, id)
		}
	}

	return byID, nil
}

func (s *service) GetBooking(ctx context.Context, userID uuid.UUID, isAdmin bool, bookingID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID && !isAdmin {
		return nil, ErrBookingNotOwned
	}

	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingHistoryQuery) (*PaginatedBookings, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	bookings, totalCount, err := s.repo.GetUserBookings(ctx, userID, query.Page, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	responses := make([]BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = bookings[i].ToResponse()
	}

	return &PaginatedBookings{
		Bookings:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}, nil
}

func (s *service) CancelBooking(ctx context.Context, userID uuid.UUID, isAdmin bool, bookingID uuid.UUID) error {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.UserID != userID && !isAdmin {
		return ErrBookingNotOwned
	}
	if booking.Status == StatusCancelled {
		return ErrBookingCancelled
	}

	if err := s.repo.CancelBooking(ctx, bookingID); err != nil {
		return err
	}

	s.invalidateSeatState(ctx, booking.ShowingID)
	logger.GetDefault().LogBookingCancelled(ctx, bookingID.String(), booking.ShowingID.String(), userID.String())
	return nil
}

func (s *service) GetQRTicket(ctx context.Context, userID uuid.UUID, isAdmin bool, bookingID uuid.UUID) (*QRTicketResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID && !isAdmin {
		return nil, ErrBookingNotOwned
	}
	if booking.Status == StatusCancelled {
		return nil, ErrBookingCancelled
	}

	payload, image, err := buildQRTicket(booking, s.qrSecret)
	if err != nil {
		return nil, err
	}

	return &QRTicketResponse{Payload: payload, Image: image}, nil
}

func (s *service) CountLiveByShowing(ctx context.Context, showingID uuid.UUID) (int64, error) {
	return s.repo.CountLiveByShowing(ctx, showingID)
}

func (s *service) GetClaimedSeatIDs(ctx context.Context, showingID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.GetClaimedSeatIDs(ctx, showingID)
}

func (s *service) invalidateSeatState(ctx context.Context, showingID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	key := constants.BuildShowingSeatStateKey(showingID.String())
	if err := s.cacheService.Delete(ctx, key); err != nil {
		logger.Warn("failed to invalidate seat state cache", "key", key, "error", err)
	}
}

func (s *service) publishConfirmation(ctx context.Context, booking *Booking) {
	if s.publisher == nil {
		return
	}

	event := &BookingConfirmedEvent{
		BookingID:        booking.ID.String(),
		BookingReference: booking.BookingReference,
		UserID:           booking.UserID.String(),
		ShowingID:        booking.ShowingID.String(),
		TotalPrice:       booking.TotalPrice,
		CreatedAt:        booking.CreatedAt,
	}
	if booking.Showing != nil {
		event.StartTime = booking.Showing.StartTime
		if booking.Showing.Movie != nil {
			event.MovieTitle = booking.Showing.Movie.Title
		}
	}
	for i := range booking.Seats {
		if booking.Seats[i].Seat != nil {
			event.SeatLabels = append(event.SeatLabels, booking.Seats[i].Seat.Label())
		}
	}

	if err := s.publisher.PublishBookingConfirmed(ctx, event); err != nil {
		logger.Warn("failed to publish booking confirmation", "booking_id", event.BookingID, "error", err)
	}
}
