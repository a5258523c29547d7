package booking

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"staybook/internal/api"
	"staybook/internal/domain"
	"staybook/internal/querycache"
	"staybook/internal/store"
)

type Config struct {
	UserID string
	// Reconcile schedules a background refetch of the bookings list after
	// every successful creation.
	Reconcile bool
}

type Service struct {
	api       BookingAPI
	bookings  *store.BookingStore
	cache     *querycache.Cache
	notifier  Notifier
	navigator Navigator
	cfg       Config
	log       *zap.Logger
	wg        sync.WaitGroup
}

func NewService(
	bookingAPI BookingAPI,
	bookings *store.BookingStore,
	cache *querycache.Cache,
	notifier Notifier,
	navigator Navigator,
	cfg Config,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		api:       bookingAPI,
		bookings:  bookings,
		cache:     cache,
		notifier:  notifier,
		navigator: navigator,
		cfg:       cfg,
		log:       log,
	}
}

// BookingsKey is the cache key of a user's bookings list.
func BookingsKey(userID string) querycache.Key {
	return querycache.Key{"bookings", userID}
}

func (s *Service) UserID() string { return s.cfg.UserID }

// ListBookings loads the user's bookings through the cache and mirrors them
// into the booking store. It returns the store contents, which may be newer
// than the fetched list.
func (s *Service) ListBookings(ctx context.Context) ([]domain.BookingWithProperty, error) {
	res, err := querycache.Fetch(ctx, s.cache, BookingsKey(s.cfg.UserID), s.fetchBookings)
	if err != nil {
		return nil, err
	}
	s.bookings.ApplySync(res.ticket, res.bookings)
	return s.bookings.Bookings(), nil
}

// RefreshBookings is ListBookings without the cache short-circuit.
func (s *Service) RefreshBookings(ctx context.Context) ([]domain.BookingWithProperty, error) {
	res, err := querycache.Refetch(ctx, s.cache, BookingsKey(s.cfg.UserID), s.fetchBookings)
	if err != nil {
		return nil, err
	}
	s.bookings.ApplySync(res.ticket, res.bookings)
	return s.bookings.Bookings(), nil
}

func (s *Service) fetchBookings(ctx context.Context) (syncResult, error) {
	ticket := s.bookings.BeginSync()
	list, err := s.api.GetUserBookings(ctx, s.cfg.UserID)
	if err != nil {
		return syncResult{}, err
	}
	return syncResult{ticket: ticket, bookings: list}, nil
}

// Submit runs one creation attempt for propertyID with the form's dates.
// On success the new booking is added to the store, the bookings list query
// is invalidated, and the user is sent to the bookings screen.
func (s *Service) Submit(ctx context.Context, propertyID string, form *Form) (domain.BookingWithProperty, error) {
	if !form.beginSubmit() {
		return domain.BookingWithProperty{}, ErrSubmitInProgress
	}
	defer form.endSubmit()

	if err := form.Validate(); err != nil {
		s.notifier.Alert(AlertInvalidDates)
		return domain.BookingWithProperty{}, err
	}

	checkIn, checkOut := form.Dates()
	req := api.CreateBookingRequest{
		PropertyID: propertyID,
		UserID:     s.cfg.UserID,
		CheckIn:    checkIn.Format(domain.DateLayout),
		CheckOut:   checkOut.Format(domain.DateLayout),
		Status:     domain.BookingConfirmed,
	}

	created, err := s.api.CreateBooking(ctx, req)
	if err != nil {
		s.log.Warn("booking creation failed",
			zap.String("property_id", propertyID),
			zap.Int("status", api.StatusCode(err)),
			zap.Error(err),
		)
		s.notifier.Alert(AlertBookingFailed)
		return domain.BookingWithProperty{}, fmt.Errorf("%w: %w", ErrCreateFailed, err)
	}

	s.bookings.AddBooking(created)
	s.cache.Invalidate(BookingsKey(s.cfg.UserID))
	s.log.Info("booking created",
		zap.String("booking_id", created.ID),
		zap.String("property_id", created.PropertyID),
	)

	if s.cfg.Reconcile {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if _, err := s.RefreshBookings(context.WithoutCancel(ctx)); err != nil {
				s.log.Warn("booking reconciliation failed", zap.Error(err))
			}
		}()
	}

	s.notifier.Alert(AlertBookingConfirmed)
	s.navigator.Navigate(RouteBookings)
	return created, nil
}

// Wait blocks until scheduled reconciliation fetches have finished.
func (s *Service) Wait() {
	s.wg.Wait()
}
