package mockapi

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"staybook/internal/domain"
	"staybook/internal/repository"
)

// Service serves the listings, bookings and profiles the booking client reads.
type Service struct {
	properties PropertyRepository
	bookings   BookingRepository
	profiles   ProfileRepository
	log        *zap.Logger
}

func NewService(properties PropertyRepository, bookings BookingRepository, profiles ProfileRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		properties: properties,
		bookings:   bookings,
		profiles:   profiles,
		log:        log,
	}
}

func (s *Service) ListProperties(ctx context.Context) ([]domain.Property, error) {
	return s.properties.List(ctx)
}

func (s *Service) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	return p, notFound(err)
}

// ListBookings returns every booking, or only userID's when it is non-empty.
func (s *Service) ListBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.List(ctx, userID)
}

func (s *Service) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	return b, notFound(err)
}

// CreateBooking stores a booking under a fresh uuid. Status defaults to pending.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if err := checkDates(req.CheckIn, req.CheckOut); err != nil {
		return nil, err
	}
	if err := s.requireProperty(ctx, req.PropertyID); err != nil {
		return nil, err
	}

	b := domain.Booking{
		ID:         uuid.NewString(),
		PropertyID: req.PropertyID,
		UserID:     req.UserID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Status:     domain.BookingStatus(req.Status),
	}
	if b.Status == "" {
		b.Status = domain.BookingPending
	}
	if !b.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}
	s.log.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("property_id", b.PropertyID),
		zap.String("user_id", b.UserID),
	)
	return &b, nil
}

func (s *Service) UpdateBooking(ctx context.Context, id string, req UpdateBookingRequest) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	patch := req.patch()
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	merged := patch.Apply(domain.BookingWithProperty{Booking: *current})
	if err := checkDates(merged.CheckIn, merged.CheckOut); err != nil {
		return nil, err
	}
	if patch.Property != nil {
		if err := s.requireProperty(ctx, patch.Property.ID); err != nil {
			return nil, err
		}
	}

	updated, err := s.bookings.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, notFound(err)
	}
	return updated, nil
}

func (s *Service) DeleteBooking(ctx context.Context, id string) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.log.Info("booking deleted", zap.String("booking_id", id))
	return nil
}

func (s *Service) GetProfile(ctx context.Context, id string) (*domain.UserProfile, error) {
	p, err := s.profiles.GetByID(ctx, id)
	return p, notFound(err)
}

func (s *Service) requireProperty(ctx context.Context, id string) error {
	_, err := s.properties.GetByID(ctx, id)
	if repository.IsNotFound(err) {
		return ErrUnknownProperty
	}
	return err
}

func checkDates(checkIn, checkOut string) error {
	in, err := time.Parse(domain.DateLayout, checkIn)
	if err != nil {
		return ErrInvalidDates
	}
	out, err := time.Parse(domain.DateLayout, checkOut)
	if err != nil {
		return ErrInvalidDates
	}
	if !out.After(in) {
		return ErrInvalidDates
	}
	return nil
}

func notFound(err error) error {
	if repository.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}
