package api

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"staybook/internal/domain"
)

// CreateBookingRequest is a booking without its server-assigned id.
type CreateBookingRequest struct {
	PropertyID string               `json:"propertyId"`
	UserID     string               `json:"userId"`
	CheckIn    string               `json:"checkIn"`
	CheckOut   string               `json:"checkOut"`
	Status     domain.BookingStatus `json:"status"`
}

type BookingService struct {
	client *Client
}

func NewBookingService(client *Client) *BookingService {
	return &BookingService{client: client}
}

func (s *BookingService) GetBookings(ctx context.Context) ([]domain.Booking, error) {
	return Do[[]domain.Booking](ctx, s.client, http.MethodGet, BookingsEndpoint(), nil)
}

func (s *BookingService) GetBookingWithProperty(ctx context.Context, b domain.Booking) (domain.BookingWithProperty, error) {
	p, err := Do[domain.Property](ctx, s.client, http.MethodGet, PropertyEndpoint(b.PropertyID), nil)
	if err != nil {
		return domain.BookingWithProperty{}, err
	}
	return domain.JoinBooking(b, p), nil
}

// GetUserBookings lists the user's bookings joined with their properties.
// Joins run concurrently; the result keeps the server's booking order and the
// first failing join fails the call.
func (s *BookingService) GetUserBookings(ctx context.Context, userID string) ([]domain.BookingWithProperty, error) {
	bookings, err := Do[[]domain.Booking](ctx, s.client, http.MethodGet, UserBookingsEndpoint(userID), nil)
	if err != nil {
		return nil, err
	}

	out := make([]domain.BookingWithProperty, len(bookings))
	g, gctx := errgroup.WithContext(ctx)
	for i, b := range bookings {
		i, b := i, b
		g.Go(func() error {
			joined, err := s.GetBookingWithProperty(gctx, b)
			if err != nil {
				return err
			}
			out[i] = joined
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBooking posts a new booking and returns it joined with its property.
// The status sent is always confirmed, whatever req.Status holds.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (domain.BookingWithProperty, error) {
	req.Status = domain.BookingConfirmed
	created, err := Do[domain.Booking](ctx, s.client, http.MethodPost, BookingsEndpoint(), req)
	if err != nil {
		return domain.BookingWithProperty{}, err
	}
	return s.GetBookingWithProperty(ctx, created)
}

type PropertyService struct {
	client *Client
}

func NewPropertyService(client *Client) *PropertyService {
	return &PropertyService{client: client}
}

func (s *PropertyService) GetProperty(ctx context.Context, id string) (domain.Property, error) {
	return Do[domain.Property](ctx, s.client, http.MethodGet, PropertyEndpoint(id), nil)
}

func (s *PropertyService) GetProperties(ctx context.Context) ([]domain.Property, error) {
	return Do[[]domain.Property](ctx, s.client, http.MethodGet, PropertiesEndpoint(), nil)
}

type ProfileService struct {
	client *Client
}

func NewProfileService(client *Client) *ProfileService {
	return &ProfileService{client: client}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	return Do[domain.UserProfile](ctx, s.client, http.MethodGet, ProfileEndpoint(userID), nil)
}
