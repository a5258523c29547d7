package booking

import (
	"context"

	"staybook/internal/api"
	"staybook/internal/domain"
)

// BookingAPI is the part of the remote gateway the booking flow needs.
type BookingAPI interface {
	GetUserBookings(ctx context.Context, userID string) ([]domain.BookingWithProperty, error)
	CreateBooking(ctx context.Context, req api.CreateBookingRequest) (domain.BookingWithProperty, error)
}

// Notifier surfaces user-facing messages.
type Notifier interface {
	Alert(a Alert)
}

// Navigator moves the user to another screen.
type Navigator interface {
	Navigate(route string)
}
