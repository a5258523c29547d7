package catalog

import (
	"context"

	"staybook/internal/domain"
)

type PropertyAPI interface {
	GetProperty(ctx context.Context, id string) (domain.Property, error)
	GetProperties(ctx context.Context) ([]domain.Property, error)
}

// BookingsLoader makes sure the booking store reflects the user's bookings.
type BookingsLoader interface {
	ListBookings(ctx context.Context) ([]domain.BookingWithProperty, error)
}
