package mockapi

import (
	"context"

	"staybook/internal/domain"
)

type PropertyRepository interface {
	List(ctx context.Context) ([]domain.Property, error)
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	Upsert(ctx context.Context, p domain.Property) error
}

type BookingRepository interface {
	List(ctx context.Context, userID string) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Create(ctx context.Context, b domain.Booking) error
	Update(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p domain.UserProfile) error
}
