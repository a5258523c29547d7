package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"staybook/internal/database"
	"staybook/internal/domain"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func seedProperty(t *testing.T, db *gorm.DB, id string) domain.Property {
	t.Helper()
	p := domain.Property{
		ID:       id,
		Title:    "Listing " + id,
		Price:    120,
		Location: domain.Location{City: "Austin", State: "TX"},
		Features: []string{"WiFi", "Parking"},
		Images:   []string{"a.jpg"},
	}
	require.NoError(t, NewPropertyRepository(db).Upsert(context.Background(), p))
	return p
}

func TestPropertyRepository_RoundTrip(t *testing.T) {
	db := setupDB(t)
	want := seedProperty(t, db, "p1")
	repo := NewPropertyRepository(db)

	got, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	want.Title = "Renamed"
	require.NoError(t, repo.Upsert(context.Background(), want))
	all, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Renamed", all[0].Title)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
}

func TestBookingRepository_CreateListFilter(t *testing.T) {
	db := setupDB(t)
	seedProperty(t, db, "p1")
	ctx := context.Background()
	repo := NewBookingRepository(db)

	require.NoError(t, repo.Create(ctx, domain.Booking{ID: "b1", PropertyID: "p1", UserID: "u1", CheckIn: "2024-07-01", CheckOut: "2024-07-05", Status: domain.BookingConfirmed}))
	require.NoError(t, repo.Create(ctx, domain.Booking{ID: "b2", PropertyID: "p1", UserID: "u2", CheckIn: "2024-07-01", CheckOut: "2024-07-03", Status: domain.BookingPending}))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "b1", mine[0].ID)
}

func TestBookingRepository_DuplicateStay(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewBookingRepository(db)
	b := domain.Booking{ID: "b1", PropertyID: "p1", UserID: "u1", CheckIn: "2024-07-01", CheckOut: "2024-07-05", Status: domain.BookingConfirmed}

	require.NoError(t, repo.Create(ctx, b))
	b.ID = "b2"
	assert.ErrorIs(t, repo.Create(ctx, b), ErrDuplicate)
}

func TestBookingRepository_ProfileLinks(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	profiles := NewProfileRepository(db)
	bookings := NewBookingRepository(db)
	require.NoError(t, profiles.Upsert(ctx, domain.UserProfile{ID: "u1", Name: "Ann", Email: "ann@example.com"}))

	require.NoError(t, bookings.Create(ctx, domain.Booking{ID: "b1", PropertyID: "p1", UserID: "u1", CheckIn: "2024-07-01", CheckOut: "2024-07-05"}))
	p, err := profiles.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, p.Bookings)

	require.NoError(t, bookings.Delete(ctx, "b1"))
	p, err = profiles.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, p.Bookings)

	assert.True(t, IsNotFound(bookings.Delete(ctx, "b1")))
}

func TestBookingRepository_Update(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewBookingRepository(db)
	require.NoError(t, repo.Create(ctx, domain.Booking{ID: "b1", PropertyID: "p1", UserID: "u1", CheckIn: "2024-07-01", CheckOut: "2024-07-05", Status: domain.BookingConfirmed}))

	cancelled := domain.BookingCancelled
	got, err := repo.Update(ctx, "b1", domain.BookingPatch{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
	assert.Equal(t, "2024-07-05", got.CheckOut)

	_, err = repo.Update(ctx, "missing", domain.BookingPatch{Status: &cancelled})
	assert.True(t, IsNotFound(err))
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		description string
		err         error
		want        bool
	}{
		{"postgres unique", &pgconn.PgError{Code: "23505"}, true},
		{"postgres fk", &pgconn.PgError{Code: "23503"}, false},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: bookings.id (1555)"), true},
		{"other", errors.New("disk I/O error"), false},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}
