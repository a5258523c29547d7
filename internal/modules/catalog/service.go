package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"staybook/internal/api"
	"staybook/internal/domain"
	"staybook/internal/querycache"
	"staybook/internal/store"
)

type Service struct {
	properties PropertyAPI
	loader     BookingsLoader
	bookings   *store.BookingStore
	cache      *querycache.Cache
	log        *zap.Logger
}

func NewService(
	properties PropertyAPI,
	loader BookingsLoader,
	bookings *store.BookingStore,
	cache *querycache.Cache,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{properties, loader, bookings, cache, log}
}

func PropertiesKey() querycache.Key { return querycache.Key{"properties"} }

func PropertyKey(id string) querycache.Key { return querycache.Key{"property", id} }

/* ---------- LISTINGS ---------- */

// ListProperties returns the cached property list filtered by query.
func (s *Service) ListProperties(ctx context.Context, query string) ([]Listing, error) {
	all, err := querycache.Fetch(ctx, s.cache, PropertiesKey(), s.properties.GetProperties)
	if err != nil {
		return nil, err
	}
	return s.listings(Filter(all, query)), nil
}

// RefreshProperties is the retry path of the listings screen.
func (s *Service) RefreshProperties(ctx context.Context, query string) ([]Listing, error) {
	all, err := querycache.Refetch(ctx, s.cache, PropertiesKey(), s.properties.GetProperties)
	if err != nil {
		return nil, err
	}
	return s.listings(Filter(all, query)), nil
}

func (s *Service) listings(props []domain.Property) []Listing {
	bookings := s.bookings.Bookings()
	out := make([]Listing, 0, len(props))
	for _, p := range props {
		out = append(out, Listing{Property: p, Booked: store.IsBooked(bookings, p.ID)})
	}
	return out
}

/* ---------- DETAILS ---------- */

// Details loads one property and the user's bookings, then derives whether
// the property is already booked.
func (s *Service) Details(ctx context.Context, id string) (*Details, error) {
	p, err := querycache.Fetch(ctx, s.cache, PropertyKey(id), func(ctx context.Context) (domain.Property, error) {
		return s.properties.GetProperty(ctx, id)
	})
	if err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrPropertyNotFound, id)
		}
		return nil, err
	}

	d := &Details{Property: p}
	if _, err := s.loader.ListBookings(ctx); err != nil {
		s.log.Warn("bookings unavailable for details screen",
			zap.String("property_id", id),
			zap.Error(err),
		)
		d.BookingsErr = err
	}
	d.Booked = s.bookings.IsBooked(id)
	return d, nil
}
