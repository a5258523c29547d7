package profile

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"staybook/internal/api"
	"staybook/internal/domain"
	"staybook/internal/querycache"
	"staybook/internal/store"
)

type ProfileAPI interface {
	GetProfile(ctx context.Context, userID string) (domain.UserProfile, error)
}

type Stats struct {
	TotalBookings int
}

func StatsFor(p domain.UserProfile) Stats {
	return Stats{TotalBookings: len(p.Bookings)}
}

type Service struct {
	api    ProfileAPI
	users  *store.UserStore
	cache  *querycache.Cache
	userID string
	log    *zap.Logger
}

func NewService(profiles ProfileAPI, users *store.UserStore, cache *querycache.Cache, userID string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{api: profiles, users: users, cache: cache, userID: userID, log: log}
}

func ProfileKey(userID string) querycache.Key { return querycache.Key{"profile", userID} }

// Load returns the user's profile through the cache and mirrors it into the
// user store.
func (s *Service) Load(ctx context.Context) (domain.UserProfile, error) {
	return s.load(ctx, querycache.Fetch[domain.UserProfile])
}

func (s *Service) Refresh(ctx context.Context) (domain.UserProfile, error) {
	return s.load(ctx, querycache.Refetch[domain.UserProfile])
}

type fetchFunc func(context.Context, *querycache.Cache, querycache.Key, func(context.Context) (domain.UserProfile, error)) (domain.UserProfile, error)

func (s *Service) load(ctx context.Context, fetch fetchFunc) (domain.UserProfile, error) {
	p, err := fetch(ctx, s.cache, ProfileKey(s.userID), func(ctx context.Context) (domain.UserProfile, error) {
		return s.api.GetProfile(ctx, s.userID)
	})
	if err != nil {
		if api.IsNotFound(err) {
			return domain.UserProfile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, s.userID)
		}
		return domain.UserProfile{}, err
	}
	s.users.SetProfile(p)
	return p, nil
}

// Logout forgets the loaded profile.
func (s *Service) Logout() {
	s.users.ClearProfile()
	s.cache.Remove(ProfileKey(s.userID))
	s.log.Info("profile cleared", zap.String("user_id", s.userID))
}
