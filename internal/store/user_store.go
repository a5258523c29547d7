package store

import (
	"sync"

	"staybook/internal/domain"
)

// UserStore holds the signed-in user's profile, if one has been loaded.
type UserStore struct {
	mu      sync.RWMutex
	profile *domain.UserProfile
}

func NewUserStore() *UserStore {
	return &UserStore{}
}

func (s *UserStore) Profile() (domain.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return domain.UserProfile{}, false
	}
	return *s.profile, true
}

func (s *UserStore) SetProfile(p domain.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &p
}

func (s *UserStore) ClearProfile() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
}
