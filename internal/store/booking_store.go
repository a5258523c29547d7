package store

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"staybook/internal/domain"
)

// BookingStore mirrors the current user's bookings for the lifetime of the
// session. Every write replaces the backing slice, so slices handed out by
// Bookings are never mutated afterwards.
//
// Writes and sync starts draw tickets from one counter. ApplySync drops a
// fetched list whose ticket is older than the last applied write, which keeps
// a slow reconciliation fetch from erasing a newer local insert.
type BookingStore struct {
	mu       sync.RWMutex
	bookings []domain.BookingWithProperty
	ticket   uint64
	applied  uint64
	log      *zap.Logger
}

func NewBookingStore(log *zap.Logger) *BookingStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingStore{log: log}
}

func (s *BookingStore) Bookings() []domain.BookingWithProperty {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bookings
}

func (s *BookingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookings)
}

func (s *BookingStore) Get(id string) (domain.BookingWithProperty, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(id)
	if i < 0 {
		return domain.BookingWithProperty{}, false
	}
	return s.bookings[i], true
}

// SetBookings replaces the whole collection with list.
func (s *BookingStore) SetBookings(list []domain.BookingWithProperty) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(slices.Clone(list), s.nextTicketLocked())
}

// AddBooking appends b, or replaces the entry with the same id.
func (s *BookingStore) AddBooking(b domain.BookingWithProperty) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.bookings)
	if i := s.indexLocked(b.ID); i >= 0 {
		next[i] = b
	} else {
		next = append(next, b)
	}
	s.replaceLocked(next, s.nextTicketLocked())
}

// UpdateBooking merges patch into the entry with id. Unknown ids are ignored.
func (s *BookingStore) UpdateBooking(id string, patch domain.BookingPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return
	}
	next := slices.Clone(s.bookings)
	next[i] = patch.Apply(next[i])
	s.replaceLocked(next, s.nextTicketLocked())
}

// RemoveBooking deletes the entry with id. Unknown ids are ignored.
func (s *BookingStore) RemoveBooking(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(id) < 0 {
		return
	}
	next := slices.DeleteFunc(slices.Clone(s.bookings), func(b domain.BookingWithProperty) bool {
		return b.ID == id
	})
	s.replaceLocked(next, s.nextTicketLocked())
}

// BeginSync issues the ticket a fetch must present to ApplySync.
func (s *BookingStore) BeginSync() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextTicketLocked()
}

// ApplySync replaces the collection with a fetched list unless a write with
// a newer ticket has already been applied. It reports whether list was applied.
func (s *BookingStore) ApplySync(ticket uint64, list []domain.BookingWithProperty) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket < s.applied {
		s.log.Debug("dropping out-of-order booking sync",
			zap.Uint64("ticket", ticket),
			zap.Uint64("applied", s.applied),
		)
		return false
	}
	s.replaceLocked(slices.Clone(list), ticket)
	return true
}

// IsBooked reports whether the store holds a confirmed booking for propertyID.
func (s *BookingStore) IsBooked(propertyID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return IsBooked(s.bookings, propertyID)
}

func (s *BookingStore) nextTicketLocked() uint64 {
	s.ticket++
	return s.ticket
}

func (s *BookingStore) replaceLocked(next []domain.BookingWithProperty, ticket uint64) {
	s.bookings = next
	s.applied = ticket
}

func (s *BookingStore) indexLocked(id string) int {
	return slices.IndexFunc(s.bookings, func(b domain.BookingWithProperty) bool {
		return b.ID == id
	})
}
