package store

import "staybook/internal/domain"

// IsBooked reports whether bookings contain a confirmed booking for
// propertyID. Pending and cancelled bookings do not count.
func IsBooked(bookings []domain.BookingWithProperty, propertyID string) bool {
	for _, b := range bookings {
		if b.PropertyID == propertyID && b.Status == domain.BookingConfirmed {
			return true
		}
	}
	return false
}
