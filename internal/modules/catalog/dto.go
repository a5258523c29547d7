package catalog

import "staybook/internal/domain"

// Listing is a property card: the property plus whether the user holds a
// confirmed booking for it.
type Listing struct {
	domain.Property
	Booked bool
}

// Details backs the property details screen. When Booked is true the date
// picker and submit control are replaced by a booked badge.
type Details struct {
	Property domain.Property
	Booked   bool
	// BookingsErr is set when the user's bookings could not be loaded; Booked
	// then reflects whatever the store already held.
	BookingsErr error
}
