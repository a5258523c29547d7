package booking

import "staybook/internal/domain"

const RouteBookings = "/bookings"

type Alert struct {
	Title   string
	Message string
}

var (
	AlertInvalidDates = Alert{
		Title:   "Invalid Dates",
		Message: "Check-out date must be after check-in date.",
	}
	AlertBookingConfirmed = Alert{
		Title:   "Booking Confirmed",
		Message: "Your booking has been successfully created!",
	}
	AlertBookingFailed = Alert{
		Title:   "Booking Failed",
		Message: "There was an error creating your booking. Please try again.",
	}
)

type syncResult struct {
	ticket   uint64
	bookings []domain.BookingWithProperty
}
