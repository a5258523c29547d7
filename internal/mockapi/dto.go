package mockapi

import "staybook/internal/domain"

type CreateBookingRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
	UserID     string `json:"userId" validate:"required"`
	CheckIn    string `json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut   string `json:"checkOut" validate:"required,datetime=2006-01-02"`
	Status     string `json:"status" validate:"omitempty,oneof=confirmed pending cancelled"`
}

type UpdateBookingRequest struct {
	PropertyID *string `json:"propertyId" validate:"omitempty,min=1"`
	CheckIn    *string `json:"checkIn" validate:"omitempty,datetime=2006-01-02"`
	CheckOut   *string `json:"checkOut" validate:"omitempty,datetime=2006-01-02"`
	Status     *string `json:"status" validate:"omitempty,oneof=confirmed pending cancelled"`
}

func (r UpdateBookingRequest) patch() domain.BookingPatch {
	p := domain.BookingPatch{CheckIn: r.CheckIn, CheckOut: r.CheckOut}
	if r.Status != nil {
		s := domain.BookingStatus(*r.Status)
		p.Status = &s
	}
	if r.PropertyID != nil {
		p.Property = &domain.Property{ID: *r.PropertyID}
	}
	return p
}
