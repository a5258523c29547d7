package domain

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// DateLayout is the wire format of check-in and check-out dates.
const DateLayout = "2006-01-02"

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID         string        `json:"id"`
	PropertyID string        `json:"propertyId"`
	UserID     string        `json:"userId"`
	CheckIn    string        `json:"checkIn"`
	CheckOut   string        `json:"checkOut"`
	Status     BookingStatus `json:"status"`
}

// BookingWithProperty is a booking joined with the property it reserves.
// Property.ID always equals PropertyID.
type BookingWithProperty struct {
	Booking
	Property Property `json:"property"`
}

func JoinBooking(b Booking, p Property) BookingWithProperty {
	b.PropertyID = p.ID
	return BookingWithProperty{Booking: b, Property: p}
}

// BookingPatch carries the fields UpdateBooking may change. Nil fields are kept.
type BookingPatch struct {
	Status   *BookingStatus
	CheckIn  *string
	CheckOut *string
	Property *Property
}

// Apply returns b with the non-nil patch fields merged in.
func (p BookingPatch) Apply(b BookingWithProperty) BookingWithProperty {
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.CheckIn != nil {
		b.CheckIn = *p.CheckIn
	}
	if p.CheckOut != nil {
		b.CheckOut = *p.CheckOut
	}
	if p.Property != nil {
		b.Property = *p.Property
		b.PropertyID = p.Property.ID
	}
	return b
}
