package domain

type UserProfile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Bookings []string `json:"bookings"`
}
