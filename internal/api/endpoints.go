package api

import "net/url"

const (
	bookingsPath   = "/bookings"
	propertiesPath = "/properties"
	profilePath    = "/profile"
)

func BookingsEndpoint() string { return bookingsPath }

func BookingEndpoint(id string) string {
	return bookingsPath + "/" + url.PathEscape(id)
}

func UserBookingsEndpoint(userID string) string {
	return bookingsPath + "?" + url.Values{"userId": {userID}}.Encode()
}

func PropertiesEndpoint() string { return propertiesPath }

func PropertyEndpoint(id string) string {
	return propertiesPath + "/" + url.PathEscape(id)
}

func ProfileEndpoint(userID string) string {
	return profilePath + "?" + url.Values{"id": {userID}}.Encode()
}
