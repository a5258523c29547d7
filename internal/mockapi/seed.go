package mockapi

import (
	"context"
	"fmt"

	"staybook/internal/domain"
)

// SampleProperties returns the listings the fixture API starts with.
func SampleProperties() []domain.Property {
	return []domain.Property{
		{
			ID:    "1",
			Title: "Oceanfront Villa",
			Price: 450,
			Location: domain.Location{
				Address: "21 Carbon Beach Rd", City: "Malibu", State: "CA", Country: "USA",
				Coordinates: domain.Coordinates{Latitude: 34.0259, Longitude: -118.7798},
			},
			Features: []string{"Ocean view", "Private pool", "WiFi", "Parking"},
			Images: []string{
				"https://images.example.com/properties/1/front.jpg",
				"https://images.example.com/properties/1/pool.jpg",
			},
		},
		{
			ID:    "2",
			Title: "Downtown Loft",
			Price: 180,
			Location: domain.Location{
				Address: "88 Spring St", City: "New York", State: "NY", Country: "USA",
				Coordinates: domain.Coordinates{Latitude: 40.7222, Longitude: -73.9973},
			},
			Features: []string{"WiFi", "Gym", "Elevator"},
			Images:   []string{"https://images.example.com/properties/2/living.jpg"},
		},
		{
			ID:    "3",
			Title: "Mountain Cabin Retreat",
			Price: 220,
			Location: domain.Location{
				Address: "5 Pine Ridge Way", City: "Aspen", State: "CO", Country: "USA",
				Coordinates: domain.Coordinates{Latitude: 39.1911, Longitude: -106.8175},
			},
			Features: []string{"Fireplace", "Hot tub", "Ski-in access"},
			Images:   []string{"https://images.example.com/properties/3/cabin.jpg"},
		},
		{
			ID:    "4",
			Title: "Lakeside Cottage",
			Price: 2400,
			Location: domain.Location{
				Address: "340 Shoreline Dr", City: "Lake Tahoe", State: "NV", Country: "USA",
				Coordinates: domain.Coordinates{Latitude: 39.0968, Longitude: -120.0324},
			},
			Features: []string{"Boat dock", "Kayaks", "WiFi"},
			Images:   []string{},
		},
	}
}

// DemoProfile is the profile the client's demo user reads.
func DemoProfile(userID string) domain.UserProfile {
	return domain.UserProfile{
		ID:       userID,
		Name:     "Demo Guest",
		Email:    userID + "@staybook.example",
		Bookings: []string{},
	}
}

// Seed upserts the sample listings and the demo profile. Existing bookings
// are kept.
func Seed(ctx context.Context, properties PropertyRepository, profiles ProfileRepository, userID string) error {
	for _, p := range SampleProperties() {
		if err := properties.Upsert(ctx, p); err != nil {
			return fmt.Errorf("seed property %s: %w", p.ID, err)
		}
	}

	profile := DemoProfile(userID)
	if existing, err := profiles.GetByID(ctx, userID); err == nil {
		profile.Bookings = existing.Bookings
	}
	if err := profiles.Upsert(ctx, profile); err != nil {
		return fmt.Errorf("seed profile %s: %w", userID, err)
	}
	return nil
}
