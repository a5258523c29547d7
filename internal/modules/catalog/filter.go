package catalog

import (
	"strings"

	"staybook/internal/domain"
)

// Filter keeps the properties whose title, address, city or state contain
// query, ignoring case. The query is matched as typed, surrounding spaces
// included. An empty query keeps everything.
func Filter(properties []domain.Property, query string) []domain.Property {
	q := strings.ToLower(query)
	if q == "" {
		return properties
	}

	out := make([]domain.Property, 0, len(properties))
	for _, p := range properties {
		if matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p domain.Property, q string) bool {
	for _, field := range []string{p.Title, p.Location.Address, p.Location.City, p.Location.State} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
