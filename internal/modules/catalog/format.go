package catalog

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"staybook/internal/domain"
)

var printer = message.NewPrinter(language.English)

// FormatPrice renders a monthly price with thousands separators, e.g. "$2,400".
func FormatPrice(price float64) string {
	if price == math.Trunc(price) {
		return printer.Sprintf("$%d", int64(price))
	}
	return printer.Sprintf("$%.2f", price)
}

// FormatAddress joins the non-empty address, city and state parts.
func FormatAddress(loc domain.Location) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{loc.Address, loc.City, loc.State} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
