package budget

import (
	"fmt"
	"strings"
)

// NightsFromDays converts a trip length in days to billable hotel nights:
// one fewer than the days, floored at one night for day trips.
func NightsFromDays(days int) int {
	if days <= 1 {
		return 1
	}
	return days - 1
}

// NightlyPrice resolves the hotel's nightly rate from its price aliases,
// the first non-empty field winning: pricePerNight, then price_range,
// then price. The name of the field used is returned for diagnostics;
// empty means the hotel carries no price at all.
func (h Hotel) NightlyPrice() (float64, string) {
	switch {
	case h.PricePerNight.HasValue():
		return h.PricePerNight.Amount(), "pricePerNight"
	case h.PriceRange.HasValue():
		return h.PriceRange.Amount(), "price_range"
	case h.Price.HasValue():
		return h.Price.Amount(), "price"
	}
	return 0, ""
}

// HotelsCost prices the whole stay using the first hotel of the list,
// which the upstream producer orders recommended-first. Ambiguous pricing
// metadata is warned about but never auto-corrected; the nightly rate is
// taken at face value either way.
func HotelsCost(hotels []Hotel, numNights int) (float64, []string) {
	if len(hotels) == 0 {
		return 0, nil
	}
	if numNights < 1 {
		numNights = 1
	}
	h := hotels[0]
	name := h.HotelName
	if name == "" {
		name = "selected hotel"
	}

	nightly, field := h.NightlyPrice()
	var warnings []string
	if field == "" {
		warnings = append(warnings, fmt.Sprintf("%s has no nightly price, accommodation counted as ₱0", name))
	}
	switch pt := strings.ToLower(strings.TrimSpace(h.PricingType)); {
	case pt == "":
		warnings = append(warnings, fmt.Sprintf("%s does not state its pricing type, assuming a per-room nightly rate", name))
	case strings.Contains(pt, "person"):
		warnings = append(warnings, fmt.Sprintf("%s is priced per person, the stay may cost more for the whole group", name))
	}
	return nightly * float64(numNights), warnings
}
