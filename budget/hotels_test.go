package budget

import (
	"strings"
	"testing"
)

func TestNightsFromDays(t *testing.T) {
	cases := []struct{ days, want int }{
		{0, 1},
		{1, 1},
		{2, 1},
		{3, 2},
		{7, 6},
	}
	for _, c := range cases {
		if got := NightsFromDays(c.days); got != c.want {
			t.Errorf("NightsFromDays(%d) = %d, want %d", c.days, got, c.want)
		}
	}
}

func TestHotelsCost_PerNightTimesNights(t *testing.T) {
	hotels := []Hotel{{HotelName: "Casa Manila", PricePerNight: PriceString("₱2,000"), PricingType: "per room"}}
	total, warnings := HotelsCost(hotels, 3)
	if total != 6000 {
		t.Fatalf("expected 6000, got %v", total)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestHotelsCost_EmptyList(t *testing.T) {
	if total, _ := HotelsCost(nil, 3); total != 0 {
		t.Errorf("expected 0 for no hotels, got %v", total)
	}
}

// TestHotelsCost_FirstHotelWins pins the contract that the upstream
// producer orders hotels recommended-first.
func TestHotelsCost_FirstHotelWins(t *testing.T) {
	hotels := []Hotel{
		{HotelName: "Budget Inn", PricePerNight: Price(1200), PricingType: "per room"},
		{HotelName: "Luxury Resort", PricePerNight: Price(9500), PricingType: "per room"},
	}
	total, _ := HotelsCost(hotels, 2)
	if total != 2400 {
		t.Fatalf("expected 2400 from the first hotel, got %v", total)
	}
}

func TestHotelNightlyPrice_FieldPriority(t *testing.T) {
	h := Hotel{
		PricePerNight: PriceString("₱1,800"),
		PriceRange:    PriceString("₱2,000 - ₱3,000"),
		Price:         Price(5000),
	}
	nightly, field := h.NightlyPrice()
	if nightly != 1800 || field != "pricePerNight" {
		t.Fatalf("expected 1800 from pricePerNight, got %v from %q", nightly, field)
	}

	h.PricePerNight = PriceValue{}
	nightly, field = h.NightlyPrice()
	if nightly != 2500 || field != "price_range" {
		t.Fatalf("expected 2500 from price_range, got %v from %q", nightly, field)
	}

	h.PriceRange = PriceValue{}
	nightly, field = h.NightlyPrice()
	if nightly != 5000 || field != "price" {
		t.Fatalf("expected 5000 from price, got %v from %q", nightly, field)
	}
}

// TestHotelNightlyPrice_ZeroFallsThrough checks that an explicit zero in a
// higher-priority field does not shadow a real price in a lower one.
func TestHotelNightlyPrice_ZeroFallsThrough(t *testing.T) {
	h := Hotel{PricePerNight: Price(0), Price: Price(3200)}
	nightly, field := h.NightlyPrice()
	if nightly != 3200 || field != "price" {
		t.Fatalf("expected 3200 from price, got %v from %q", nightly, field)
	}
}

func TestHotelsCost_PerPersonPricingWarns(t *testing.T) {
	hotels := []Hotel{{HotelName: "Dorm Stay", PricePerNight: Price(800), PricingType: "per person"}}
	total, warnings := HotelsCost(hotels, 2)
	if total != 1600 {
		t.Fatalf("expected 1600, got %v", total)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "per person") {
		t.Errorf("expected a per-person pricing warning, got %v", warnings)
	}
}

func TestHotelsCost_MissingPricingTypeWarns(t *testing.T) {
	hotels := []Hotel{{HotelName: "Seaside Lodge", PricePerNight: Price(2500)}}
	_, warnings := HotelsCost(hotels, 2)
	if len(warnings) != 1 || !strings.Contains(warnings[0], "pricing type") {
		t.Errorf("expected a missing pricing-type warning, got %v", warnings)
	}
}

func TestHotelsCost_NoPriceWarns(t *testing.T) {
	hotels := []Hotel{{HotelName: "Mystery Hotel", PricingType: "per room"}}
	total, warnings := HotelsCost(hotels, 4)
	if total != 0 {
		t.Errorf("expected 0, got %v", total)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "no nightly price") {
		t.Errorf("expected a no-price warning, got %v", warnings)
	}
}
