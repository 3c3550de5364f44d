package budget

import (
	"strings"
	"testing"
)

func TestActivitiesCost_StructuredDays(t *testing.T) {
	days := []Day{
		{Activities: []Activity{{PlaceName: "Fort Santiago", TicketPrice: PriceString("₱200")}}},
		{Activities: []Activity{{PlaceName: "Rizal Park", TicketPrice: PriceString("Free")}}},
	}
	total, warnings := ActivitiesCost(days)
	if total != 200 {
		t.Fatalf("expected total 200, got %v", total)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestActivitiesCost_NilItinerary(t *testing.T) {
	total, warnings := ActivitiesCost(nil)
	if total != 0 {
		t.Errorf("expected 0 for nil itinerary, got %v", total)
	}
	if warnings != nil {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestActivitiesCost_PlanTextDays(t *testing.T) {
	days := []Day{
		{PlanText: "Breakfast at Aling Lucing | Sisig tour ₱350 | Walk around the plaza - Free"},
		{PlanText: "Island hopping PHP 1,500 | Sunset viewing"},
	}
	total, _ := ActivitiesCost(days)
	if total != 1850 {
		t.Fatalf("expected total 1850, got %v", total)
	}
}

// TestActivitiesCost_MixedShapes checks that structured and flattened days
// coexist in one itinerary, each priced by its own rules.
func TestActivitiesCost_MixedShapes(t *testing.T) {
	days := []Day{
		{Activities: []Activity{{PlaceName: "Chocolate Hills", TicketPrice: Price(100)}}},
		{PlanText: "Loboc river cruise ₱850 | Tarsier sanctuary ₱120"},
	}
	total, _ := ActivitiesCost(days)
	if total != 1070 {
		t.Fatalf("expected total 1070, got %v", total)
	}
}

func TestActivitiesCost_MissingPriceWarns(t *testing.T) {
	days := []Day{
		{Label: "1", Activities: []Activity{{PlaceName: "Hidden Beach"}}},
	}
	total, warnings := ActivitiesCost(days)
	if total != 0 {
		t.Errorf("expected total 0, got %v", total)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "Hidden Beach") {
		t.Errorf("warning should name the activity, got %q", warnings[0])
	}
}

func TestActivitiesCost_UnparsablePriceWarns(t *testing.T) {
	days := []Day{
		{Activities: []Activity{{PlaceName: "Zipline", TicketPrice: PriceString("Varies")}}},
	}
	total, warnings := ActivitiesCost(days)
	if total != 0 {
		t.Errorf("expected total 0, got %v", total)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "Varies") {
		t.Errorf("warning should quote the bad price, got %q", warnings[0])
	}
}

// TestActivitiesCost_ZeroSentinelsDoNotWarn pins the difference between a
// price that means zero and a price that failed to parse.
func TestActivitiesCost_ZeroSentinelsDoNotWarn(t *testing.T) {
	days := []Day{
		{Activities: []Activity{
			{PlaceName: "Public Beach", TicketPrice: PriceString("Free")},
			{PlaceName: "Old Church", TicketPrice: PriceString("₱0")},
			{PlaceName: "Viewpoint", TicketPrice: Price(0)},
		}},
	}
	total, warnings := ActivitiesCost(days)
	if total != 0 {
		t.Errorf("expected total 0, got %v", total)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings for explicit zero prices, got %v", warnings)
	}
}
