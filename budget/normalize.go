package budget

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"lakbay/jsonrepair"
)

// ─── Payload normalization ───────────────────────────────────────────────────
//
// Trip payloads reach the engine in whatever shape the upstream producer
// managed to emit: objects, JSON-encoded strings of objects, fenced LLM
// output, truncated arrays. Everything here decodes to one canonical shape
// and never returns an error; what cannot be salvaged becomes a zero value.

// NormalizeTrip parses a full trip record from raw JSON, repairing the
// payload when a strict parse fails. A partially decoded record from the
// strict pass is kept when the repair cannot do better.
func NormalizeTrip(data []byte) Trip {
	var trip Trip
	if json.Unmarshal(data, &trip) == nil {
		return trip
	}
	var repaired Trip
	if jsonrepair.Decode(data, &repaired) == nil {
		return repaired
	}
	return trip
}

// ResolveTripData parses a raw tripData payload, accepting an object or a
// JSON-encoded string of one.
func ResolveTripData(raw json.RawMessage) TripData {
	var t TripData
	_ = json.Unmarshal(raw, &t)
	return t
}

func (t *TripData) UnmarshalJSON(data []byte) error {
	*t = TripData{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if json.Unmarshal(data, &s) != nil {
			return nil
		}
		data = []byte(s)
	}
	m := looseObject(data)
	if m == nil {
		return nil
	}
	field := func(dst any, keys ...string) {
		for _, k := range keys {
			if raw, ok := m[k]; ok {
				_ = json.Unmarshal(raw, dst)
				return
			}
		}
	}
	field(&t.Itinerary, "itinerary")
	field(&t.ItineraryData, "itinerary_data", "itineraryData")
	field(&t.Hotels, "hotels", "hotelOptions", "hotel_options")
	field(&t.Flights, "flights", "flightOptions", "flight_options")
	field(&t.TotalCost, "total_cost", "totalCost")
	field(&t.GroundTransport, "ground_transport", "groundTransport")
	field(&t.Transportation, "transportation")
	field(&t.BudgetCompliance, "budgetCompliance", "budget_compliance")
	field(&t.DailyCosts, "dailyCosts", "daily_costs")
	field(&t.MissingPrices, "missingPrices", "missing_prices")
	field(&t.PricingNotes, "pricingNotes", "pricing_notes")
	field(&t.GrandTotal, "grandTotal", "grand_total")
	return nil
}

// Days returns the usable itinerary, preferring the primary field over
// the legacy alias.
func (t TripData) Days() []Day {
	if len(t.Itinerary) > 0 {
		return t.Itinerary
	}
	return t.ItineraryData
}

// looseObject decodes a JSON object out of possibly fenced, prose-wrapped
// or truncated text.
func looseObject(data []byte) map[string]json.RawMessage {
	var m map[string]json.RawMessage
	if json.Unmarshal(data, &m) == nil {
		return m
	}
	m = nil
	if jsonrepair.Decode(data, &m) == nil {
		return m
	}
	return nil
}

// rawItems normalizes a list field that may arrive as a JSON array or as
// a JSON-encoded string containing one.
func rawItems(data []byte) []json.RawMessage {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if json.Unmarshal(data, &s) != nil {
			return nil
		}
		data = []byte(s)
	} else if data[0] != '[' {
		return nil
	}
	var items []json.RawMessage
	if json.Unmarshal(data, &items) != nil {
		items = nil
		if jsonrepair.Decode(data, &items) != nil {
			return nil
		}
	}
	return items
}

func (l *DayList) UnmarshalJSON(data []byte) error {
	*l = nil
	for _, item := range rawItems(data) {
		var d Day
		_ = json.Unmarshal(item, &d)
		*l = append(*l, d)
	}
	return nil
}

func (l *HotelList) UnmarshalJSON(data []byte) error {
	*l = nil
	for _, item := range rawItems(data) {
		var h Hotel
		_ = json.Unmarshal(item, &h)
		*l = append(*l, h)
	}
	return nil
}

func (l *FlightList) UnmarshalJSON(data []byte) error {
	*l = nil
	for _, item := range rawItems(data) {
		var f Flight
		_ = json.Unmarshal(item, &f)
		*l = append(*l, f)
	}
	return nil
}

func (l *DailyCostList) UnmarshalJSON(data []byte) error {
	*l = nil
	for _, item := range rawItems(data) {
		var d DailyCost
		_ = json.Unmarshal(item, &d)
		*l = append(*l, d)
	}
	return nil
}

func (d *Day) UnmarshalJSON(data []byte) error {
	*d = Day{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if json.Unmarshal(data, &s) == nil {
			d.PlanText = s
		}
		return nil
	}
	var m map[string]json.RawMessage
	if json.Unmarshal(data, &m) != nil {
		return nil
	}
	d.Label = labelText(m["day"])
	if d.Label == "" {
		d.Label = labelText(m["dayNumber"])
	}
	if raw, ok := m["theme"]; ok {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			d.Theme = s
		}
	}
	for _, key := range []string{"activities", "plan", "plan_text", "planText"} {
		raw, ok := m[key]
		if !ok {
			continue
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}
		if raw[0] == '"' {
			var s string
			if json.Unmarshal(raw, &s) == nil && strings.TrimSpace(s) != "" && d.PlanText == "" {
				d.PlanText = s
			}
			continue
		}
		if raw[0] == '[' && len(d.Activities) == 0 {
			d.Activities = decodeActivities(raw)
		}
	}
	return nil
}

func (d Day) MarshalJSON() ([]byte, error) {
	m := map[string]any{}
	if d.Label != "" {
		m["day"] = d.Label
	}
	if d.Theme != "" {
		m["theme"] = d.Theme
	}
	if d.Activities != nil {
		m["activities"] = d.Activities
	}
	if d.PlanText != "" {
		m["plan"] = d.PlanText
	}
	return json.Marshal(m)
}

func labelText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return strings.TrimSpace(s)
		}
		return ""
	}
	var n float64
	if json.Unmarshal(raw, &n) == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

func decodeActivities(raw json.RawMessage) []Activity {
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		return nil
	}
	acts := make([]Activity, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || string(item) == "null" {
			continue
		}
		var a Activity
		if item[0] == '"' {
			var s string
			if json.Unmarshal(item, &s) != nil {
				continue
			}
			a.PlaceName = s
		} else {
			_ = json.Unmarshal(item, &a)
		}
		acts = append(acts, a)
	}
	return acts
}
