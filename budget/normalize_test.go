package budget

import (
	"encoding/json"
	"testing"
)

// TestTripDataFromFencedString feeds tripData the way an LLM actually
// returns it: fenced, prose-wrapped, and inside a JSON string.
func TestTripDataFromFencedString(t *testing.T) {
	payload := "{\"tripData\": \"Here is your plan:\\n```json\\n{\\\"total_cost\\\": 1200, \\\"hotels\\\": [{\\\"hotelName\\\": \\\"Inn\\\"}]}\\n```\"}"
	var trip Trip
	if err := json.Unmarshal([]byte(payload), &trip); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if n, ok := trip.TripData.TotalCost.Number(); !ok || n != 1200 {
		t.Errorf("total_cost = %v (ok=%v), want 1200", n, ok)
	}
	if len(trip.TripData.Hotels) != 1 || trip.TripData.Hotels[0].HotelName != "Inn" {
		t.Errorf("hotels not recovered: %+v", trip.TripData.Hotels)
	}
}

func TestTripDataGarbageYieldsZeroValue(t *testing.T) {
	var data TripData
	if err := json.Unmarshal([]byte(`"not json at all"`), &data); err != nil {
		t.Fatalf("decoding must not fail, got %v", err)
	}
	if len(data.Days()) != 0 || len(data.Hotels) != 0 || len(data.Flights) != 0 {
		t.Errorf("expected empty canonical shapes, got %+v", data)
	}
}

func TestDayList_FromEncodedString(t *testing.T) {
	var data TripData
	payload := `{"itinerary": "[{\"day\": 1, \"activities\": [{\"placeName\": \"Beach\", \"ticketPrice\": \"Free\"}]}]"}`
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	days := data.Days()
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	if len(days[0].Activities) != 1 || days[0].Activities[0].PlaceName != "Beach" {
		t.Errorf("activities not recovered: %+v", days[0])
	}
}

func TestDayAsPlainString(t *testing.T) {
	var days DayList
	payload := `["Visit Intramuros ₱75 | Lunch at Binondo | Manila Ocean Park ₱700"]`
	if err := json.Unmarshal([]byte(payload), &days); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if len(days) != 1 || days[0].PlanText == "" {
		t.Fatalf("expected one plan-text day, got %+v", days)
	}
	total, _ := ActivitiesCost(days)
	if total != 775 {
		t.Errorf("plan-text day total = %v, want 775", total)
	}
}

// TestDayActivitiesAsString covers the shape where a day's activities
// arrive flattened into one string under the activities key.
func TestDayActivitiesAsString(t *testing.T) {
	var days DayList
	payload := `[{"day": 2, "activities": "Snorkeling ₱500 | Beach walk - Free"}]`
	if err := json.Unmarshal([]byte(payload), &days); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	if days[0].PlanText == "" {
		t.Fatalf("expected the string to land in the plan text, got %+v", days[0])
	}
	total, _ := ActivitiesCost(days)
	if total != 500 {
		t.Errorf("total = %v, want 500", total)
	}
}

func TestItineraryDataAlias(t *testing.T) {
	var data TripData
	payload := `{"itinerary_data": [{"day": 1, "activities": [{"placeName": "X", "ticketPrice": 100}]}]}`
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if len(data.Days()) != 1 {
		t.Fatalf("alias itinerary was not picked up: %+v", data)
	}
}

func TestTruncatedHotelsArrayRecovered(t *testing.T) {
	var data TripData
	payload := `{"hotels": "[{\"hotelName\": \"Recovered Inn\", \"pricePerNight\": 2500}, {\"hotelName\": \"Lost"}`
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if len(data.Hotels) == 0 {
		t.Fatal("expected at least the complete hotel to be recovered")
	}
	if data.Hotels[0].HotelName != "Recovered Inn" {
		t.Errorf("first hotel = %q, want Recovered Inn", data.Hotels[0].HotelName)
	}
}

func TestFlexCount_Shapes(t *testing.T) {
	cases := []struct {
		payload string
		want    int
	}{
		{`{"travelers": 2}`, 2},
		{`{"travelers": "2"}`, 2},
		{`{"travelers": "2 People"}`, 2},
		{`{"travelers": 2.9}`, 2},
	}
	for _, c := range cases {
		var sel UserSelection
		if err := json.Unmarshal([]byte(c.payload), &sel); err != nil {
			t.Fatalf("decode %s: %v", c.payload, err)
		}
		if got := sel.TravelerCount(); got != c.want {
			t.Errorf("TravelerCount for %s = %d, want %d", c.payload, got, c.want)
		}
	}

	var sel UserSelection
	if err := json.Unmarshal([]byte(`{"travelers": "a few friends"}`), &sel); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if got := sel.TravelerCount(); got != 1 {
		t.Errorf("unparsable traveler count should default to 1, got %d", got)
	}
}

func TestPriceValue_KindsSurviveDecode(t *testing.T) {
	var f Flight
	if err := json.Unmarshal([]byte(`{"total_price_numeric": "₱12,000"}`), &f); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if _, ok := f.TotalPriceNumeric.Number(); ok {
		t.Error("a string total must not report the numeric kind")
	}
	if s, ok := f.TotalPriceNumeric.Text(); !ok || s != "₱12,000" {
		t.Errorf("string kind lost: %q (ok=%v)", s, ok)
	}
}

// TestNormalizeTrip_RepairsTruncatedRecord cuts a trip record mid-list;
// the complete flights before the cut must survive.
func TestNormalizeTrip_RepairsTruncatedRecord(t *testing.T) {
	raw := []byte(`{"userSelection": {"destination": "Siargao", "noOfDays": 4, "travelers": 2}, "tripData": {"flights": [{"airline": "PAL Express", "total_price_numeric": 9000}, {"airline": "Ceb`)
	trip := NormalizeTrip(raw)
	if trip.UserSelection.Destination != "Siargao" {
		t.Fatalf("destination lost: %+v", trip.UserSelection)
	}
	if len(trip.TripData.Flights) != 1 {
		t.Fatalf("expected the complete flight to survive, got %+v", trip.TripData.Flights)
	}
	if trip.TripData.Flights[0].Airline != "PAL Express" {
		t.Errorf("airline = %q, want PAL Express", trip.TripData.Flights[0].Airline)
	}
	if n, ok := trip.TripData.Flights[0].TotalPriceNumeric.Number(); !ok || n != 9000 {
		t.Errorf("total_price_numeric = %v (ok=%v), want 9000", n, ok)
	}
}

func TestNormalizeTrip_KeepsPartialOnTypeError(t *testing.T) {
	raw := []byte(`{"id": 5, "userSelection": {"destination": "Siargao"}}`)
	trip := NormalizeTrip(raw)
	if trip.UserSelection.Destination != "Siargao" {
		t.Errorf("partial decode lost the selection: %+v", trip)
	}
	if trip.ID != "" {
		t.Errorf("mistyped id should stay empty, got %q", trip.ID)
	}
}

func TestDayRoundTrip(t *testing.T) {
	day := Day{Label: "1", Theme: "Heritage walk", Activities: []Activity{{PlaceName: "Fort", TicketPrice: Price(75)}}}
	out, err := json.Marshal(day)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Day
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Label != "1" || back.Theme != "Heritage walk" || len(back.Activities) != 1 {
		t.Errorf("round trip lost fields: %+v", back)
	}
	if back.Activities[0].TicketPrice.Amount() != 75 {
		t.Errorf("ticket price lost: %+v", back.Activities[0])
	}
}
