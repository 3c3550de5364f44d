package handlers

import (
	"testing"

	"github.com/gin-gonic/gin"

	"lakbay/budget"
)

func tripsRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/trips", SaveTripHandler)
	r.GET("/api/trips/:id", GetTripHandler)
	r.POST("/api/trips/:id/report", ReportHandler)
	return r
}

// The database is never initialized in tests, so persistence endpoints
// must answer 503, not panic.
func TestSaveTripHandler_NoDatabase(t *testing.T) {
	w := postJSON(tripsRouter(), "/api/trips", `{"userSelection": {"destination": "Cebu"}}`)
	if w.Code != 503 {
		t.Fatalf("status = %d, want 503, body %s", w.Code, w.Body.String())
	}
}

func TestSaveTripHandler_MissingDestination(t *testing.T) {
	w := postJSON(tripsRouter(), "/api/trips", `{"tripData": {}}`)
	if w.Code != 400 {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSaveTripHandler_EmptyBody(t *testing.T) {
	w := postJSON(tripsRouter(), "/api/trips", "")
	if w.Code != 400 {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetTripHandler_NoDatabase(t *testing.T) {
	w := getJSON(tripsRouter(), "/api/trips/abc")
	if w.Code != 503 {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestReportHandler_NoDatabase(t *testing.T) {
	w := postJSON(tripsRouter(), "/api/trips/abc/report", "")
	if w.Code != 503 {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestTripSource(t *testing.T) {
	liveHotels := &budget.HotelData{Hotels: budget.HotelList{{HotelName: "A"}}, Source: budget.SourceLive}
	estHotels := &budget.HotelData{Hotels: budget.HotelList{{HotelName: "B"}}, Source: budget.SourceEstimated}
	liveFlights := &budget.FlightData{Flights: budget.FlightList{{Airline: "PAL"}}, Source: budget.SourceLive}
	estFlights := &budget.FlightData{Flights: budget.FlightList{{Airline: "PAL"}}, Source: budget.SourceEstimated}

	cases := []struct {
		name string
		trip budget.Trip
		want string
	}{
		{"no search data", budget.Trip{}, "estimated"},
		{"live hotels only", budget.Trip{RealHotelData: liveHotels}, "live"},
		{"live both", budget.Trip{RealHotelData: liveHotels, RealFlightData: liveFlights}, "live"},
		{"estimated flights taint", budget.Trip{RealHotelData: liveHotels, RealFlightData: estFlights}, "estimated"},
		{"estimated hotels taint", budget.Trip{RealHotelData: estHotels, RealFlightData: liveFlights}, "estimated"},
		{"empty buckets ignored", budget.Trip{RealHotelData: &budget.HotelData{Source: budget.SourceLive}}, "estimated"},
	}
	for _, tc := range cases {
		if got := tripSource(tc.trip); got != tc.want {
			t.Errorf("%s: source = %q, want %q", tc.name, got, tc.want)
		}
	}
}
