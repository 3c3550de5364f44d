package budget

import (
	"fmt"
	"math"
)

// Days returns the trip length in days, floored at one.
func (s UserSelection) Days() int {
	if n, ok := s.NoOfDays.Positive(); ok {
		return n
	}
	return 1
}

// TravelerCount returns the traveler count coerced to a positive integer.
func (s UserSelection) TravelerCount() int {
	if n, ok := s.Travelers.Positive(); ok {
		return n
	}
	return 1
}

// DeclaredBudget resolves the user's intended spend: the free-text custom
// budget wins when it parses to a positive amount, otherwise the preset
// budget field. Zero means no budget was declared.
func (s UserSelection) DeclaredBudget() float64 {
	if amt := s.CustomBudget.Amount(); amt > 0 {
		return amt
	}
	return s.Budget.Amount()
}

// EstimateTrip builds the full cost breakdown for a trip: activities,
// hotels, flights and ground transport. Verified search data is preferred
// over the AI's estimates bucket by bucket, and every data-quality issue
// found along the way lands in the warnings. The breakdown is rebuilt
// from the trip record on every call; nothing is cached.
func (e Estimator) EstimateTrip(trip Trip) Estimate {
	data := trip.TripData
	travelers := trip.UserSelection.TravelerCount()
	nights := NightsFromDays(trip.UserSelection.Days())

	var warnings []string

	// Activities: the AI's own precomputed total wins when it is a real
	// positive number, else the itinerary is summed leaf by leaf.
	var activities float64
	if n, ok := data.TotalCost.Number(); ok && n > 0 {
		activities = n
	} else {
		var w []string
		activities, w = ActivitiesCost(data.Days())
		warnings = append(warnings, w...)
	}

	hotels := []Hotel(data.Hotels)
	if trip.RealHotelData != nil && len(trip.RealHotelData.Hotels) > 0 {
		hotels = []Hotel(trip.RealHotelData.Hotels)
	}
	hotelCost, hotelWarnings := HotelsCost(hotels, nights)
	warnings = append(warnings, hotelWarnings...)

	// AI-estimated flight prices are instructed to be per person; verified
	// search results carry group totals.
	flights := []Flight(data.Flights)
	perPersonDefault := true
	if trip.RealFlightData != nil && len(trip.RealFlightData.Flights) > 0 {
		flights = []Flight(trip.RealFlightData.Flights)
		perPersonDefault = false
	}
	flightCost, flightWarnings := e.FlightsCost(flights, travelers, perPersonDefault)
	warnings = append(warnings, flightWarnings...)

	ground := data.GroundTransport.Amount()
	if ground == 0 && data.Transportation != nil && data.Transportation.CostRange != nil {
		ground = data.Transportation.CostRange.Mid()
	}

	breakdown := Breakdown{
		Activities:      nonneg(activities),
		Hotels:          nonneg(hotelCost),
		Flights:         nonneg(flightCost),
		GroundTransport: nonneg(ground),
	}
	total := breakdown.Activities + breakdown.Hotels + breakdown.Flights + breakdown.GroundTransport

	if declared := trip.UserSelection.DeclaredBudget(); declared > 0 && total > declared {
		warnings = append(warnings, fmt.Sprintf(
			"estimated total %s is over the declared budget of %s", formatPeso(total), formatPeso(declared)))
	}
	if nightly := breakdown.Hotels / float64(nights); nightly > e.Limits.HotelNightlyMax {
		warnings = append(warnings, fmt.Sprintf(
			"accommodation works out to %s per night, above the typical range", formatPeso(nightly)))
	}

	return Estimate{Total: total, Breakdown: breakdown, Warnings: warnings}
}

// nonneg clamps a bucket value to a finite non-negative number.
func nonneg(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0
	}
	return n
}
