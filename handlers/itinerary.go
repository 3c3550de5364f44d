package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lakbay/budget"
	"lakbay/database"
	"lakbay/services"
)

// GenerateRequest asks for a complete costed trip plan. Only the
// destination is mandatory; everything else has a sensible default.
type GenerateRequest struct {
	Destination  string            `json:"destination" binding:"required"`
	Origin       string            `json:"origin"`
	StartDate    string            `json:"startDate"`
	NoOfDays     budget.FlexCount  `json:"noOfDays"`
	Travelers    budget.FlexCount  `json:"travelers"`
	Budget       budget.PriceValue `json:"budget"`
	CustomBudget budget.PriceValue `json:"customBudget"`
}

type GenerateResponse struct {
	Trip          budget.Trip              `json:"trip"`
	Estimate      budget.Estimate          `json:"estimate"`
	Compliance    *budget.ComplianceResult `json:"compliance,omitempty"`
	RankedHotels  []budget.RankedHotel     `json:"rankedHotels"`
	FlightOptions []budget.Flight          `json:"flightOptions"`
	Source        string                   `json:"source"`
	Saved         bool                     `json:"saved"`
}

// GenerateHandler runs the full pipeline: search for flights and hotels,
// generate an itinerary (AI when configured, offline plan otherwise),
// price the assembled trip, validate any AI budget claims, and save the
// record. Persistence is best effort; the plan comes back either way.
func GenerateHandler(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	days := req.NoOfDays.Value(3)
	if days < 1 {
		days = 1
	}
	travelers := req.Travelers.Value(1)
	if travelers < 1 {
		travelers = 1
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		// No usable date; plan two weeks out.
		start = time.Now().AddDate(0, 0, 14)
	}
	end := start.AddDate(0, 0, days-1)

	origin := strings.TrimSpace(req.Origin)
	if origin == "" {
		origin = "Manila"
	}
	originCode := services.CityCode(origin)
	cityCode := services.CityCode(req.Destination)

	nights := budget.NightsFromDays(days)
	checkOut := start.AddDate(0, 0, nights)

	var flights []budget.Flight
	flightSource := budget.SourceEstimated
	if originCode != cityCode {
		flights, flightSource = services.FindFlights(
			originCode, cityCode, start.Format(dateLayout), end.Format(dateLayout), travelers)
	}
	hotels, hotelSource := services.FindHotels(
		cityCode, req.Destination, start.Format(dateLayout), checkOut.Format(dateLayout), travelers, nights)

	estimatedInputs := hotelSource != budget.SourceLive
	if len(flights) > 0 && flightSource != budget.SourceLive {
		estimatedInputs = true
	}

	sel := budget.UserSelection{
		Destination:  req.Destination,
		Origin:       origin,
		StartDate:    start.Format(dateLayout),
		NoOfDays:     budget.Count(days),
		Travelers:    budget.Count(travelers),
		Budget:       req.Budget,
		CustomBudget: req.CustomBudget,
	}

	var data budget.TripData
	usedAI := false
	if services.GetAIClient().Configured() {
		data, err = services.GetAIClient().GenerateTripData(sel, flights, hotels, estimatedInputs)
		if err != nil {
			log.Printf("⚠️  AI generation for %s failed: %v — using offline plan", req.Destination, err)
		} else {
			usedAI = true
		}
	}
	if !usedAI {
		data = services.FallbackTripData(sel, hotels)
	}

	trip := budget.Trip{
		ID:            uuid.New().String(),
		UserSelection: sel,
		TripData:      data,
	}
	if len(hotels) > 0 {
		trip.RealHotelData = &budget.HotelData{Hotels: budget.HotelList(hotels), Source: hotelSource}
	}
	if len(flights) > 0 {
		// The cost engine treats realFlightData as flights actually taken,
		// not candidates, so only the recommended option goes in. The full
		// list rides separately in flightOptions.
		trip.RealFlightData = &budget.FlightData{Flights: budget.FlightList(flights[:1]), Source: flightSource}
	}

	estimate := estimator.EstimateTrip(trip)

	var compliance *budget.ComplianceResult
	if usedAI {
		result := estimator.ValidateCompliance(trip.TripData)
		compliance = &result
	}

	ranked := estimator.RankHotels(hotels, estimator.NightlyHotelBudget(sel.DeclaredBudget(), nights))

	source := budget.SourceLive
	if estimatedInputs {
		source = budget.SourceEstimated
	}

	saved := false
	if database.DB == nil {
		log.Printf("⚠️  Database not initialized, trip %s not saved", trip.ID)
	} else if record, merr := json.Marshal(trip); merr != nil {
		log.Printf("⚠️  Could not encode trip %s: %v", trip.ID, merr)
	} else if serr := database.SaveTrip(&database.Trip{
		ID:          trip.ID,
		Destination: req.Destination,
		DataSource:  source,
		Record:      string(record),
	}); serr != nil {
		log.Printf("⚠️  Could not save trip %s: %v", trip.ID, serr)
	} else {
		saved = true
		log.Printf("✅ Trip %s saved: %s, %d day(s), %s data", trip.ID, req.Destination, days, source)
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Trip:          trip,
		Estimate:      estimate,
		Compliance:    compliance,
		RankedHotels:  ranked,
		FlightOptions: flights,
		Source:        source,
		Saved:         saved,
	})
}
