package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"lakbay/budget"
	"lakbay/services"
)

// SearchRequest asks for flight and hotel candidates for a trip window.
// noOfDays and travelers tolerate the string shapes older clients send
// ("3", "2 People"); budget may be a number or text like "₱25,000".
type SearchRequest struct {
	Destination string            `json:"destination" binding:"required"`
	Origin      string            `json:"origin"`
	StartDate   string            `json:"startDate" binding:"required"`
	NoOfDays    budget.FlexCount  `json:"noOfDays"`
	Travelers   budget.FlexCount  `json:"travelers"`
	Budget      budget.PriceValue `json:"budget"`
}

// SearchResponse carries candidates, not bookings: flights are options
// the client picks from, hotels come back ranked best value first. A
// client composing a trip record puts its chosen flight(s) into
// realFlightData and its preferred hotel first in realHotelData.
type SearchResponse struct {
	Origin       string               `json:"origin"`
	Destination  string               `json:"destination"`
	OriginCode   string               `json:"originCode"`
	CityCode     string               `json:"cityCode"`
	Flights      []budget.Flight      `json:"flights"`
	FlightSource string               `json:"flightSource"`
	Hotels       []budget.RankedHotel `json:"hotels"`
	HotelSource  string               `json:"hotelSource"`
	Source       string               `json:"source"`
}

func SearchHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	days := req.NoOfDays.Value(1)
	if days < 1 {
		days = 1
	}
	travelers := req.Travelers.Value(1)
	if travelers < 1 {
		travelers = 1
	}

	start, end, err := tripWindow(req.StartDate, days)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date. Use YYYY-MM-DD"})
		return
	}

	origin := strings.TrimSpace(req.Origin)
	if origin == "" {
		origin = "Manila"
	}
	originCode := services.CityCode(origin)
	cityCode := services.CityCode(req.Destination)
	if originCode == cityCode {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Origin and destination resolve to the same airport (" + cityCode + ")",
		})
		return
	}

	nights := budget.NightsFromDays(days)
	checkOut := start.AddDate(0, 0, nights)

	flights, flightSource := services.FindFlights(
		originCode, cityCode, start.Format(dateLayout), end.Format(dateLayout), travelers)
	hotels, hotelSource := services.FindHotels(
		cityCode, req.Destination, start.Format(dateLayout), checkOut.Format(dateLayout), travelers, nights)

	source := budget.SourceEstimated
	if flightSource == budget.SourceLive && hotelSource == budget.SourceLive {
		source = budget.SourceLive
	}

	ranked := estimator.RankHotels(hotels, estimator.NightlyHotelBudget(req.Budget.Amount(), nights))

	c.JSON(http.StatusOK, SearchResponse{
		Origin:       origin,
		Destination:  req.Destination,
		OriginCode:   originCode,
		CityCode:     cityCode,
		Flights:      flights,
		FlightSource: flightSource,
		Hotels:       ranked,
		HotelSource:  hotelSource,
		Source:       source,
	})
}

const dateLayout = "2006-01-02"

// tripWindow derives the trip's first and last day from the start date.
// A 3-day trip starting March 10 ends March 12.
func tripWindow(startDate string, days int) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if days < 1 {
		days = 1
	}
	return start, start.AddDate(0, 0, days-1), nil
}
