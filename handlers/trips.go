package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lakbay/budget"
	"lakbay/database"
	"lakbay/services"
)

type TripResponse struct {
	Trip      budget.Trip     `json:"trip"`
	Estimate  budget.Estimate `json:"estimate"`
	Source    string          `json:"source"`
	CreatedAt time.Time       `json:"createdAt"`
	Report    *ReportInfo     `json:"report,omitempty"`
}

// ReportInfo is report metadata without the PDF bytes.
type ReportInfo struct {
	ID        string    `json:"id"`
	Estimated bool      `json:"estimated"`
	CreatedAt time.Time `json:"createdAt"`
	PDFURL    string    `json:"pdfUrl"`
}

type ReportResponse struct {
	ReportID string `json:"reportId"`
	PDFURL   string `json:"pdfUrl"`
	Bytes    int    `json:"bytes"`
}

// SaveTripHandler stores a client-assembled trip record. The payload is
// normalized before storage so later reads price a clean record even
// when the client sent string-wrapped or fenced JSON.
func SaveTripHandler(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body is required"})
		return
	}

	trip := budget.NormalizeTrip(raw)
	if trip.UserSelection.Destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Trip record needs a destination"})
		return
	}

	if database.DB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not available"})
		return
	}

	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	record, err := json.Marshal(trip)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode trip record"})
		return
	}

	source := tripSource(trip)
	if err := database.SaveTrip(&database.Trip{
		ID:          trip.ID,
		Destination: trip.UserSelection.Destination,
		DataSource:  source,
		Record:      string(record),
	}); err != nil {
		log.Printf("❌ Failed to save trip %s: %v", trip.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save trip"})
		return
	}

	log.Printf("✅ Trip %s saved: %s, %s data", trip.ID, trip.UserSelection.Destination, source)
	c.JSON(http.StatusCreated, gin.H{"id": trip.ID, "source": source})
}

// GetTripHandler returns a stored trip with a freshly computed estimate.
// Estimates are never stored; pricing rules may have changed since the
// trip was saved.
func GetTripHandler(c *gin.Context) {
	if database.DB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not available"})
		return
	}

	rec, err := database.GetTrip(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}

	trip := budget.NormalizeTrip([]byte(rec.Record))
	trip.ID = rec.ID

	resp := TripResponse{
		Trip:      trip,
		Estimate:  estimator.EstimateTrip(trip),
		Source:    rec.DataSource,
		CreatedAt: rec.CreatedAt,
	}
	if report, rerr := database.GetLatestReportByTrip(rec.ID); rerr == nil {
		resp.Report = &ReportInfo{
			ID:        report.ID,
			Estimated: report.Estimated,
			CreatedAt: report.CreatedAt,
			PDFURL:    "/api/download/" + report.ID,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// ReportHandler renders a budget report PDF for a stored trip and keeps
// the bytes in the database alongside it.
func ReportHandler(c *gin.Context) {
	if database.DB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not available"})
		return
	}

	rec, err := database.GetTrip(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}

	trip := budget.NormalizeTrip([]byte(rec.Record))
	trip.ID = rec.ID

	estimate := estimator.EstimateTrip(trip)

	var compliance *budget.ComplianceResult
	if trip.TripData.HasComplianceClaim() {
		result := estimator.ValidateCompliance(trip.TripData)
		compliance = &result
	}

	hotels := []budget.Hotel(trip.TripData.Hotels)
	if trip.RealHotelData != nil && len(trip.RealHotelData.Hotels) > 0 {
		hotels = []budget.Hotel(trip.RealHotelData.Hotels)
	}
	nights := budget.NightsFromDays(trip.UserSelection.Days())
	ranked := estimator.RankHotels(hotels, estimator.NightlyHotelBudget(trip.UserSelection.DeclaredBudget(), nights))

	estimated := rec.DataSource != budget.SourceLive
	pdfBytes, err := services.BuildBudgetReport(services.ReportData{
		Trip:       trip,
		Estimate:   estimate,
		Compliance: compliance,
		Ranked:     ranked,
		Estimated:  estimated,
	})
	if err != nil {
		log.Printf("❌ Report generation for trip %s failed: %v", rec.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	report := &database.Report{
		ID:        uuid.New().String(),
		TripID:    rec.ID,
		PDFData:   pdfBytes,
		Estimated: estimated,
	}
	if err := database.SaveReport(report); err != nil {
		log.Printf("❌ Failed to save report for trip %s: %v", rec.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save report"})
		return
	}

	log.Printf("✅ Report %s generated for trip %s (%d bytes)", report.ID, rec.ID, len(pdfBytes))
	c.JSON(http.StatusCreated, ReportResponse{
		ReportID: report.ID,
		PDFURL:   "/api/download/" + report.ID,
		Bytes:    len(pdfBytes),
	})
}

// tripSource labels a trip record live only when every search bucket it
// carries is live. A record with no search data at all is estimated.
func tripSource(t budget.Trip) string {
	has := false
	if t.RealHotelData != nil && len(t.RealHotelData.Hotels) > 0 {
		has = true
		if t.RealHotelData.Source != budget.SourceLive {
			return budget.SourceEstimated
		}
	}
	if t.RealFlightData != nil && len(t.RealFlightData.Flights) > 0 {
		has = true
		if t.RealFlightData.Source != budget.SourceLive {
			return budget.SourceEstimated
		}
	}
	if !has {
		return budget.SourceEstimated
	}
	return budget.SourceLive
}
