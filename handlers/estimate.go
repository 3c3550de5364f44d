package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lakbay/budget"
)

// estimator is shared by every handler. It is a value with fixed limits,
// safe for concurrent requests.
var estimator = budget.NewEstimator(budget.DefaultLimits())

// EstimateHandler prices a trip record. The payload may be a bare trip
// or a wrapper with the record under tripData/trip/data; unparseable
// bodies still produce a zero-cost estimate rather than an error.
func EstimateHandler(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body is required"})
		return
	}

	trip := budget.NormalizeTrip(raw)
	c.JSON(http.StatusOK, estimator.EstimateTrip(trip))
}

// ValidateHandler checks the budget claims inside a trip record for
// arithmetic consistency. Accepts either a bare compliance payload or a
// full trip record and digs the relevant fields out of both.
func ValidateHandler(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body is required"})
		return
	}

	data := budget.ResolveTripData(raw)
	if !data.HasComplianceClaim() {
		// Maybe the client sent a full trip wrapper; try the nested record.
		if nested := budget.NormalizeTrip(raw).TripData; nested.HasComplianceClaim() {
			data = nested
		}
	}

	c.JSON(http.StatusOK, estimator.ValidateCompliance(data))
}
