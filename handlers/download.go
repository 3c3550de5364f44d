package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lakbay/database"
	"lakbay/services"
)

func DownloadHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing report ID"})
		return
	}

	if database.DB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not available"})
		return
	}

	report, err := database.GetReport(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	if len(report.PDFData) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report has no PDF data"})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=lakbay-budget-report.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", report.PDFData)
}

func HealthHandler(c *gin.Context) {
	db := database.DB
	dbStatus := "ok"
	if db == nil {
		dbStatus = "not initialized"
	} else if err := db.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}

	searchStatus := "estimated data"
	if services.GetTravelClient().Configured() {
		searchStatus = "live"
	}
	aiStatus := "offline fallback"
	if services.GetAIClient().Configured() {
		aiStatus = "ready"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "Lakbay API",
		"database": dbStatus,
		"search":   searchStatus,
		"ai":       aiStatus,
	})
}
