package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"lakbay/budget"
)

// ReportData is everything the budget report PDF renders.
type ReportData struct {
	Trip       budget.Trip
	Estimate   budget.Estimate
	Compliance *budget.ComplianceResult // nil when there was no AI claim to check
	Ranked     []budget.RankedHotel
	Estimated  bool // true when no live search data backed the trip
}

// BuildBudgetReport renders the trip's budget report and returns raw PDF
// bytes. All peso amounts are printed with a "PHP" prefix; the built-in
// fonts cannot encode the peso sign.
func BuildBudgetReport(data ReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	// ── Watermark ────────────────────────────────────────────
	if data.Estimated {
		pdf.SetTextColor(232, 232, 232)
		pdf.SetFont("Helvetica", "B", 52)
		pdf.TransformBegin()
		pdf.TransformRotate(42, 60, 200)
		pdf.Text(48, 200, "ESTIMATES")
		pdf.TransformEnd()
		pdf.SetTextColor(0, 0, 0)
	}

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(0, 56, 168) // flag blue
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Lakbay", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(252, 209, 22) // flag gold
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Philippine Travel Budget Report", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(252, 209, 22)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 12, "FD")
	pdf.SetXY(23, y+2)
	disclaimer := "This is NOT a booking confirmation. Amounts are estimates in Philippine pesos and subject to change. Verify with providers before booking."
	if data.Estimated {
		disclaimer = "ESTIMATED PRICES - no live search data was available for this trip. This is NOT a booking confirmation. Verify all prices before booking."
	}
	pdf.MultiCell(164, 4, disclaimer, "", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	// ── Section Helpers ──────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(0, 56, 168)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	bullet := func(text string) {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(60, 60, 60)
		pdf.MultiCell(170, 5, "- "+pdfSafe(text), "", "L", false)
	}

	// ── Trip Overview ────────────────────────────────────────
	sel := data.Trip.UserSelection
	days := sel.Days()

	sectionHeader("Trip Overview")
	dest := sel.Destination
	if dest == "" {
		dest = "Not specified"
	}
	row("Destination", dest)
	if sel.Origin != "" {
		row("Origin", sel.Origin)
	}
	if sel.StartDate != "" {
		row("Start date", fmtDateReadable(sel.StartDate))
	}
	row("Duration", fmt.Sprintf("%d day(s), %d night(s)", days, budget.NightsFromDays(days)))
	row("Travelers", fmt.Sprintf("%d", sel.TravelerCount()))
	if b := sel.DeclaredBudget(); b > 0 {
		row("Declared budget", budget.FormatPHP(b))
	} else {
		row("Declared budget", "Not specified")
	}
	source := "Live travel search"
	if data.Estimated {
		source = "Estimated (no live search data)"
	}
	row("Data source", source)
	row("Generated", time.Now().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Cost Breakdown ───────────────────────────────────────
	sectionHeader("Cost Breakdown")
	row("Activities", budget.FormatPHP(data.Estimate.Breakdown.Activities))
	row("Hotels", budget.FormatPHP(data.Estimate.Breakdown.Hotels))
	row("Flights", budget.FormatPHP(data.Estimate.Breakdown.Flights))
	row("Ground transport", budget.FormatPHP(data.Estimate.Breakdown.GroundTransport))

	pdf.SetFillColor(252, 209, 22)
	pdf.SetTextColor(0, 56, 168)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL ESTIMATE", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, budget.FormatPHP(data.Estimate.Total), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	if b := sel.DeclaredBudget(); b > 0 {
		diff := b - data.Estimate.Total
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(90, 90, 90)
		note := fmt.Sprintf("%s under the declared budget", budget.FormatPHP(diff))
		if diff < 0 {
			note = fmt.Sprintf("%s over the declared budget", budget.FormatPHP(-diff))
		}
		pdf.CellFormat(170, 6, note, "", 1, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)

	// ── Budget Compliance ────────────────────────────────────
	if data.Compliance != nil {
		sectionHeader("Budget Compliance Check")
		pdf.SetFont("Helvetica", "B", 10)
		if data.Compliance.IsValid {
			pdf.SetTextColor(21, 128, 61)
			pdf.CellFormat(170, 7, "PASSED - the itinerary's declared costs check out", "", 1, "L", false, 0, "")
		} else {
			pdf.SetTextColor(185, 28, 28)
			pdf.CellFormat(170, 7, "FAILED - the itinerary's declared costs do not hold up", "", 1, "L", false, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
		for _, e := range data.Compliance.Errors {
			bullet(e)
		}
		for _, w := range data.Compliance.Warnings {
			bullet(w)
		}
		pdf.Ln(4)
	}

	// ── Declared Daily Costs ─────────────────────────────────
	if dcs := data.Trip.TripData.DailyCosts; len(dcs) > 0 {
		sectionHeader("Declared Daily Costs")
		headers := []string{"Day", "Stay", "Meals", "Activities", "Transport", "Subtotal"}
		widths := []float64{18, 32, 28, 28, 28, 36}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(235, 238, 245)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		for i, dc := range dcs {
			var acc, meals, acts, tr, sub float64
			if b := dc.Breakdown; b != nil {
				acc = b.Accommodation.Value(0)
				meals = b.Meals.Value(0)
				acts = b.Activities.Value(0)
				tr = b.Transport.Value(0)
				sub = b.Subtotal.Value(0)
			}
			cells := []string{
				fmt.Sprintf("%d", dc.Day.Value(i+1)),
				budget.FormatPHP(acc),
				budget.FormatPHP(meals),
				budget.FormatPHP(acts),
				budget.FormatPHP(tr),
				budget.FormatPHP(sub),
			}
			for j, cell := range cells {
				align := "R"
				if j == 0 {
					align = "C"
				}
				pdf.CellFormat(widths[j], 6, cell, "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	// ── Hotel Shortlist ──────────────────────────────────────
	if len(data.Ranked) > 0 {
		sectionHeader("Hotel Shortlist")
		for i, h := range data.Ranked {
			if i >= 3 {
				break
			}
			line := fmt.Sprintf("%s/night, value score %.2f", budget.FormatPHP(h.Nightly), h.ValueScore)
			if len(h.Badges) > 0 {
				line += " (" + strings.Join(h.Badges, ", ") + ")"
			}
			row(pdfSafe(h.HotelName), line)
		}
		pdf.Ln(4)
	}

	// ── Pricing Warnings ─────────────────────────────────────
	if len(data.Estimate.Warnings) > 0 {
		sectionHeader("Pricing Warnings")
		for _, w := range data.Estimate.Warnings {
			bullet(w)
		}
		pdf.Ln(2)
	}

	// ── Footer ───────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by Lakbay Travel Planner - Not a booking confirmation - Amounts in Philippine pesos",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfSafe rewrites characters outside the built-in cp1252 fonts.
func pdfSafe(s string) string {
	return strings.NewReplacer("₱", "PHP ", "–", "-", "—", "-").Replace(s)
}

func fmtDateReadable(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006 (Mon)")
}
