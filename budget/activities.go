package budget

import (
	"fmt"
	"regexp"
	"strings"
)

// blobPrice finds a currency-marked amount or a "Free" token inside one
// segment of a flattened plan string. A bare "p" does not count as a
// currency marker in free text.
var blobPrice = regexp.MustCompile(`(?i)(?:₱|php|\$)\s*[0-9][0-9,]*(?:\.[0-9]+)?|free`)

// ActivitiesCost sums ticket prices across the itinerary. Days carrying a
// structured activity list and days carrying only a flattened plan string
// are both handled, independently per day. Missing or unparsable ticket
// prices count as zero and are reported as warnings.
func ActivitiesCost(days []Day) (float64, []string) {
	var total float64
	var warnings []string
	for i, day := range days {
		if len(day.Activities) > 0 {
			for _, act := range day.Activities {
				total += activityPrice(act, dayLabel(i, day), &warnings)
			}
			continue
		}
		if day.PlanText != "" {
			total += planTextCost(day.PlanText)
		}
	}
	return total, warnings
}

func activityPrice(act Activity, day string, warnings *[]string) float64 {
	name := act.PlaceName
	if name == "" {
		name = "unnamed activity"
	}
	p := act.TicketPrice
	if !p.IsSet() {
		*warnings = append(*warnings, fmt.Sprintf("%s: no ticket price for %s, counted as ₱0", day, name))
		return 0
	}
	if txt, ok := p.Text(); ok && strings.TrimSpace(txt) == "" {
		*warnings = append(*warnings, fmt.Sprintf("%s: no ticket price for %s, counted as ₱0", day, name))
		return 0
	}
	amt := p.Amount()
	if amt == 0 {
		if txt, ok := p.Text(); ok && !zeroSentinel(txt) {
			*warnings = append(*warnings, fmt.Sprintf("%s: unparsable ticket price %q for %s, counted as ₱0", day, txt, name))
		}
	}
	return amt
}

// zeroSentinel reports whether price text deliberately means zero, such
// as "Free", "N/A" or an explicit "₱0". Text like "Varies" is not a
// sentinel and should be flagged.
func zeroSentinel(s string) bool {
	ls := strings.ToLower(s)
	if strings.Contains(ls, "free") || strings.Contains(ls, "n/a") {
		return true
	}
	sawZero := false
	for _, r := range ls {
		if r >= '1' && r <= '9' {
			return false
		}
		if r == '0' {
			sawZero = true
		}
	}
	return sawZero
}

// planTextCost extracts prices from a legacy pipe-separated plan string,
// one token per segment.
func planTextCost(text string) float64 {
	var total float64
	for _, segment := range strings.Split(text, " | ") {
		token := blobPrice.FindString(segment)
		if token == "" {
			continue
		}
		total += ParsePrice(token)
	}
	return total
}

func dayLabel(i int, day Day) string {
	label := strings.TrimSpace(day.Label)
	if label == "" {
		return fmt.Sprintf("day %d", i+1)
	}
	if strings.HasPrefix(strings.ToLower(label), "day") {
		return label
	}
	return "day " + label
}
