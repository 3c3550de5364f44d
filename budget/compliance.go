package budget

import (
	"fmt"
	"math"
)

// HasComplianceClaim reports whether the payload declares any budget
// numbers worth validating. Offline fallback plans carry none, and
// validating their absence would only manufacture errors.
func (t TripData) HasComplianceClaim() bool {
	return t.BudgetCompliance != nil || len(t.DailyCosts) > 0 || t.GrandTotal.IsSet()
}

// ValidateCompliance checks the AI's self-declared budget numbers against
// its own arithmetic. The checklist is linear and additive: every check
// runs and contributes independently, and the result is valid exactly
// when no check raised an error. Warnings never affect validity.
func (e Estimator) ValidateCompliance(data TripData) ComplianceResult {
	res := ComplianceResult{Errors: []string{}, Warnings: []string{}}

	var totalCost, userBudget float64
	bc := data.BudgetCompliance
	if bc == nil {
		res.Errors = append(res.Errors, "budgetCompliance object is missing")
	} else {
		var ok bool
		if totalCost, ok = bc.TotalCost.Number(); !ok {
			res.Errors = append(res.Errors, "budgetCompliance.totalCost is missing or not a number")
		}
		if userBudget, ok = bc.UserBudget.Number(); !ok {
			res.Errors = append(res.Errors, "budgetCompliance.userBudget is missing or not a number")
		}
		if _, ok = bc.WithinBudget.Strict(); !ok {
			res.Errors = append(res.Errors, "budgetCompliance.withinBudget is missing or not a boolean")
		}
	}

	// Tolerance band: going over budget by up to 5% is real-world price
	// granularity, beyond it the declared compliance is wrong regardless
	// of what the AI claims.
	if totalCost > 0 && userBudget > 0 {
		tolerance := math.Round(userBudget * e.Limits.BudgetTolerance)
		switch {
		case totalCost > userBudget+tolerance:
			res.Errors = append(res.Errors, fmt.Sprintf(
				"declared total %s exceeds the budget of %s beyond the %s tolerance",
				formatPeso(totalCost), formatPeso(userBudget), formatPeso(tolerance)))
		case totalCost > userBudget:
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"declared total %s is over the budget of %s but within the %s tolerance",
				formatPeso(totalCost), formatPeso(userBudget), formatPeso(tolerance)))
		}
	}

	if len(data.DailyCosts) == 0 {
		res.Warnings = append(res.Warnings, "no dailyCosts breakdown was declared")
	}
	var subtotalSum float64
	for i, day := range data.DailyCosts {
		label := fmt.Sprintf("day %d", day.Day.Value(i+1))
		b := day.Breakdown
		if b == nil {
			res.Errors = append(res.Errors, label+" has no cost breakdown")
			continue
		}
		fields := []struct {
			name string
			v    FlexFloat
		}{
			{"accommodation", b.Accommodation},
			{"meals", b.Meals},
			{"activities", b.Activities},
			{"transport", b.Transport},
		}
		var sum float64
		complete := true
		for _, fld := range fields {
			n, ok := fld.v.Number()
			if !ok {
				res.Errors = append(res.Errors, fmt.Sprintf(
					"%s breakdown field %q is missing or not a number", label, fld.name))
				complete = false
				continue
			}
			sum += n
		}
		sub, ok := b.Subtotal.Number()
		if !ok {
			res.Errors = append(res.Errors, label+" subtotal is missing or not a number")
			continue
		}
		subtotalSum += sub
		if complete && math.Abs(sub-sum) > e.Limits.SubtotalRounding {
			res.Errors = append(res.Errors, fmt.Sprintf(
				"%s subtotal %s does not match the sum of its fields (%s)",
				label, formatPeso(sub), formatPeso(sum)))
		}
		if n, ok := b.Accommodation.Number(); ok && n > 0 && n < e.Limits.MinNightlyAccommodation {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"%s accommodation of %s looks unrealistically low", label, formatPeso(n)))
		}
		if n, ok := b.Meals.Number(); ok && n > 0 && n < e.Limits.MinDailyMeals {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"%s meals of %s look unrealistically low", label, formatPeso(n)))
		}
	}

	if !data.MissingPrices.Present() {
		res.Warnings = append(res.Warnings, "missingPrices was not declared, price uncertainty is unknown")
	}

	// Grand total must agree with the per-day subtotals: a gap inside the
	// rounding allowance is silent, a gap inside the tolerance is a
	// warning, anything bigger is an arithmetic error.
	if gt, ok := data.GrandTotal.Number(); ok {
		if len(data.DailyCosts) > 0 {
			gap := math.Abs(gt - subtotalSum)
			switch {
			case gap > e.Limits.GrandTotalTolerance:
				res.Errors = append(res.Errors, fmt.Sprintf(
					"grandTotal %s is %s away from the sum of daily subtotals (%s)",
					formatPeso(gt), formatPeso(gap), formatPeso(subtotalSum)))
			case gap > e.Limits.SubtotalRounding:
				res.Warnings = append(res.Warnings, fmt.Sprintf(
					"grandTotal %s differs from the sum of daily subtotals (%s) by %s",
					formatPeso(gt), formatPeso(subtotalSum), formatPeso(gap)))
			}
		}
	} else if len(data.DailyCosts) > 0 {
		res.Errors = append(res.Errors, "grandTotal is missing or not a number")
	}

	res.IsValid = len(res.Errors) == 0
	return res
}
