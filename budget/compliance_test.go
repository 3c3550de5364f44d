package budget

import (
	"encoding/json"
	"strings"
	"testing"
)

func mustTripData(t *testing.T, payload string) TripData {
	t.Helper()
	var data TripData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		t.Fatalf("bad tripData literal: %v", err)
	}
	return data
}

func hasEntry(entries []string, substr string) bool {
	for _, e := range entries {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestHasComplianceClaim(t *testing.T) {
	if (TripData{}).HasComplianceClaim() {
		t.Error("an empty payload carries no claim")
	}
	if !mustTripData(t, `{"grandTotal": 500}`).HasComplianceClaim() {
		t.Error("a declared grand total is a claim")
	}
	if !mustTripData(t, `{"dailyCosts": [{"day": 1}]}`).HasComplianceClaim() {
		t.Error("declared daily costs are a claim")
	}
	if !mustTripData(t, `{"budgetCompliance": {"totalCost": 1000}}`).HasComplianceClaim() {
		t.Error("a compliance object is a claim")
	}
}

func TestValidateCompliance_CleanPayload(t *testing.T) {
	data := mustTripData(t, `{
		"budgetCompliance": {"totalCost": 9500, "userBudget": 10000, "withinBudget": true},
		"dailyCosts": [
			{"day": 1, "breakdown": {"accommodation": 2000, "meals": 900, "activities": 1500, "transport": 350, "subtotal": 4750}},
			{"day": 2, "breakdown": {"accommodation": 2000, "meals": 900, "activities": 1500, "transport": 350, "subtotal": 4750}}
		],
		"missingPrices": [],
		"grandTotal": 9500
	}`)
	res := newTestEstimator().ValidateCompliance(data)
	if !res.IsValid {
		t.Fatalf("expected a valid result, errors: %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", res.Warnings)
	}
}

// TestValidateCompliance_OverToleranceIsError pins the 5% band: 23,020 on
// a 20,800 budget is 10.7% over, past the 21,840 ceiling.
func TestValidateCompliance_OverToleranceIsError(t *testing.T) {
	data := mustTripData(t, `{
		"budgetCompliance": {"totalCost": 23020, "userBudget": 20800, "withinBudget": true}
	}`)
	res := newTestEstimator().ValidateCompliance(data)
	if res.IsValid {
		t.Fatal("expected an invalid result")
	}
	if !hasEntry(res.Errors, "tolerance") {
		t.Errorf("expected a tolerance error, got %v", res.Errors)
	}
}

// TestValidateCompliance_WithinToleranceIsWarning pins the other side:
// 21,500 is 3.4% over the same budget and stays a warning.
func TestValidateCompliance_WithinToleranceIsWarning(t *testing.T) {
	data := mustTripData(t, `{
		"budgetCompliance": {"totalCost": 21500, "userBudget": 20800, "withinBudget": true}
	}`)
	res := newTestEstimator().ValidateCompliance(data)
	if hasEntry(res.Errors, "tolerance") {
		t.Errorf("expected no tolerance error, got %v", res.Errors)
	}
	if !hasEntry(res.Warnings, "within the") {
		t.Errorf("expected an over-budget warning, got %v", res.Warnings)
	}
}

func TestValidateCompliance_MissingComplianceObject(t *testing.T) {
	res := newTestEstimator().ValidateCompliance(mustTripData(t, `{}`))
	if res.IsValid {
		t.Fatal("expected an invalid result")
	}
	if !hasEntry(res.Errors, "budgetCompliance") {
		t.Errorf("expected a missing-object error, got %v", res.Errors)
	}
}

// TestValidateCompliance_MistypedFields checks the strict kind rules: a
// numeric string is not a number and a truthy string is not a boolean.
func TestValidateCompliance_MistypedFields(t *testing.T) {
	data := mustTripData(t, `{
		"budgetCompliance": {"totalCost": "9500", "userBudget": 10000, "withinBudget": "yes"}
	}`)
	res := newTestEstimator().ValidateCompliance(data)
	if !hasEntry(res.Errors, "totalCost") {
		t.Errorf("expected a totalCost kind error, got %v", res.Errors)
	}
	if !hasEntry(res.Errors, "withinBudget") {
		t.Errorf("expected a withinBudget kind error, got %v", res.Errors)
	}
	if hasEntry(res.Errors, "userBudget") {
		t.Errorf("userBudget is a real number, got %v", res.Errors)
	}
}

func TestValidateCompliance_SubtotalMismatch(t *testing.T) {
	data := mustTripData(t, `{
		"budgetCompliance": {"totalCost": 5000, "userBudget": 10000, "withinBudget": true},
		"dailyCosts": [
			{"day": 1, "breakdown": {"accommodation": 2000, "meals": 900, "activities": 1500, "transport": 350, "subtotal": 9999}}
		],
		"missingPrices": [],
		"grandTotal": 9999
	}`)
	res := newTestEstimator().ValidateCompliance(data)
	if !hasEntry(res.Errors, "does not match") {
		t.Errorf("expected a subtotal mismatch error, got %v", res.Errors)
	}
}

func TestValidateCompliance_SubtotalRoundingAllowance(t *testing.T) {
	data := mustTripData(t, `{
		"budgetCompliance": {"totalCost": 4751, "userBudget": 10000, "withinBudget": true},
		"dailyCosts": [
			{"day": 1, "breakdown": {"accommodation": 2000, "meals": 900, "activities": 1500, "transport": 350, "subtotal": 4751}}
		],
		"missingPrices": [],
		"grandTotal": 4751
	}`)
	res := newTestEstimator().ValidateCompliance(data)
	if hasEntry(res.Errors, "does not match") {
		t.Errorf("a 1-peso gap is rounding, got %v", res.Errors)
	}
}

func TestValidateCompliance_MissingBreakdown(t *testing.T) {
	data := mustTripData(t, `{
		"budgetCompliance": {"totalCost": 5000, "userBudget": 10000, "withinBudget": true},
		"dailyCosts": [{"day": 1}],
		"missingPrices": [],
		"grandTotal": 5000
	}`)
	res := newTestEstimator().ValidateCompliance(data)
	if !hasEntry(res.Errors, "no cost breakdown") {
		t.Errorf("expected a missing-breakdown error, got %v", res.Errors)
	}
}

func TestValidateCompliance_LowValuesWarn(t *testing.T) {
	data := mustTripData(t, `{
		"budgetCompliance": {"totalCost": 500, "userBudget": 10000, "withinBudget": true},
		"dailyCosts": [
			{"day": 1, "breakdown": {"accommodation": 350, "meals": 60, "activities": 0, "transport": 0, "subtotal": 410}}
		],
		"missingPrices": [],
		"grandTotal": 410
	}`)
	res := newTestEstimator().ValidateCompliance(data)
	if !hasEntry(res.Warnings, "accommodation") {
		t.Errorf("expected a low-accommodation warning, got %v", res.Warnings)
	}
	if !hasEntry(res.Warnings, "meals") {
		t.Errorf("expected a low-meals warning, got %v", res.Warnings)
	}
	if !res.IsValid {
		t.Errorf("low values are warnings only, errors: %v", res.Errors)
	}
}

func TestValidateCompliance_MissingPricesAbsenceWarns(t *testing.T) {
	data := mustTripData(t, `{
		"budgetCompliance": {"totalCost": 5000, "userBudget": 10000, "withinBudget": true}
	}`)
	res := newTestEstimator().ValidateCompliance(data)
	if !hasEntry(res.Warnings, "missingPrices") {
		t.Errorf("expected a missingPrices warning, got %v", res.Warnings)
	}
}

// TestValidateCompliance_GrandTotalCrossCheck covers both sides of the
// tolerance: a 50-peso gap is a warning, a 150-peso gap is an error.
func TestValidateCompliance_GrandTotalCrossCheck(t *testing.T) {
	base := `{
		"budgetCompliance": {"totalCost": 23000, "userBudget": 25000, "withinBudget": true},
		"dailyCosts": [
			{"day": 1, "breakdown": {"accommodation": 5000, "meals": 2000, "activities": 4000, "transport": 500, "subtotal": 11500}},
			{"day": 2, "breakdown": {"accommodation": 5000, "meals": 2000, "activities": 4000, "transport": 500, "subtotal": 11500}}
		],
		"missingPrices": [],
		"grandTotal": %d
	}`

	res := newTestEstimator().ValidateCompliance(mustTripData(t, strings.Replace(base, "%d", "23050", 1)))
	if hasEntry(res.Errors, "grandTotal") {
		t.Errorf("a 50-peso gap should not be an error, got %v", res.Errors)
	}
	if !hasEntry(res.Warnings, "grandTotal") {
		t.Errorf("expected a grand-total warning, got %v", res.Warnings)
	}

	res = newTestEstimator().ValidateCompliance(mustTripData(t, strings.Replace(base, "%d", "23150", 1)))
	if !hasEntry(res.Errors, "grandTotal") {
		t.Errorf("a 150-peso gap should be an error, got %v", res.Errors)
	}
}

func TestValidateCompliance_MissingGrandTotal(t *testing.T) {
	data := mustTripData(t, `{
		"budgetCompliance": {"totalCost": 5000, "userBudget": 10000, "withinBudget": true},
		"dailyCosts": [
			{"day": 1, "breakdown": {"accommodation": 2000, "meals": 900, "activities": 1500, "transport": 350, "subtotal": 4750}}
		],
		"missingPrices": []
	}`)
	res := newTestEstimator().ValidateCompliance(data)
	if !hasEntry(res.Errors, "grandTotal") {
		t.Errorf("expected a missing grandTotal error, got %v", res.Errors)
	}
}
