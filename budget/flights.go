package budget

import "fmt"

// ─── Flight cost reconciliation ──────────────────────────────────────────────
//
// Upstream systems disagree about how a flight's price is expressed: some
// send a pre-computed group total, some a per-person fare with a traveler
// count, some a bare number that could be either. Each flight is priced by
// the first strategy in the chain that can make sense of its fields, so
// the priority order below is the whole contract.

// flightPricing is one flight's resolved cost.
type flightPricing struct {
	total     float64
	perPerson float64
	travelers int
	warnings  []string
}

// flightStrategy is a single pricing rule. apply reports whether the rule
// could price the flight; warnings come back without a flight reference,
// the caller prefixes one.
type flightStrategy struct {
	name  string
	apply func(e Estimator, f Flight, travelers int, perPersonDefault bool) (flightPricing, bool)
}

// Ordered by trust: explicit group totals first, then per-person math,
// then the ambiguous bare price.
var flightStrategies = []flightStrategy{
	{"trusted group total", trustedGroupTotal},
	{"parsed group total", parsedGroupTotal},
	{"per-person with record count", perPersonWithRecordCount},
	{"per-person with caller count", perPersonWithCallerCount},
	{"bare price heuristic", barePriceHeuristic},
}

// FlightsCost reconciles each flight's price fields into one group total
// and sums them across the list. travelers is the caller's resolved
// traveler count; perPersonDefault tells the bare-price fallback whether
// an ambiguous price is per person (AI estimates) or already a group
// total (verified search data). Warnings are diagnostics only, the sum is
// returned regardless.
func (e Estimator) FlightsCost(flights []Flight, travelers int, perPersonDefault bool) (float64, []string) {
	if len(flights) == 0 {
		return 0, nil
	}
	if travelers < 1 {
		travelers = 1
	}
	var total float64
	var warnings []string
	for i, f := range flights {
		pricing, matched := e.priceFlight(f, travelers, perPersonDefault)
		ref := flightRef(f, i)
		if matched == "" {
			warnings = append(warnings, fmt.Sprintf("flight %s has no usable price, counted as ₱0", ref))
			continue
		}
		for _, w := range pricing.warnings {
			warnings = append(warnings, fmt.Sprintf("flight %s: %s", ref, w))
		}
		for _, w := range e.fareBandWarnings(pricing.perPerson) {
			warnings = append(warnings, fmt.Sprintf("flight %s: %s", ref, w))
		}
		total += pricing.total
	}
	if per := total / float64(travelers); per > e.Limits.DomesticFareMax && travelers <= e.Limits.SmallGroupMax {
		warnings = append(warnings, fmt.Sprintf(
			"combined flight cost works out to %s per traveler, above the typical domestic range", formatPeso(per)))
	}
	return total, warnings
}

// priceFlight runs the strategy chain and returns the winning strategy's
// name, empty when nothing could price the flight.
func (e Estimator) priceFlight(f Flight, travelers int, perPersonDefault bool) (flightPricing, string) {
	for _, s := range flightStrategies {
		if pricing, ok := s.apply(e, f, travelers, perPersonDefault); ok {
			return pricing, s.name
		}
	}
	return flightPricing{}, ""
}

// trustedGroupTotal uses a numeric pre-computed group total as-is.
func trustedGroupTotal(e Estimator, f Flight, travelers int, _ bool) (flightPricing, bool) {
	n, ok := f.TotalPriceNumeric.Number()
	if !ok || n <= 0 {
		return flightPricing{}, false
	}
	return e.groupTotalPricing(n, recordTravelers(f, travelers)), true
}

// parsedGroupTotal covers group totals that arrive as text and need the
// price parser first.
func parsedGroupTotal(e Estimator, f Flight, travelers int, _ bool) (flightPricing, bool) {
	var total float64
	if f.TotalPrice.HasValue() {
		total = f.TotalPrice.Amount()
	}
	if total <= 0 {
		if s, ok := f.TotalPriceNumeric.Text(); ok {
			total = ParsePrice(s)
		}
	}
	if total <= 0 {
		return flightPricing{}, false
	}
	return e.groupTotalPricing(total, recordTravelers(f, travelers)), true
}

// perPersonWithRecordCount multiplies a per-person fare by the traveler
// count the record itself declares.
func perPersonWithRecordCount(_ Estimator, f Flight, _ int, _ bool) (flightPricing, bool) {
	per := f.PricePerPerson.Amount()
	if per <= 0 {
		return flightPricing{}, false
	}
	count, ok := f.Travelers.Positive()
	if !ok {
		count, ok = f.Passengers.Positive()
	}
	if !ok {
		return flightPricing{}, false
	}
	return flightPricing{total: per * float64(count), perPerson: per, travelers: count}, true
}

// perPersonWithCallerCount multiplies a per-person fare by the caller's
// traveler count when the record declares none.
func perPersonWithCallerCount(_ Estimator, f Flight, travelers int, _ bool) (flightPricing, bool) {
	per := f.PricePerPerson.Amount()
	if per <= 0 {
		return flightPricing{}, false
	}
	return flightPricing{total: per * float64(travelers), perPerson: per, travelers: travelers}, true
}

// barePriceHeuristic handles the legacy single price field. A price above
// the group-fare floor for a multi-traveler booking is assumed to be a
// group total already; otherwise perPersonDefault decides whether to
// multiply.
func barePriceHeuristic(e Estimator, f Flight, travelers int, perPersonDefault bool) (flightPricing, bool) {
	p := f.Price.Amount()
	if p <= 0 {
		return flightPricing{}, false
	}
	if p > e.Limits.GroupFareFloor && travelers > 1 {
		return flightPricing{total: p, perPerson: p / float64(travelers), travelers: travelers}, true
	}
	if perPersonDefault {
		return flightPricing{total: p * float64(travelers), perPerson: p, travelers: travelers}, true
	}
	return flightPricing{total: p, perPerson: p / float64(travelers), travelers: travelers}, true
}

// groupTotalPricing applies the double-multiplication guard to an
// upstream group total: a per-person share above the ceiling means the
// total was already multiplied by the traveler count once, so it is
// divided back down. The ceiling keeps legitimately expensive
// international fares untouched.
func (e Estimator) groupTotalPricing(total float64, travelers int) flightPricing {
	if travelers < 1 {
		travelers = 1
	}
	p := flightPricing{total: total, travelers: travelers}
	per := total / float64(travelers)
	if travelers > 1 && per > e.Limits.PerPersonFareCeiling {
		p.total = total / float64(travelers)
		per = p.total / float64(travelers)
		p.warnings = append(p.warnings, fmt.Sprintf(
			"group total %s looks multiplied by the traveler count twice, corrected to %s",
			formatPeso(total), formatPeso(p.total)))
	}
	p.perPerson = per
	return p
}

// fareBandWarnings flags per-person fares outside the typical Philippine
// bands. Fares at or above the international floor are expected on
// international routes and not flagged.
func (e Estimator) fareBandWarnings(perPerson float64) []string {
	switch {
	case perPerson <= 0:
		return nil
	case perPerson < e.Limits.LowFareFloor:
		return []string{fmt.Sprintf("%s per person looks unusually cheap, double-check the fare", formatPeso(perPerson))}
	case perPerson > e.Limits.DomesticFareMax && perPerson < e.Limits.InternationalFareMin:
		return []string{fmt.Sprintf("%s per person is above the typical domestic range", formatPeso(perPerson))}
	}
	return nil
}

// recordTravelers resolves the traveler count attached to a flight
// record, falling back to the caller's count, floored at one.
func recordTravelers(f Flight, fallback int) int {
	if n, ok := f.Travelers.Positive(); ok {
		return n
	}
	if n, ok := f.Passengers.Positive(); ok {
		return n
	}
	if fallback > 0 {
		return fallback
	}
	return 1
}

func flightRef(f Flight, i int) string {
	switch {
	case f.Airline != "" && f.FlightNumber != "":
		return f.Airline + " " + f.FlightNumber
	case f.Airline != "":
		return f.Airline
	case f.FlightNumber != "":
		return f.FlightNumber
	}
	return fmt.Sprintf("#%d", i+1)
}
