package budget

// Limits holds the pricing thresholds the engine checks against. The
// defaults encode Philippine-market assumptions (peso airfare and hotel
// ranges); deployments targeting another market override them rather than
// patching the engine.
type Limits struct {
	// PerPersonFareCeiling is the per-person flight cost above which a
	// pre-computed group total is assumed to have been multiplied by the
	// traveler count twice upstream and is divided back down once.
	PerPersonFareCeiling float64

	// DomesticFareMax and InternationalFareMin bound the typical domestic
	// per-person fare band. Fares between the two are flagged; fares at or
	// above InternationalFareMin are treated as expected international
	// pricing and not penalized.
	DomesticFareMax      float64
	InternationalFareMin float64

	// LowFareFloor flags per-person fares that look too cheap to be real.
	LowFareFloor float64

	// GroupFareFloor is the bare-price heuristic cutoff: a single ambiguous
	// price above it for a multi-traveler booking is assumed to already be a
	// group total.
	GroupFareFloor float64

	// SmallGroupMax caps the traveler count for the aggregate flight
	// anomaly check; beyond it a large combined fare is unremarkable.
	SmallGroupMax int

	// HotelNightlyMax flags nightly hotel rates above the typical range.
	HotelNightlyMax float64

	// BudgetTolerance is the fraction of the user's declared budget the
	// declared total may exceed it by before compliance fails outright.
	BudgetTolerance float64

	// GrandTotalTolerance is the largest acceptable gap between the declared
	// grand total and the sum of the daily subtotals. SubtotalRounding is
	// the per-day rounding allowance for a breakdown's subtotal.
	GrandTotalTolerance float64
	SubtotalRounding    float64

	// MinNightlyAccommodation and MinDailyMeals flag per-day declared costs
	// that are unrealistically low for any real stay.
	MinNightlyAccommodation float64
	MinDailyMeals           float64

	// PriceWeight, RatingWeight and ReviewsWeight are the hotel value-score
	// weights; they should sum to 1.
	PriceWeight   float64
	RatingWeight  float64
	ReviewsWeight float64

	// HotelBudgetShare is the fraction of a total trip budget assumed to go
	// to accommodation when deriving a nightly hotel budget.
	HotelBudgetShare float64
}

// DefaultLimits returns the thresholds tuned for Philippine-peso trips.
func DefaultLimits() Limits {
	return Limits{
		PerPersonFareCeiling:    60000,
		DomesticFareMax:         20000,
		InternationalFareMin:    30000,
		LowFareFloor:            1000,
		GroupFareFloor:          15000,
		SmallGroupMax:           4,
		HotelNightlyMax:         8000,
		BudgetTolerance:         0.05,
		GrandTotalTolerance:     100,
		SubtotalRounding:        1,
		MinNightlyAccommodation: 500,
		MinDailyMeals:           100,
		PriceWeight:             0.6,
		RatingWeight:            0.3,
		ReviewsWeight:           0.1,
		HotelBudgetShare:        0.3,
	}
}

// Estimator runs the budget engine with a fixed set of limits. The zero
// value is not usable; construct with NewEstimator. Estimator is a value
// type with no internal state, so a single instance is safe for concurrent
// use.
type Estimator struct {
	Limits Limits
}

// NewEstimator returns an estimator using the given limits.
func NewEstimator(limits Limits) Estimator {
	return Estimator{Limits: limits}
}
