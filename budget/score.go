package budget

import (
	"math"
	"sort"
)

// RankHotels scores hotels for display ordering: cheap against the price
// spread of the candidates, well rated, well reviewed. The result is
// sorted best value first. nightlyBudget, when positive, marks which
// hotels fit the user's nightly accommodation budget; the first input
// hotel keeps its "Recommended" badge because it is the one the cost
// resolver prices.
func (e Estimator) RankHotels(hotels []Hotel, nightlyBudget float64) []RankedHotel {
	if len(hotels) == 0 {
		return nil
	}
	ranked := make([]RankedHotel, len(hotels))
	minPrice, maxPrice := math.Inf(1), math.Inf(-1)
	maxReviews := 0
	for i, h := range hotels {
		nightly, _ := h.NightlyPrice()
		if nightly > 0 {
			minPrice = math.Min(minPrice, nightly)
			maxPrice = math.Max(maxPrice, nightly)
		}
		if n, ok := h.ReviewCount.Positive(); ok && n > maxReviews {
			maxReviews = n
		}
		ranked[i] = RankedHotel{Hotel: h, Nightly: nightly}
	}
	spread := maxPrice - minPrice
	for i := range ranked {
		h := &ranked[i]
		var priceScore float64
		switch {
		case h.Nightly <= 0:
			priceScore = 0
		case spread > 0:
			priceScore = (maxPrice - h.Nightly) / spread
		default:
			priceScore = 1
		}
		rating := clamp01(h.Rating.Value(0) / 5)
		var reviews float64
		if maxReviews > 0 {
			if n, ok := h.ReviewCount.Positive(); ok {
				reviews = clamp01(float64(n) / float64(maxReviews))
			}
		}
		h.ValueScore = round2(e.Limits.PriceWeight*priceScore + e.Limits.RatingWeight*rating + e.Limits.ReviewsWeight*reviews)
		h.WithinBudget = nightlyBudget <= 0 || (h.Nightly > 0 && h.Nightly <= nightlyBudget)
	}

	ranked[0].Badges = append(ranked[0].Badges, "Recommended")
	best, topRated := 0, 0
	for i := 1; i < len(ranked); i++ {
		if ranked[i].ValueScore > ranked[best].ValueScore {
			best = i
		}
		if ranked[i].Rating.Value(0) > ranked[topRated].Rating.Value(0) {
			topRated = i
		}
	}
	ranked[best].Badges = append(ranked[best].Badges, "Best Value")
	if ranked[topRated].Rating.Value(0) > 0 {
		ranked[topRated].Badges = append(ranked[topRated].Badges, "Top Rated")
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].ValueScore > ranked[j].ValueScore })
	return ranked
}

// NightlyHotelBudget derives the per-night accommodation budget from a
// total trip budget using the configured share.
func (e Estimator) NightlyHotelBudget(totalBudget float64, numNights int) float64 {
	if totalBudget <= 0 {
		return 0
	}
	if numNights < 1 {
		numNights = 1
	}
	return totalBudget * e.Limits.HotelBudgetShare / float64(numNights)
}

func clamp01(n float64) float64 {
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

func round2(n float64) float64 {
	return math.Round(n*100) / 100
}
