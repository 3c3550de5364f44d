package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"lakbay/budget"
	"lakbay/jsonrepair"
)

// ─── AI Client ───────────────────────────────────────────────────────────────

// AIClient proxies a hosted instruct model that writes trip itineraries as
// JSON. One attempt per request with a hard timeout; retry policy belongs to
// the caller's UX, not here.
type AIClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

var aiClient *AIClient

func InitAI() {
	model := os.Getenv("HF_MODEL")
	if model == "" {
		model = "mistralai/Mistral-7B-Instruct-v0.3"
	}

	aiClient = &AIClient{
		apiKey: os.Getenv("HUGGINGFACE_API_KEY"),
		model:  model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}

	if aiClient.apiKey != "" {
		log.Println("✅ AI (HuggingFace) initialized with model:", model)
	} else {
		log.Println("⚠️  HUGGINGFACE_API_KEY not set — itineraries will use offline fallback plans")
	}
}

func GetAIClient() *AIClient {
	return aiClient
}

// Configured reports whether the model can be called.
func (c *AIClient) Configured() bool {
	return c != nil && c.apiKey != ""
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfResponse []struct {
	GeneratedText string `json:"generated_text"`
}

// GenerateTripData asks the model for a full trip payload and decodes it,
// salvaging fenced or truncated output. Verified search candidates are put
// in front of the model so its plan and cost claims start from real prices.
func (c *AIClient) GenerateTripData(sel budget.UserSelection, flights []budget.Flight, hotels []budget.Hotel, estimated bool) (budget.TripData, error) {
	var data budget.TripData

	if !c.Configured() {
		return data, fmt.Errorf("AI not configured")
	}

	prompt := buildTripPrompt(sel, flights, hotels, estimated)

	reqBody := hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens:   3000,
			Temperature:    0.4,
			ReturnFullText: false,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return data, err
	}

	url := fmt.Sprintf("https://api-inference.huggingface.co/models/%s", c.model)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return data, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return data, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == 503 {
		return data, fmt.Errorf("AI model is loading, please retry in a few seconds")
	}

	if resp.StatusCode != http.StatusOK {
		return data, fmt.Errorf("HuggingFace API error (%d): %s", resp.StatusCode, string(body))
	}

	var hfResp hfResponse
	if err := json.Unmarshal(body, &hfResp); err != nil {
		return data, fmt.Errorf("failed to parse AI response: %v", err)
	}

	if len(hfResp) == 0 || hfResp[0].GeneratedText == "" {
		return data, fmt.Errorf("empty response from AI")
	}

	if err := jsonrepair.Decode([]byte(hfResp[0].GeneratedText), &data); err != nil {
		return data, fmt.Errorf("itinerary payload unusable: %w", err)
	}
	return data, nil
}

func buildTripPrompt(sel budget.UserSelection, flights []budget.Flight, hotels []budget.Hotel, estimated bool) string {
	travelers := sel.TravelerCount()
	days := sel.Days()
	declaredBudget := sel.DeclaredBudget()

	var b strings.Builder
	fmt.Fprintf(&b, `[INST] You are a travel planner for trips within the Philippines. Plan a trip and answer with a single JSON object only, no prose, no markdown fences.

Trip: %s`, sel.Destination)
	if sel.Origin != "" {
		fmt.Fprintf(&b, " from %s", sel.Origin)
	}
	fmt.Fprintf(&b, " | %d day(s) | %d traveler(s)", days, travelers)
	if sel.StartDate != "" {
		fmt.Fprintf(&b, " | starting %s", sel.StartDate)
	}
	if declaredBudget > 0 {
		fmt.Fprintf(&b, " | total budget PHP %.0f for the whole group", declaredBudget)
	}
	b.WriteString("\n")

	if len(flights) > 0 {
		note := "verified"
		if estimated {
			note = "estimated"
		}
		fmt.Fprintf(&b, "\nFlights already found (%s prices, round trip for the group):\n", note)
		for i, f := range flights {
			if i >= 3 {
				break
			}
			fmt.Fprintf(&b, "  %d. %s — PHP %.0f total (%s)\n", i+1, f.Airline, f.TotalPriceNumeric.Amount(), f.Duration)
		}
	}
	if len(hotels) > 0 {
		b.WriteString("\nHotels already found (nightly room rates):\n")
		for i, h := range hotels {
			if i >= 4 {
				break
			}
			nightly, _ := h.NightlyPrice()
			fmt.Fprintf(&b, "  %d. %s — PHP %.0f/night\n", i+1, h.HotelName, nightly)
		}
	}

	b.WriteString(`
Required JSON shape:
{
  "itinerary": [{"day": 1, "theme": "...", "activities": [{"placeName": "...", "placeDetails": "...", "ticketPrice": 0, "travelTimeToNext": "...", "bestTimeToVisit": "..."}]}],
  "hotels": [{"hotelName": "...", "hotelAddress": "...", "pricePerNight": 0, "rating": 0, "description": "..."}],
  "total_cost": 0,
  "ground_transport": 0,
  "dailyCosts": [{"day": 1, "breakdown": {"accommodation": 0, "meals": 0, "activities": 0, "transport": 0, "subtotal": 0}}],
  "budgetCompliance": {"totalCost": 0, "userBudget": 0, "withinBudget": true},
  "missingPrices": [],
  "pricingNotes": "...",
  "grandTotal": 0
}

Rules: every amount is a plain number in Philippine pesos, never a string, never a currency symbol. ticketPrice is per person; pricePerNight is per room. total_cost and grandTotal cover the whole group for the whole trip. budgetCompliance.totalCost must equal your grandTotal and withinBudget must be honest. List any activity you could not price in missingPrices. [/INST]`)

	return b.String()
}

// ─── Offline Fallback ────────────────────────────────────────────────────────

type fallbackDay struct {
	theme      string
	activities []budget.Activity
}

var fallbackDays = []fallbackDay{
	{
		theme: "Arrival and orientation",
		activities: []budget.Activity{
			{PlaceName: "Airport transfer and hotel check-in", TicketPrice: budget.Price(350), TravelTimeToNext: "30 mins"},
			{PlaceName: "Walking tour of the town center", TicketPrice: budget.PriceString("Free"), BestTimeToVisit: "Late afternoon"},
			{PlaceName: "Welcome dinner at a local eatery", TicketPrice: budget.Price(400)},
		},
	},
	{
		theme: "Island hopping and beaches",
		activities: []budget.Activity{
			{PlaceName: "Island hopping tour with lunch", TicketPrice: budget.Price(1500), BestTimeToVisit: "Morning"},
			{PlaceName: "Beach time and snorkeling", TicketPrice: budget.Price(250)},
			{PlaceName: "Sunset viewpoint", TicketPrice: budget.PriceString("Free"), BestTimeToVisit: "Sunset"},
		},
	},
	{
		theme: "Heritage and local food",
		activities: []budget.Activity{
			{PlaceName: "Heritage site and museum visits", TicketPrice: budget.Price(200), BestTimeToVisit: "Morning"},
			{PlaceName: "Public market food crawl", TicketPrice: budget.Price(500)},
			{PlaceName: "Evening plaza stroll", TicketPrice: budget.PriceString("Free")},
		},
	},
	{
		theme: "Nature day",
		activities: []budget.Activity{
			{PlaceName: "Waterfalls or hills day trip", TicketPrice: budget.Price(800), BestTimeToVisit: "Morning"},
			{PlaceName: "Local delicacy tasting", TicketPrice: budget.Price(300)},
		},
	},
	{
		theme: "Free day and departure prep",
		activities: []budget.Activity{
			{PlaceName: "Souvenir shopping", TicketPrice: budget.Price(500)},
			{PlaceName: "Spa or beach afternoon", TicketPrice: budget.Price(600)},
			{PlaceName: "Airport transfer", TicketPrice: budget.Price(350)},
		},
	},
}

// FallbackTripData builds a deterministic offline itinerary around the
// search candidates when the model is unavailable. It carries no
// budgetCompliance block; there is no AI claim to validate.
func FallbackTripData(sel budget.UserSelection, hotels []budget.Hotel) budget.TripData {
	days := sel.Days()
	if days < 1 {
		days = 1
	}

	itinerary := make(budget.DayList, 0, days)
	for d := 0; d < days; d++ {
		tpl := fallbackDays[d%len(fallbackDays)]
		acts := make([]budget.Activity, len(tpl.activities))
		copy(acts, tpl.activities)
		itinerary = append(itinerary, budget.Day{
			Label:      fmt.Sprintf("%d", d+1),
			Theme:      tpl.theme,
			Activities: acts,
		})
	}

	kept := hotels
	if len(kept) > 3 {
		kept = kept[:3]
	}

	place := strings.TrimSpace(sel.Destination)
	if place == "" {
		place = "local"
	}

	return budget.TripData{
		Itinerary:     itinerary,
		Hotels:        budget.HotelList(kept),
		MissingPrices: budget.Strings("meals outside listed activities"),
		PricingNotes:  budget.Text("Offline plan built from typical " + place + " prices; verify before booking."),
	}
}
