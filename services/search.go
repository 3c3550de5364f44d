package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"lakbay/budget"
)

// ─── Travel Search Client ────────────────────────────────────────────────────

// TravelClient fetches verified flight and hotel offers from the Amadeus
// self-service API, priced in Philippine pesos. When no credentials are
// configured the search handlers fall back to the deterministic estimate
// generators below.
type TravelClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	accessToken  string
	tokenExpiry  time.Time
	mu           sync.Mutex
	httpClient   *http.Client
}

var travelClient *TravelClient

func InitTravelSearch() {
	env := os.Getenv("AMADEUS_ENV")
	baseURL := "https://api.amadeus.com" // production
	if env == "" || env == "test" {
		baseURL = "https://test.api.amadeus.com" // free test environment
	}

	travelClient = &TravelClient{
		clientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		clientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
		baseURL:      baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	if travelClient.clientID == "" || travelClient.clientSecret == "" {
		log.Println("⚠️  AMADEUS_CLIENT_ID or AMADEUS_CLIENT_SECRET not set — flight/hotel search will use estimated data")
		return
	}

	// Pre-warm the token
	if err := travelClient.refreshToken(); err != nil {
		log.Printf("⚠️  Amadeus token pre-warm failed: %v", err)
	} else {
		log.Println("✅ Amadeus API authenticated")
	}
}

func GetTravelClient() *TravelClient {
	return travelClient
}

// Configured reports whether live searches can be attempted at all.
func (c *TravelClient) Configured() bool {
	return c != nil && c.clientID != "" && c.clientSecret != ""
}

// ─── OAuth2 Token ────────────────────────────────────────────────────────────

func (c *TravelClient) refreshToken() error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequest("POST",
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse token response: %v", err)
	}

	c.mu.Lock()
	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	c.mu.Unlock()

	return nil
}

func (c *TravelClient) getToken() (string, error) {
	c.mu.Lock()
	expired := time.Now().After(c.tokenExpiry)
	token := c.accessToken
	c.mu.Unlock()

	if expired || token == "" {
		if err := c.refreshToken(); err != nil {
			return "", err
		}
		c.mu.Lock()
		token = c.accessToken
		c.mu.Unlock()
	}
	return token, nil
}

func (c *TravelClient) doRequest(method, path string) ([]byte, error) {
	token, err := c.getToken()
	if err != nil {
		return nil, fmt.Errorf("auth failed: %w", err)
	}

	req, err := http.NewRequest(method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("amadeus error (%d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// ─── Flight Search ───────────────────────────────────────────────────────────

// SearchFlights fetches round-trip flight offers priced in PHP. The returned
// records carry the group total, the per-person fare and the traveler count
// so the cost reconciler never has to guess.
func (c *TravelClient) SearchFlights(origin, destination, departureDate, returnDate string, adults int) ([]budget.Flight, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("travel search not configured")
	}
	if adults < 1 {
		adults = 1
	}

	path := fmt.Sprintf(
		"/v2/shopping/flight-offers?originLocationCode=%s&destinationLocationCode=%s"+
			"&departureDate=%s&returnDate=%s&adults=%d&max=6&currencyCode=PHP",
		url.QueryEscape(origin),
		url.QueryEscape(destination),
		url.QueryEscape(departureDate),
		url.QueryEscape(returnDate),
		adults,
	)

	body, err := c.doRequest("GET", path)
	if err != nil {
		return nil, fmt.Errorf("flight search failed: %w", err)
	}

	return parseFlightOffers(body, adults)
}

type flightOffersResponse struct {
	Data []flightOffer `json:"data"`
}

type flightOffer struct {
	Price struct {
		GrandTotal string `json:"grandTotal"`
		Currency   string `json:"currency"`
	} `json:"price"`
	Itineraries []struct {
		Duration string `json:"duration"`
		Segments []struct {
			Departure struct {
				IataCode string `json:"iataCode"`
				At       string `json:"at"`
			} `json:"departure"`
			Arrival struct {
				IataCode string `json:"iataCode"`
				At       string `json:"at"`
			} `json:"arrival"`
			CarrierCode string `json:"carrierCode"`
			Number      string `json:"number"`
		} `json:"segments"`
	} `json:"itineraries"`
	ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
}

func parseFlightOffers(data []byte, adults int) ([]budget.Flight, error) {
	var resp flightOffersResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse flight offers: %w", err)
	}

	flights := make([]budget.Flight, 0, len(resp.Data))

	for _, offer := range resp.Data {
		if len(offer.Itineraries) < 1 {
			continue
		}

		total := budget.ParsePrice(offer.Price.GrandTotal)
		if total <= 0 {
			continue
		}

		outbound := offer.Itineraries[0]
		airlineCode := ""
		if len(outbound.Segments) > 0 {
			airlineCode = outbound.Segments[0].CarrierCode
		} else if len(offer.ValidatingAirlineCodes) > 0 {
			airlineCode = offer.ValidatingAirlineCodes[0]
		}

		f := budget.Flight{
			Airline:           airlineName(airlineCode),
			Duration:          parseDuration(outbound.Duration),
			Stops:             budget.Count(max(0, len(outbound.Segments)-1)),
			TotalPriceNumeric: budget.Price(total),
			PricePerPerson:    budget.Price(math.Round(total / float64(adults))),
			Travelers:         budget.Count(adults),
			Verified:          budget.Bool(true),
		}

		if len(outbound.Segments) > 0 {
			f.DepartureTime = outbound.Segments[0].Departure.At
			f.ArrivalTime = outbound.Segments[len(outbound.Segments)-1].Arrival.At
			f.FlightNumber = airlineCode + outbound.Segments[0].Number
		}

		flights = append(flights, f)
	}

	return flights, nil
}

// ─── Hotel Search ────────────────────────────────────────────────────────────

// SearchHotels fetches hotel offers priced in PHP and normalizes each one to
// a nightly room rate.
func (c *TravelClient) SearchHotels(cityCode, checkIn, checkOut string, adults, nights int) ([]budget.Hotel, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("travel search not configured")
	}
	if nights < 1 {
		nights = 1
	}

	hotelIDs, err := c.hotelIDsByCity(cityCode)
	if err != nil {
		return nil, fmt.Errorf("hotel list failed: %w", err)
	}
	if len(hotelIDs) == 0 {
		return nil, fmt.Errorf("no hotels found for city %s", cityCode)
	}

	// First 20 IDs only, to stay under the offer endpoint's limits.
	if len(hotelIDs) > 20 {
		hotelIDs = hotelIDs[:20]
	}

	return c.hotelOffers(hotelIDs, checkIn, checkOut, adults, nights)
}

type hotelListResponse struct {
	Data []struct {
		HotelID string `json:"hotelId"`
		Name    string `json:"name"`
	} `json:"data"`
}

func (c *TravelClient) hotelIDsByCity(cityCode string) ([]string, error) {
	path := fmt.Sprintf("/v1/reference-data/locations/hotels/by-city?cityCode=%s&radius=5&radiusUnit=KM&hotelSource=ALL",
		url.QueryEscape(hotelCity(cityCode)))

	body, err := c.doRequest("GET", path)
	if err != nil {
		return nil, err
	}

	var resp hotelListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse hotel list: %w", err)
	}

	ids := make([]string, 0, len(resp.Data))
	for _, h := range resp.Data {
		ids = append(ids, h.HotelID)
	}
	return ids, nil
}

type hotelOffersResponse struct {
	Data []struct {
		Hotel struct {
			HotelID  string `json:"hotelId"`
			Name     string `json:"name"`
			CityCode string `json:"cityCode"`
			Address  struct {
				Lines    []string `json:"lines"`
				CityName string   `json:"cityName"`
			} `json:"address"`
			Rating string `json:"rating"`
		} `json:"hotel"`
		Available bool `json:"available"`
		Offers    []struct {
			Price struct {
				Total    string `json:"total"`
				Currency string `json:"currency"`
			} `json:"price"`
		} `json:"offers"`
	} `json:"data"`
}

func (c *TravelClient) hotelOffers(hotelIDs []string, checkIn, checkOut string, adults, nights int) ([]budget.Hotel, error) {
	path := fmt.Sprintf("/v3/shopping/hotel-offers?hotelIds=%s&checkInDate=%s&checkOutDate=%s&adults=%d&roomQuantity=1&currency=PHP&bestRateOnly=true",
		url.QueryEscape(strings.Join(hotelIDs, ",")),
		url.QueryEscape(checkIn),
		url.QueryEscape(checkOut),
		adults,
	)

	body, err := c.doRequest("GET", path)
	if err != nil {
		return nil, fmt.Errorf("hotel offers failed: %w", err)
	}

	var resp hotelOffersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse hotel offers: %w", err)
	}

	hotels := make([]budget.Hotel, 0, len(resp.Data))
	for _, item := range resp.Data {
		if !item.Available || len(item.Offers) == 0 {
			continue
		}

		total := budget.ParsePrice(item.Offers[0].Price.Total)
		if total <= 0 {
			continue
		}

		address := item.Hotel.Address.CityName
		if len(item.Hotel.Address.Lines) > 0 {
			address = strings.Join(item.Hotel.Address.Lines, ", ")
		}
		if address == "" {
			address = item.Hotel.CityCode
		}

		hotels = append(hotels, budget.Hotel{
			HotelName:     item.Hotel.Name,
			HotelAddress:  address,
			PricePerNight: budget.Price(math.Round(total / float64(nights))),
			Rating:        budget.Float(parseRating(item.Hotel.Rating)),
			HotelID:       budget.Text(item.Hotel.HotelID),
			PricingType:   "per room",
			Verified:      budget.Bool(true),
		})
	}

	return hotels, nil
}

// ─── Search With Fallback ────────────────────────────────────────────────────

// FindFlights returns flight candidates for a route: live offers when the
// travel client is configured and answering, the estimated generator
// otherwise. The source tag tells the two apart.
func FindFlights(origin, destination, departureDate, returnDate string, adults int) ([]budget.Flight, string) {
	c := GetTravelClient()
	if c.Configured() {
		flights, err := c.SearchFlights(origin, destination, departureDate, returnDate, adults)
		switch {
		case err != nil:
			log.Printf("⚠️  Live flight search %s-%s failed: %v — using estimated fares", origin, destination, err)
		case len(flights) == 0:
			log.Printf("⚠️  Live flight search %s-%s returned no offers — using estimated fares", origin, destination)
		default:
			log.Printf("✅ %d live flight offers for %s-%s", len(flights), origin, destination)
			return flights, budget.SourceLive
		}
	}
	return EstimatedFlights(origin, destination, departureDate, adults), budget.SourceEstimated
}

// FindHotels returns hotel candidates for a city, live when possible,
// estimated otherwise.
func FindHotels(cityCode, destination, checkIn, checkOut string, adults, nights int) ([]budget.Hotel, string) {
	c := GetTravelClient()
	if c.Configured() {
		hotels, err := c.SearchHotels(cityCode, checkIn, checkOut, adults, nights)
		switch {
		case err != nil:
			log.Printf("⚠️  Live hotel search for %s failed: %v — using estimated rates", cityCode, err)
		case len(hotels) == 0:
			log.Printf("⚠️  Live hotel search for %s returned no offers — using estimated rates", cityCode)
		default:
			log.Printf("✅ %d live hotel offers for %s", len(hotels), cityCode)
			return hotels, budget.SourceLive
		}
	}
	return EstimatedHotels(hotelCity(cityCode), destination), budget.SourceEstimated
}

// ─── Estimated Data (when the API is not configured or fails) ────────────────

type routeInfo struct {
	fare    float64 // round trip, per person, PHP
	minutes int
}

// Major Philippine routes with typical round-trip fares. Unknown pairs get
// a generic mid-range domestic fare.
var domesticRoutes = map[string]routeInfo{
	"MNL-CEB": {4800, 85},
	"MNL-DVO": {6400, 105},
	"MNL-PPS": {5200, 80},
	"MNL-MPH": {5600, 70},
	"MNL-KLO": {4400, 65},
	"MNL-TAG": {5000, 75},
	"MNL-ILO": {4600, 75},
	"MNL-BCD": {4600, 70},
	"MNL-IAO": {7200, 150},
	"MNL-CGY": {6000, 90},
	"MNL-ZAM": {6800, 110},
	"MNL-GES": {6600, 110},
	"MNL-DGT": {5400, 80},
	"MNL-CRK": {2200, 40},
	"CEB-DVO": {3800, 60},
	"CEB-IAO": {4200, 75},
	"CEB-PPS": {5400, 85},
	"CEB-CGY": {3600, 45},
}

type carrierOption struct {
	name    string
	fareMod float64
	stops   int
}

var domesticCarriers = []carrierOption{
	{"Philippine Airlines", 1.00, 0},
	{"Cebu Pacific", 0.78, 0},
	{"AirAsia Philippines", 0.72, 0},
	{"PAL Express", 0.92, 0},
	{"Cebgo", 0.82, 1},
}

// EstimatedFlights produces plausible peso-denominated flight candidates for
// a route without calling any API. Deterministic for a given route and date.
func EstimatedFlights(origin, destination, departureDate string, adults int) []budget.Flight {
	if adults < 1 {
		adults = 1
	}

	info, ok := domesticRoutes[origin+"-"+destination]
	if !ok {
		info, ok = domesticRoutes[destination+"-"+origin]
	}
	if !ok {
		info = routeInfo{5500, 90}
	}

	depDate, _ := time.Parse("2006-01-02", departureDate)

	flights := make([]budget.Flight, 0, len(domesticCarriers))
	for i, opt := range domesticCarriers {
		perPerson := float64(int(info.fare*opt.fareMod/50) * 50)
		total := perPerson * float64(adults)

		dur := info.minutes
		if opt.stops > 0 {
			dur += 75
		}

		depTime := time.Date(depDate.Year(), depDate.Month(), depDate.Day(), 5+i*3, 0, 0, 0, time.UTC)
		arrTime := depTime.Add(time.Duration(dur) * time.Minute)

		flights = append(flights, budget.Flight{
			Airline:           opt.name,
			DepartureTime:     depTime.Format(time.RFC3339),
			ArrivalTime:       arrTime.Format(time.RFC3339),
			Duration:          formatDurationMin(dur),
			Stops:             budget.Count(opt.stops),
			TotalPriceNumeric: budget.Price(total),
			PricePerPerson:    budget.Price(perPerson),
			Travelers:         budget.Count(adults),
			Verified:          budget.Bool(false),
		})
	}
	return flights
}

type stubHotel struct {
	name    string
	address string
	nightly float64
	rating  float64
	reviews int
}

var cityHotels = map[string][]stubHotel{
	"MNL": {
		{"The Manila Hotel", "One Rizal Park, Ermita, Manila", 6500, 4.6, 8200},
		{"Conrad Manila", "Seaside Blvd, Pasay", 8000, 4.7, 5400},
		{"Red Planet Makati", "Makati Ave, Makati", 1800, 4.0, 3100},
		{"Go Hotels Ortigas", "Ortigas Center, Pasig", 1400, 3.9, 2600},
		{"The Bayleaf Intramuros", "Muralla St, Intramuros, Manila", 4200, 4.4, 3900},
	},
	"CEB": {
		{"Shangri-La Mactan", "Punta Engaño, Lapu-Lapu", 7800, 4.6, 9100},
		{"Quest Hotel Cebu", "Archbishop Reyes Ave, Cebu City", 2800, 4.2, 6300},
		{"Bai Hotel Cebu", "Ouano Ave, Mandaue", 3400, 4.4, 4800},
		{"Sugbutel Family Hotel", "Osmeña Blvd, Cebu City", 1100, 3.8, 2100},
		{"Montebello Villa Hotel", "Banilad, Cebu City", 2400, 4.0, 2900},
	},
	"MPH": {
		{"Henann Regency Resort", "Station 2, White Beach, Boracay", 7200, 4.5, 7800},
		{"The Lind Boracay", "Station 1, White Beach, Boracay", 9500, 4.7, 3400},
		{"Astoria Current", "Station 3, Boracay", 4800, 4.3, 2700},
		{"Frendz Resort Boracay", "Station 1, Boracay", 1600, 4.1, 1900},
		{"Red Coconut Beach Hotel", "Station 2, Boracay", 3600, 4.0, 2300},
	},
	"PPS": {
		{"Hue Hotels Puerto Princesa", "Rizal Ave, Puerto Princesa", 3200, 4.3, 2800},
		{"Canvas Boutique Hotel", "National Highway, Puerto Princesa", 2900, 4.4, 2400},
		{"Go Hotels Puerto Princesa", "Lacao St, Puerto Princesa", 1300, 3.9, 1700},
		{"Princesa Garden Island Resort", "Barangay Bancao-Bancao", 6800, 4.4, 2100},
	},
	"TAG": {
		{"Henann Resort Alona Beach", "Alona Beach, Panglao", 6800, 4.5, 6200},
		{"Bohol Beach Club", "Bolod Beach, Panglao", 5400, 4.3, 2800},
		{"Belian Hotel", "Tagbilaran City", 2200, 4.1, 1400},
		{"Alona Kew White Beach", "Alona Beach, Panglao", 3200, 3.9, 1800},
	},
	"DVO": {
		{"Dusit Thani Residence Davao", "JP Laurel Ave, Davao", 5600, 4.6, 1900},
		{"Seda Abreeza", "JP Laurel Ave, Davao", 4400, 4.5, 3200},
		{"Red Planet Davao", "Palma Gil St, Davao", 1500, 4.0, 2200},
		{"Go Hotels Davao", "Lanang, Davao", 1200, 3.8, 1600},
	},
	"IAO": {
		{"Nay Palad Hideaway", "General Luna, Siargao", 9800, 4.8, 900},
		{"Siargao Bleu Resort", "General Luna, Siargao", 5200, 4.3, 1500},
		{"Kermit Siargao", "Tourism Road, General Luna", 2600, 4.4, 2100},
		{"Paglaom Hostel", "General Luna, Siargao", 900, 4.2, 1100},
	},
	"ILO": {
		{"Richmonde Hotel Iloilo", "Megaworld Blvd, Iloilo", 3800, 4.5, 2600},
		{"Seda Atria", "Pison Ave, Iloilo", 3400, 4.4, 2200},
		{"Go Hotels Iloilo", "Iloilo Esplanade", 1200, 3.9, 1500},
	},
	"BCD": {
		{"L'Fisher Hotel", "Lacson St, Bacolod", 3200, 4.3, 2400},
		{"Seda Capitol Central", "Lacson St, Bacolod", 3600, 4.5, 1800},
		{"Go Hotels Bacolod", "Mandalagan, Bacolod", 1100, 3.9, 1300},
	},
}

// EstimatedHotels produces plausible peso-denominated hotel candidates for a
// city without calling any API.
func EstimatedHotels(cityCode, destination string) []budget.Hotel {
	stubs, ok := cityHotels[cityCode]
	if !ok {
		place := destination
		if place == "" {
			place = cityCode
		}
		stubs = []stubHotel{
			{"Grand Plaza Hotel", "City Center, " + place, 3500, 4.4, 2400},
			{"Seaside Pension House", "Waterfront, " + place, 1400, 4.1, 1600},
			{"Heritage Boutique Inn", "Old Town, " + place, 2400, 4.3, 1100},
			{"Backpackers Hostel", "Downtown, " + place, 800, 3.9, 1900},
			{"Island View Resort", "Beachfront, " + place, 5200, 4.5, 2800},
		}
	}

	hotels := make([]budget.Hotel, 0, len(stubs))
	for _, s := range stubs {
		hotels = append(hotels, budget.Hotel{
			HotelName:     s.name,
			HotelAddress:  s.address,
			PricePerNight: budget.Price(s.nightly),
			Rating:        budget.Float(s.rating),
			ReviewCount:   budget.Count(s.reviews),
			PricingType:   "per room",
			Verified:      budget.Bool(false),
		})
	}
	return hotels
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

var cityCodes = []struct {
	match string
	code  string
}{
	{"manila", "MNL"},
	{"cebu", "CEB"},
	{"boracay", "MPH"},
	{"caticlan", "MPH"},
	{"kalibo", "KLO"},
	{"el nido", "ENI"},
	{"coron", "USU"},
	{"puerto princesa", "PPS"},
	{"palawan", "PPS"},
	{"bohol", "TAG"},
	{"panglao", "TAG"},
	{"tagbilaran", "TAG"},
	{"davao", "DVO"},
	{"siargao", "IAO"},
	{"iloilo", "ILO"},
	{"bacolod", "BCD"},
	{"cagayan de oro", "CGY"},
	{"zamboanga", "ZAM"},
	{"general santos", "GES"},
	{"dumaguete", "DGT"},
	{"camiguin", "CGM"},
	{"clark", "CRK"},
	{"angeles", "CRK"},
}

// CityCode resolves a free-text destination to an airport code. More
// specific names are matched before the provinces that contain them.
func CityCode(destination string) string {
	d := strings.ToLower(destination)
	for _, c := range cityCodes {
		if strings.Contains(d, c.match) {
			return c.code
		}
	}
	up := strings.ToUpper(strings.TrimSpace(destination))
	if len(up) == 3 {
		return up
	}
	return "MNL"
}

// hotelCity maps airports that serve a different resort city.
var hotelCityOverride = map[string]string{
	"KLO": "MPH",
	"CRK": "MNL",
}

func hotelCity(airport string) string {
	if city, ok := hotelCityOverride[airport]; ok {
		return city
	}
	return airport
}

// parseDuration converts ISO 8601 duration (PT1H25M) to human readable (1h 25m)
func parseDuration(iso string) string {
	if iso == "" {
		return ""
	}
	iso = strings.TrimPrefix(iso, "PT")
	result := ""
	hIdx := strings.Index(iso, "H")
	mIdx := strings.Index(iso, "M")
	if hIdx >= 0 {
		result += iso[:hIdx] + "h"
		iso = iso[hIdx+1:]
		mIdx = strings.Index(iso, "M")
	}
	if mIdx >= 0 && mIdx < len(iso) {
		if result != "" {
			result += " "
		}
		result += iso[:mIdx] + "m"
	}
	return result
}

func formatDurationMin(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}

func parseRating(s string) float64 {
	if s == "" {
		return 4.0
	}
	var r float64
	fmt.Sscanf(s, "%f", &r)
	if r <= 0 {
		return 4.0
	}
	// Amadeus returns star ratings 1-5
	if r > 5 {
		r = 5
	}
	return r
}

// airlineName returns the full carrier name from an IATA code.
func airlineName(code string) string {
	names := map[string]string{
		"PR": "Philippine Airlines",
		"2P": "PAL Express",
		"5J": "Cebu Pacific",
		"DG": "Cebgo",
		"Z2": "AirAsia Philippines",
		"EK": "Emirates",
		"SQ": "Singapore Airlines",
		"CX": "Cathay Pacific",
		"QR": "Qatar Airways",
		"NH": "ANA",
		"JL": "Japan Airlines",
		"KE": "Korean Air",
		"OZ": "Asiana Airlines",
		"CI": "China Airlines",
		"BR": "EVA Air",
		"TG": "Thai Airways",
		"MH": "Malaysia Airlines",
		"GA": "Garuda Indonesia",
		"VN": "Vietnam Airlines",
		"TR": "Scoot",
		"AK": "AirAsia",
		"JQ": "Jetstar",
		"UA": "United Airlines",
		"DL": "Delta Air Lines",
		"QF": "Qantas",
		"EY": "Etihad Airways",
		"TK": "Turkish Airlines",
	}
	if name, ok := names[code]; ok {
		return name
	}
	if code != "" {
		return code + " Airlines"
	}
	return "Unknown Airline"
}
