// Package budget implements the cost reconciliation engine for
// Philippine-peso trips: parsing messy price values from LLM and
// search-API output, aggregating activity, hotel and flight costs,
// correcting known upstream pricing defects, and validating the AI's
// self-declared budget compliance. Every function is pure and safe for
// concurrent use; bad data degrades to zeros and warnings, never to
// errors or panics.
package budget

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Source tags for search-backed hotel and flight data.
const (
	SourceLive      = "live"
	SourceEstimated = "estimated"
)

type valueKind int

const (
	kindNone valueKind = iota
	kindNumber
	kindString
	kindBool
	kindOther
)

// ─── Flexible JSON values ────────────────────────────────────────────────────

// PriceValue is a price-like JSON value as it arrives from an LLM or a
// search API: a number, a string ("₱1,500", "Free", "1000 - 2000"), null,
// or something else entirely. Decoding never fails; the original kind is
// kept so callers can tell a missing price from an unparsable one.
type PriceValue struct {
	kind valueKind
	num  float64
	str  string
	raw  json.RawMessage
}

// Price returns a PriceValue holding a plain number.
func Price(n float64) PriceValue { return PriceValue{kind: kindNumber, num: n} }

// PriceString returns a PriceValue holding raw price text.
func PriceString(s string) PriceValue { return PriceValue{kind: kindString, str: s} }

func (p *PriceValue) UnmarshalJSON(data []byte) error {
	*p = PriceValue{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if json.Unmarshal(data, &s) != nil {
			return nil
		}
		p.kind = kindString
		p.str = s
	case 't', 'f', '{', '[':
		p.kind = kindOther
		p.raw = append(json.RawMessage(nil), data...)
	default:
		var n float64
		if json.Unmarshal(data, &n) != nil {
			p.kind = kindOther
			p.raw = append(json.RawMessage(nil), data...)
			return nil
		}
		p.kind = kindNumber
		p.num = n
	}
	return nil
}

func (p PriceValue) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case kindNumber:
		return json.Marshal(p.num)
	case kindString:
		return json.Marshal(p.str)
	case kindOther:
		if len(p.raw) > 0 {
			return p.raw, nil
		}
	}
	return []byte("null"), nil
}

// IsSet reports whether the value carried price material, a number or a
// string. Null, absent and structured values are not set.
func (p PriceValue) IsSet() bool { return p.kind == kindNumber || p.kind == kindString }

// Number returns the raw numeric value when the input was a JSON number.
func (p PriceValue) Number() (float64, bool) {
	if p.kind != kindNumber {
		return 0, false
	}
	return p.num, true
}

// Text returns the raw string when the input was a JSON string.
func (p PriceValue) Text() (string, bool) {
	if p.kind != kindString {
		return "", false
	}
	return p.str, true
}

// HasValue reports whether the value would win a price-field fallback
// chain: a non-zero number or a non-blank string. Explicit zeros fall
// through so a later alias can still supply the price.
func (p PriceValue) HasValue() bool {
	switch p.kind {
	case kindNumber:
		return p.num != 0
	case kindString:
		return strings.TrimSpace(p.str) != ""
	}
	return false
}

// Amount normalizes the value to pesos: numbers pass through with
// non-finite mapped to 0, strings go through ParsePrice, everything else
// is 0.
func (p PriceValue) Amount() float64 {
	switch p.kind {
	case kindNumber:
		if math.IsNaN(p.num) || math.IsInf(p.num, 0) {
			return 0
		}
		return p.num
	case kindString:
		return ParsePrice(p.str)
	}
	return 0
}

var digitRun = regexp.MustCompile(`[0-9]+`)

// FlexCount is a count field ("travelers": 2, "2 People", "3") decoded
// from a number or from the first digit run in a string. Decoding never
// fails.
type FlexCount struct {
	set bool
	n   int
}

// Count returns a set FlexCount.
func Count(n int) FlexCount { return FlexCount{set: true, n: n} }

func (c *FlexCount) UnmarshalJSON(data []byte) error {
	*c = FlexCount{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if json.Unmarshal(data, &s) != nil {
			return nil
		}
		m := digitRun.FindString(s)
		if m == "" {
			return nil
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return nil
		}
		c.set, c.n = true, n
		return nil
	}
	var f float64
	if json.Unmarshal(data, &f) != nil {
		return nil
	}
	c.set, c.n = true, int(f)
	return nil
}

func (c FlexCount) MarshalJSON() ([]byte, error) {
	if !c.set {
		return []byte("null"), nil
	}
	return json.Marshal(c.n)
}

// Value returns the count, or def when none was provided.
func (c FlexCount) Value(def int) int {
	if !c.set {
		return def
	}
	return c.n
}

// Positive returns the count only when it was provided and greater than
// zero.
func (c FlexCount) Positive() (int, bool) {
	if !c.set || c.n <= 0 {
		return 0, false
	}
	return c.n, true
}

// FlexFloat is a numeric field that tracks how it arrived: JSON number,
// numeric string, or something else. Compliance checks require the strict
// number kind; display code can take any parseable value.
type FlexFloat struct {
	kind valueKind
	num  float64
	raw  json.RawMessage
}

// Float returns a FlexFloat holding a JSON number.
func Float(n float64) FlexFloat { return FlexFloat{kind: kindNumber, num: n} }

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if json.Unmarshal(data, &s) != nil {
			return nil
		}
		f.kind = kindString
		f.num = ParsePrice(s)
		f.raw = append(json.RawMessage(nil), data...)
		return nil
	}
	var n float64
	if json.Unmarshal(data, &n) == nil {
		f.kind = kindNumber
		f.num = n
		return nil
	}
	f.kind = kindOther
	f.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	switch f.kind {
	case kindNumber:
		return json.Marshal(f.num)
	case kindString, kindOther:
		if len(f.raw) > 0 {
			return f.raw, nil
		}
	}
	return []byte("null"), nil
}

// IsSet reports whether any value was present, whatever its kind.
func (f FlexFloat) IsSet() bool { return f.kind != kindNone }

// Number returns the value only when it arrived as a JSON number.
func (f FlexFloat) Number() (float64, bool) {
	if f.kind != kindNumber {
		return 0, false
	}
	return f.num, true
}

// Value returns the number or parsed numeric string, or def otherwise.
func (f FlexFloat) Value(def float64) float64 {
	switch f.kind {
	case kindNumber, kindString:
		return f.num
	}
	return def
}

// FlexBool is a boolean that may arrive as true/false, "true"/"yes", or a
// number. Decoding never fails; the strict kind is kept for validation.
type FlexBool struct {
	kind valueKind
	val  bool
}

// Bool returns a FlexBool holding a JSON boolean.
func Bool(v bool) FlexBool { return FlexBool{kind: kindBool, val: v} }

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	*b = FlexBool{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	switch data[0] {
	case 't', 'f':
		var v bool
		if json.Unmarshal(data, &v) != nil {
			b.kind = kindOther
			return nil
		}
		b.kind = kindBool
		b.val = v
	case '"':
		var s string
		if json.Unmarshal(data, &s) != nil {
			b.kind = kindOther
			return nil
		}
		b.kind = kindString
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "1":
			b.val = true
		}
	default:
		var n float64
		if json.Unmarshal(data, &n) != nil {
			b.kind = kindOther
			return nil
		}
		b.kind = kindNumber
		b.val = n != 0
	}
	return nil
}

func (b FlexBool) MarshalJSON() ([]byte, error) {
	if b.kind == kindNone {
		return []byte("null"), nil
	}
	return json.Marshal(b.val)
}

// Strict returns the value only when it arrived as a JSON boolean.
func (b FlexBool) Strict() (bool, bool) {
	if b.kind != kindBool {
		return false, false
	}
	return b.val, true
}

// Truthy reports the value under loose coercion, false when absent.
func (b FlexBool) Truthy() bool {
	return (b.kind == kindBool || b.kind == kindString || b.kind == kindNumber) && b.val
}

// FlexString is a text field that may arrive as a string or a number,
// such as a hotel id from a booking API.
type FlexString struct {
	set bool
	s   string
}

// Text returns a set FlexString.
func Text(s string) FlexString { return FlexString{set: true, s: s} }

func (x *FlexString) UnmarshalJSON(data []byte) error {
	*x = FlexString{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if json.Unmarshal(data, &s) != nil {
			return nil
		}
		x.set, x.s = true, s
	case '{', '[', 't', 'f':
		return nil
	default:
		var n float64
		if json.Unmarshal(data, &n) != nil {
			return nil
		}
		x.set, x.s = true, strconv.FormatFloat(n, 'f', -1, 64)
	}
	return nil
}

func (x FlexString) MarshalJSON() ([]byte, error) {
	if !x.set {
		return []byte("null"), nil
	}
	return json.Marshal(x.s)
}

// IsSet reports whether a value was present.
func (x FlexString) IsSet() bool { return x.set }

func (x FlexString) String() string { return x.s }

// StringList is a list field that tolerates sloppy shapes: an array with
// mixed element types, a single bare string, or junk. Presence is tracked
// separately from contents so validators can tell "absent" from "empty".
type StringList struct {
	present bool
	items   []string
}

// Strings returns a present StringList with the given items.
func Strings(items ...string) StringList { return StringList{present: true, items: items} }

func (l *StringList) UnmarshalJSON(data []byte) error {
	*l = StringList{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	l.present = true
	switch data[0] {
	case '"':
		var s string
		if json.Unmarshal(data, &s) == nil && strings.TrimSpace(s) != "" {
			l.items = []string{s}
		}
	case '[':
		var raw []json.RawMessage
		if json.Unmarshal(data, &raw) != nil {
			return nil
		}
		for _, r := range raw {
			r = bytes.TrimSpace(r)
			if len(r) == 0 || string(r) == "null" {
				continue
			}
			if r[0] == '"' {
				var s string
				if json.Unmarshal(r, &s) == nil {
					l.items = append(l.items, s)
				}
				continue
			}
			l.items = append(l.items, string(r))
		}
	}
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if !l.present {
		return []byte("null"), nil
	}
	if l.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.items)
}

// Present reports whether the field appeared at all.
func (l StringList) Present() bool { return l.present }

// Items returns the collected strings.
func (l StringList) Items() []string { return l.items }

// ─── Trip records ────────────────────────────────────────────────────────────

// Trip is a full trip record: what the user asked for, what the AI
// produced, and any verified search data fetched alongside it. Verified
// data takes precedence over the AI's estimates during cost computation.
type Trip struct {
	ID             string        `json:"id,omitempty"`
	UserSelection  UserSelection `json:"userSelection"`
	TripData       TripData      `json:"tripData"`
	RealHotelData  *HotelData    `json:"realHotelData,omitempty"`
	RealFlightData *FlightData   `json:"realFlightData,omitempty"`
}

// UserSelection is the user's request: where, when, how many people, and
// how much they intend to spend.
type UserSelection struct {
	Destination  string     `json:"destination"`
	Origin       string     `json:"origin,omitempty"`
	StartDate    string     `json:"startDate,omitempty"`
	NoOfDays     FlexCount  `json:"noOfDays"`
	Travelers    FlexCount  `json:"travelers"`
	Budget       PriceValue `json:"budget"`
	CustomBudget PriceValue `json:"customBudget"`
}

// TripData is the AI-generated trip payload. It may arrive as a JSON
// object or as a JSON-encoded string, often fenced or truncated; decoding
// is tolerant in both cases and never fails.
type TripData struct {
	Itinerary        DayList           `json:"itinerary,omitempty"`
	ItineraryData    DayList           `json:"itinerary_data,omitempty"`
	Hotels           HotelList         `json:"hotels,omitempty"`
	Flights          FlightList        `json:"flights,omitempty"`
	TotalCost        PriceValue        `json:"total_cost"`
	GroundTransport  PriceValue        `json:"ground_transport"`
	Transportation   *Transportation   `json:"transportation,omitempty"`
	BudgetCompliance *BudgetCompliance `json:"budgetCompliance,omitempty"`
	DailyCosts       DailyCostList     `json:"dailyCosts,omitempty"`
	MissingPrices    StringList        `json:"missingPrices"`
	PricingNotes     FlexString        `json:"pricingNotes"`
	GrandTotal       FlexFloat         `json:"grandTotal"`
}

// DayList, HotelList, FlightList and DailyCostList accept a JSON array, a
// JSON-encoded string containing one, or junk; see normalize.go.
type (
	DayList       []Day
	HotelList     []Hotel
	FlightList    []Flight
	DailyCostList []DailyCost
)

// Day is one itinerary day: either a structured activity list or, for
// legacy payloads, a flattened pipe-separated plan string.
type Day struct {
	Label      string
	Theme      string
	Activities []Activity
	PlanText   string
}

// Activity is one itinerary stop.
type Activity struct {
	PlaceName        string     `json:"placeName"`
	PlaceDetails     string     `json:"placeDetails,omitempty"`
	TicketPrice      PriceValue `json:"ticketPrice"`
	TravelTimeToNext string     `json:"travelTimeToNext,omitempty"`
	BestTimeToVisit  string     `json:"bestTimeToVisit,omitempty"`
}

// Hotel is one lodging candidate, AI-estimated or verified.
type Hotel struct {
	HotelName     string     `json:"hotelName"`
	HotelAddress  string     `json:"hotelAddress,omitempty"`
	PricePerNight PriceValue `json:"pricePerNight"`
	PriceRange    PriceValue `json:"price_range"`
	Price         PriceValue `json:"price"`
	Rating        FlexFloat  `json:"rating"`
	ReviewCount   FlexCount  `json:"reviewCount"`
	HotelID       FlexString `json:"hotelId"`
	PricingType   string     `json:"pricingType,omitempty"`
	Confidence    FlexFloat  `json:"confidence"`
	Verified      FlexBool   `json:"verified"`
	BookingLink   string     `json:"bookingLink,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	Description   string     `json:"description,omitempty"`
}

// Flight is one flight candidate. The price fields are deliberately
// redundant: upstream systems disagree about which one they fill in, and
// the reconciler picks one by priority.
type Flight struct {
	Airline           string     `json:"airline"`
	FlightNumber      string     `json:"flightNumber,omitempty"`
	DepartureTime     string     `json:"departureTime,omitempty"`
	ArrivalTime       string     `json:"arrivalTime,omitempty"`
	Duration          string     `json:"duration,omitempty"`
	Stops             FlexCount  `json:"stops"`
	Price             PriceValue `json:"price"`
	TotalPriceNumeric PriceValue `json:"total_price_numeric"`
	TotalPrice        PriceValue `json:"total_price"`
	PricePerPerson    PriceValue `json:"price_per_person"`
	Travelers         FlexCount  `json:"travelers"`
	Passengers        FlexCount  `json:"passengers"`
	BookingLink       string     `json:"bookingLink,omitempty"`
	Verified          FlexBool   `json:"verified"`
}

// Transportation is the optional ground-transport block of the AI payload.
type Transportation struct {
	Mode      string     `json:"mode,omitempty"`
	Details   string     `json:"details,omitempty"`
	CostRange *CostRange `json:"cost_range,omitempty"`
}

// CostRange is a min/max peso range.
type CostRange struct {
	Min PriceValue `json:"min"`
	Max PriceValue `json:"max"`
}

// Mid returns the midpoint of the range.
func (r CostRange) Mid() float64 {
	return (r.Min.Amount() + r.Max.Amount()) / 2
}

// HotelData wraps hotels fetched from the travel-search service.
type HotelData struct {
	Hotels HotelList `json:"hotels"`
	Source string    `json:"source,omitempty"`
}

// FlightData wraps flights fetched from the travel-search service.
type FlightData struct {
	Flights FlightList `json:"flights"`
	Source  string     `json:"source,omitempty"`
}

// ─── Declared compliance ─────────────────────────────────────────────────────

// BudgetCompliance is the AI's self-declared budget check.
type BudgetCompliance struct {
	TotalCost    FlexFloat `json:"totalCost"`
	UserBudget   FlexFloat `json:"userBudget"`
	WithinBudget FlexBool  `json:"withinBudget"`
}

// DailyCost is one day of the AI's declared cost plan.
type DailyCost struct {
	Day       FlexCount     `json:"day"`
	Breakdown *DayBreakdown `json:"breakdown"`
}

// DayBreakdown is the four named cost buckets of a day plus the declared
// subtotal.
type DayBreakdown struct {
	Accommodation FlexFloat `json:"accommodation"`
	Meals         FlexFloat `json:"meals"`
	Activities    FlexFloat `json:"activities"`
	Transport     FlexFloat `json:"transport"`
	Subtotal      FlexFloat `json:"subtotal"`
}

// ─── Engine outputs ──────────────────────────────────────────────────────────

// Breakdown is the itemized cost estimate in pesos.
type Breakdown struct {
	Activities      float64 `json:"activities"`
	Hotels          float64 `json:"hotels"`
	Flights         float64 `json:"flights"`
	GroundTransport float64 `json:"groundTransport"`
}

// Estimate is the aggregator's result: the total, its itemization, and
// any data-quality warnings collected while computing it.
type Estimate struct {
	Total     float64   `json:"total"`
	Breakdown Breakdown `json:"breakdown"`
	Warnings  []string  `json:"warnings,omitempty"`
}

// ComplianceResult is the validator's verdict on the AI's declared
// numbers. Warnings never affect validity.
type ComplianceResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// RankedHotel is a hotel with its computed value score and display badges.
type RankedHotel struct {
	Hotel
	Nightly      float64  `json:"nightlyPrice"`
	ValueScore   float64  `json:"valueScore"`
	WithinBudget bool     `json:"withinBudget"`
	Badges       []string `json:"badges,omitempty"`
}
