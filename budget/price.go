package budget

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// priceRange matches "₱1,000 - ₱2,000", "1500-2500", "P500 to P800".
	priceRange = regexp.MustCompile(`(?:₱|php|\$|p)?\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(?:-|–|to)\s*(?:₱|php|\$|p)?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)

	leadingNumber = regexp.MustCompile(`^-?[0-9]*\.?[0-9]+`)
)

// ParsePrice turns any price-like value into a peso amount. It is total:
// nil yields 0, numbers pass through (non-finite becomes 0), strings are
// parsed with currency symbols and thousands separators stripped, ranges
// resolve to their arithmetic mean, "Free" and "N/A" mean 0, and anything
// unparsable is 0. It never panics.
func ParsePrice(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		return parsePriceText(n)
	case PriceValue:
		return n.Amount()
	}
	return 0
}

func parsePriceText(s string) float64 {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		return 0
	}
	if strings.Contains(lower, "free") || strings.Contains(lower, "n/a") {
		return 0
	}
	if m := priceRange.FindStringSubmatch(lower); m != nil {
		return (plainFloat(m[1]) + plainFloat(m[2])) / 2
	}
	return singleAmount(lower)
}

// singleAmount parses one price out of lower-cased text: currency markers,
// separators and whitespace are stripped, anything after a stray dash is
// dropped, and the leading number is taken the way a loose float parse
// would.
func singleAmount(s string) float64 {
	s = strings.Join(strings.Fields(s), "")
	s = strings.NewReplacer("₱", "", "php", "", "$", "", ",", "").Replace(s)
	if len(s) > 1 && s[0] == 'p' && s[1] >= '0' && s[1] <= '9' {
		s = s[1:]
	}
	if i := strings.IndexAny(s, "-–"); i > 0 {
		s = s[:i]
	}
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0
	}
	return plainFloat(m)
}

func plainFloat(s string) float64 {
	n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return finite(n)
}

func finite(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// FormatPHP renders an amount like PHP 12,345 for surfaces that cannot
// print the peso sign, such as the PDF report's cp1252 fonts.
func FormatPHP(n float64) string {
	return strings.Replace(formatPeso(n), "₱", "PHP ", 1)
}

// formatPeso renders an amount like ₱12,345 or ₱12,345.50 for warnings
// and reports.
func formatPeso(n float64) string {
	n = math.Round(n*100) / 100
	neg := n < 0
	if neg {
		n = -n
	}
	whole := int64(n)
	frac := n - float64(whole)
	s := strconv.FormatInt(whole, 10)
	if len(s) > 3 {
		var b strings.Builder
		pre := len(s) % 3
		if pre > 0 {
			b.WriteString(s[:pre])
		}
		for i := pre; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if frac > 0 {
		s += strconv.FormatFloat(frac, 'f', 2, 64)[1:]
	}
	if neg {
		return "-₱" + s
	}
	return "₱" + s
}
