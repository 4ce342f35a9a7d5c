package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// minPlausibleAmount is the floor price for IDR receipts. Anything smaller is
// almost always a misread date, fraction, or quantity rather than a price.
const minPlausibleAmount = 500

var currencyMarkers = regexp.MustCompile(`(?i)rp\.?|idr`)

// NormalizeAmount converts a raw numeric-looking substring into a rupiah
// amount, applying the Indonesian convention where '.' groups thousands and
// ',' introduces decimals. It returns 0 when the text cannot be read as a
// plausible amount; callers treat 0 as absent.
func NormalizeAmount(raw string) float64 {
	cleaned := currencyMarkers.ReplaceAllString(raw, "")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimSuffix(cleaned, ".-")
	cleaned = strings.TrimSuffix(cleaned, ",-")

	// Keep only digits and separators
	cleaned = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			return r
		}
		return -1
	}, cleaned)

	if cleaned == "" {
		return 0
	}

	// Explicit zero-cents marker: 50.000,00 / 50.000.00 -> 50.000
	cleaned = strings.TrimSuffix(cleaned, ",00")
	cleaned = strings.TrimSuffix(cleaned, ".00")

	if i := strings.LastIndex(cleaned, "."); i != -1 && len(cleaned)-i-1 == 2 && !strings.Contains(cleaned, ",") {
		// A dot followed by exactly two digits is a decimal point, not a
		// thousands group. This keeps misread dates like "20.25" below the
		// plausibility floor instead of inflating them to 2025.
		cleaned = strings.ReplaceAll(cleaned[:i], ".", "") + "." + cleaned[i+1:]
	} else {
		// Remaining dots are thousands separators, a remaining comma is the
		// decimal separator: 1.250.000 -> 1250000, 7.500,5 -> 7500.5
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}

	if value < minPlausibleAmount {
		return 0
	}

	return value
}
