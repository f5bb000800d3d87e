// Package format holds the pure string-formatting helpers shared by the
// feedback engine and anything that renders its output. Every function here
// is stateless: identical inputs always produce identical strings.
package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DistanceUnit selects the display unit for distances. It is always passed
// explicitly; there is no ambient unit toggle.
type DistanceUnit string

const (
	UnitKm DistanceUnit = "km"
	UnitMi DistanceUnit = "mi"
)

const kmToMiles = 0.621371

// sq km -> sq miles, 0.621371 squared
const sqKmToSqMiles = 0.386102

var yearLikeRe = regexp.MustCompile(`(?i)year|discovered`)

// YearLike reports whether a field label names a year-style attribute
// (e.g. "Year Founded", "Discovered"). Year-like values are never suffixed
// and a raw 0 reads as "Ancient".
func YearLike(label string) bool {
	return yearLikeRe.MatchString(label)
}

type suffix struct {
	value  float64
	symbol string
}

var suffixes = []suffix{
	{1e18, "E"},
	{1e15, "P"},
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "k"},
	{1, ""},
}

// FormatNumber renders a number with k/M/B/T/P/E suffixes, keeping at most
// digits decimals and trimming trailing zeros. When label is year-like,
// values in the plausible year range are printed verbatim and 0 becomes
// "Ancient".
func FormatNumber(num float64, digits int, label string) string {
	if label != "" && YearLike(label) {
		if num == 0 {
			return "Ancient"
		}
		maxYear := float64(time.Now().Year() + 10)
		if num >= 1000 && num <= maxYear {
			return strconv.Itoa(int(num))
		}
	}

	abs := math.Abs(num)
	sign := ""
	if num < 0 {
		sign = "-"
	}
	for _, s := range suffixes {
		if abs >= s.value {
			formatted := strconv.FormatFloat(abs/s.value, 'f', digits, 64)
			if strings.Contains(formatted, ".") {
				formatted = strings.TrimRight(formatted, "0")
				formatted = strings.TrimRight(formatted, ".")
			}
			return sign + formatted + s.symbol
		}
	}
	return "0"
}

// FormatDistance renders a distance in kilometers.
func FormatDistance(km int) string {
	if km == 0 {
		return "0 km"
	}
	if km < 1000 {
		return fmt.Sprintf("%d km", km)
	}
	return FormatNumber(float64(km), 1, "") + " km"
}

// FormatDistanceInUnit renders a distance in the requested unit.
func FormatDistanceInUnit(km int, unit DistanceUnit) string {
	if unit != UnitMi {
		return FormatDistance(km)
	}
	miles := float64(km) * kmToMiles
	if miles == 0 {
		return "0 mi"
	}
	if miles < 1000 {
		return fmt.Sprintf("%d mi", int(math.Round(miles)))
	}
	return FormatNumber(miles, 1, "") + " mi"
}

// FormatAreaInUnit renders an area given in square kilometers.
func FormatAreaInUnit(sqKm float64, unit DistanceUnit) string {
	if unit == UnitMi {
		return FormatNumber(sqKm*sqKmToSqMiles, 1, "")
	}
	return FormatNumber(sqKm, 1, "")
}

// PercentDiffTier maps a symmetric percent difference to an approximate tier
// label. percentDiff comes from (max/min - 1) * 100, so it is always >= 0 and
// reads the same whichever direction the miss is in.
//
// Tier thresholds by effective ratio:
//
//	ratio < 1.15 -> "~10%"    ratio < 3  -> "~2x tier"
//	ratio < 1.37 -> "~25%"    ratio < 7  -> "~5x tier"
//	ratio < 1.75 -> "~50%"    and so on up to "~100x"
func PercentDiffTier(percentDiff int) string {
	if percentDiff == 0 {
		return "Exact"
	}
	ratio := float64(percentDiff)/100 + 1
	switch {
	case ratio < 1.15:
		return "~10%"
	case ratio < 1.37:
		return "~25%"
	case ratio < 1.75:
		return "~50%"
	case ratio < 3:
		return "~2×"
	case ratio < 7:
		return "~5×"
	case ratio < 15:
		return "~10×"
	case ratio < 60:
		return "~50×"
	default:
		return "~100×"
	}
}

// YearDiffTier maps an absolute year difference to a readable range label.
func YearDiffTier(absDiff int) string {
	switch {
	case absDiff == 0:
		return "Exact"
	case absDiff <= 5:
		return "~5 yrs"
	case absDiff <= 15:
		return "~15 yrs"
	case absDiff <= 30:
		return "~30 yrs"
	default:
		return "30+ yrs"
	}
}

// DirectionSymbol returns the vertical arrow for a feedback direction
// ("UP", "DOWN"); other directions render as empty.
func DirectionSymbol(direction string) string {
	switch direction {
	case "UP":
		return "↑"
	case "DOWN":
		return "↓"
	default:
		return ""
	}
}

// AlphaDirectionSymbol returns the horizontal arrow used by alphabetic
// position fields. UP (target later in the alphabet) points right, DOWN
// points left.
func AlphaDirectionSymbol(direction string) string {
	switch direction {
	case "UP":
		return "→"
	case "DOWN":
		return "←"
	default:
		return ""
	}
}

// NumberToLetter converts a 1-26 integer to its A-Z letter. Out-of-range
// values are printed as plain numbers.
func NumberToLetter(num int) string {
	if num >= 1 && num <= 26 {
		return string(rune('A' + num - 1))
	}
	return strconv.Itoa(num)
}

var conservationStatuses = map[string]string{
	"LC": "Least Concern",
	"NT": "Near Threatened",
	"VU": "Vulnerable",
	"EN": "Endangered",
	"CR": "Critically Endangered",
	"EW": "Extinct in Wild",
	"EX": "Extinct",
	"NE": "Not Evaluated",
	"DD": "Data Deficient",
}

// ExpandConservationStatus expands an IUCN status code to its full label,
// returning the input unchanged when the code is unknown.
func ExpandConservationStatus(code string) string {
	if label, ok := conservationStatuses[strings.ToUpper(code)]; ok {
		return label
	}
	return code
}
