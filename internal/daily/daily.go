// Package daily deterministically derives the day's puzzle target from a
// (category, date) pair. Every client evaluating the same pair picks the
// same entity with no server round-trip. The hash, PRNG, and sort order
// together define the selection; changing any of them changes every future
// daily puzzle and is a versioned break.
package daily

import (
	"fmt"
	"math"
	"sort"
	"time"

	"scalar/internal/catalog"
)

// Puzzle #1 lands on launch day, the day after this epoch.
const epochDate = "2026-02-25"

const dateLayout = "2006-01-02"

// hashString is a polynomial rolling hash over the input bytes, truncated
// to unsigned 32 bits.
func hashString(s string) uint32 {
	var hash uint32
	for i := 0; i < len(s); i++ {
		hash = hash*31 + uint32(s[i])
	}
	return hash
}

// mulberry32 is a tiny deterministic PRNG: 32-bit state, xorshift-multiply
// mixing, output uniform in [0, 1).
func mulberry32(seed uint32) func() float64 {
	state := seed
	return func() float64 {
		state += 0x6D2B79F5
		t := state
		t = (t ^ (t >> 15)) * (t | 1)
		t ^= t + (t^(t>>7))*(t|61)
		return float64(t^(t>>14)) / 4294967296
	}
}

// Select picks the daily target for a category. Entities are sorted by id
// before selection so the result is stable even if the source data order
// changes. An empty list degrades to the placeholder entity.
func Select(category string, entities []catalog.Entity, date string) catalog.Entity {
	if len(entities) == 0 {
		return catalog.Placeholder()
	}

	seed := hashString(date + ":" + category)
	rand := mulberry32(seed)

	sorted := make([]catalog.Entity, len(entities))
	copy(sorted, entities)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	index := int(rand() * float64(len(sorted)))
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}

// PuzzleNumber returns the 1-indexed sequential number for a date string.
// Local calendar arithmetic, not UTC-millisecond subtraction, so the count
// never skews across daylight-saving transitions.
func PuzzleNumber(date string) int {
	epoch, err := time.ParseInLocation(dateLayout, epochDate, time.Local)
	if err != nil {
		return 0
	}
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return 0
	}
	return int(math.Round(day.Sub(epoch).Hours() / 24))
}

// LocalDateString formats a moment as YYYY-MM-DD in its own location.
func LocalDateString(now time.Time) string {
	return now.Format(dateLayout)
}

// Today is LocalDateString for the current wall clock.
func Today() string {
	return LocalDateString(time.Now())
}

// Yesterday returns the previous calendar day for a YYYY-MM-DD string.
func Yesterday(date string) string {
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return ""
	}
	return day.AddDate(0, 0, -1).Format(dateLayout)
}

// DateLabel converts "2026-02-26" to "2/26" for share-text headers.
func DateLabel(date string) string {
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d/%d", int(day.Month()), day.Day())
}

// ToggleDateLabel converts "2026-02-26" to "Feb 26" for mode toggles.
func ToggleDateLabel(date string) string {
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s %d", day.Month().String()[:3], day.Day())
}
