// Package engine computes per-attribute comparison feedback between a
// target entity and a guess. Everything in here is pure: the same
// (target, guess, fields) input always yields the same output, and no
// strategy ever fails on malformed data; it degrades to MISS instead.
package engine

import (
	"fmt"
	"math"
	"strings"

	"scalar/internal/catalog"
	"scalar/internal/config"
	"scalar/internal/format"
	"scalar/internal/geo"
)

type Direction string

const (
	DirectionUp    Direction = "UP"
	DirectionDown  Direction = "DOWN"
	DirectionEqual Direction = "EQUAL"
	DirectionNone  Direction = "NONE"
)

type Status string

const (
	StatusExact Status = "EXACT"
	StatusHot   Status = "HOT"
	StatusNear  Status = "NEAR"
	StatusMiss  Status = "MISS"
)

// farAway stands in for the distance when either entity has no usable
// coordinates. Large enough to land in the coldest tier of every ladder.
const farAway = 99999

// hotPercentDiff is the fallback closeness threshold for HIGHER_LOWER
// fields that have no linked category column.
const hotPercentDiff = 25

// MatchedItem is one guess-side list element with its match flag, casing
// preserved so renderers can highlight individual terms.
type MatchedItem struct {
	Text    string `json:"text"`
	IsMatch bool   `json:"isMatch"`
}

// Feedback is the comparison result for one attribute of one guess.
type Feedback struct {
	Direction      Direction     `json:"direction"`
	Status         Status        `json:"status"`
	Value          any           `json:"value"`
	DisplayValue   string        `json:"displayValue,omitempty"`
	DistanceKm     *int          `json:"distanceKm,omitempty"`
	PercentageDiff *int          `json:"percentageDiff,omitempty"`
	CategoryMatch  *bool         `json:"categoryMatch,omitempty"`
	MatchedItems   []MatchedItem `json:"matchedItems,omitempty"`
}

// Compute produces exactly one Feedback record per compared field, keyed by
// attribute key. TARGET and NONE fields are skipped.
func Compute(target, guess catalog.Entity, fields []config.Field) map[string]Feedback {
	result := make(map[string]Feedback)

	// Distance is shared by GEO_DISTANCE and DISTANCE_GRADIENT fields.
	distKm := entityDistance(target, guess)

	for _, field := range fields {
		if !field.Compared() {
			continue
		}

		var feedback Feedback
		switch field.LogicType {
		case config.LogicExactMatch:
			feedback = exactMatch(target, guess, field)
		case config.LogicCategoryMatch:
			feedback = categoryMatch(target, guess, field, distKm)
		case config.LogicHigherLower:
			feedback = higherLower(target, guess, field)
		case config.LogicGeoDistance:
			feedback = geoDistance(distKm)
		case config.LogicSetIntersection:
			feedback = setIntersection(target, guess, field)
		default:
			feedback = Feedback{
				Direction: DirectionNone,
				Status:    StatusMiss,
				Value:     rawValue(guess, field),
			}
		}

		result[field.Key] = feedback
	}

	return result
}

// Solved is the win predicate: every feedback record is EXACT.
func Solved(feedback map[string]Feedback) bool {
	for _, f := range feedback {
		if f.Status != StatusExact {
			return false
		}
	}
	return true
}

func rawValue(guess catalog.Entity, field config.Field) any {
	if v := guess.Value(field.Key); v != nil {
		return v
	}
	return ""
}

func exactMatch(target, guess catalog.Entity, field config.Field) Feedback {
	if field.DataType == config.DataBoolean {
		targetBool := target.Bool(field.Key)
		guessBool := guess.Bool(field.Key)
		status := StatusMiss
		if targetBool == guessBool {
			status = StatusExact
		}
		value := "No"
		if guessBool {
			value = "Yes"
		}
		return Feedback{Direction: DirectionNone, Status: status, Value: value}
	}

	status := StatusMiss
	if strings.EqualFold(target.Text(field.Key), guess.Text(field.Key)) {
		status = StatusExact
	}
	return Feedback{Direction: DirectionNone, Status: status, Value: rawValue(guess, field)}
}

func categoryMatch(target, guess catalog.Entity, field config.Field, distKm int) Feedback {
	status := StatusMiss
	if strings.EqualFold(target.Text(field.Key), guess.Text(field.Key)) {
		status = StatusExact
	}

	feedback := Feedback{Direction: DirectionNone, Status: status, Value: rawValue(guess, field)}

	// Renderers with a distance gradient need the distance even though the
	// match itself is binary.
	if field.UIColorLogic == config.ColorDistanceGradient {
		feedback.DistanceKm = intPtr(distKm)
	}

	return feedback
}

func higherLower(target, guess catalog.Entity, field config.Field) Feedback {
	targetNum, targetOK := target.Number(field.Key)
	guessNum, guessOK := guess.Number(field.Key)
	if !targetOK || !guessOK {
		return Feedback{
			Direction:    DirectionNone,
			Status:       StatusMiss,
			Value:        rawValue(guess, field),
			DisplayValue: "N/A",
		}
	}

	direction := DirectionEqual
	if guessNum < targetNum {
		direction = DirectionUp
	} else if guessNum > targetNum {
		direction = DirectionDown
	}

	if guessNum == targetNum {
		return Feedback{
			Direction:      DirectionEqual,
			Status:         StatusExact,
			Value:          guessNum,
			DisplayValue:   "Exact",
			PercentageDiff: intPtr(0),
			CategoryMatch:  boolPtr(true),
		}
	}

	percentDiff := symmetricPercentDiff(targetNum, guessNum)

	var catMatch bool
	if field.LinkedCategoryCol != "" {
		catMatch = strings.EqualFold(target.Text(field.LinkedCategoryCol), guess.Text(field.LinkedCategoryCol))
	} else {
		catMatch = percentDiff <= hotPercentDiff
	}

	status := StatusMiss
	if catMatch {
		status = StatusHot
	}

	return Feedback{
		Direction:      direction,
		Status:         status,
		Value:          guessNum,
		DisplayValue:   higherLowerDisplay(field, direction, targetNum, guessNum, percentDiff),
		PercentageDiff: intPtr(percentDiff),
		CategoryMatch:  boolPtr(catMatch),
	}
}

// symmetricPercentDiff measures how far apart two values are as a ratio of
// the larger to the smaller, expressed in percent. A guess 10x too high and
// a guess 10x too low read as the same magnitude, unlike a signed
// (guess-target)/target ratio, which saturates at -100% on the low side.
func symmetricPercentDiff(target, guess float64) int {
	absTarget := math.Abs(target)
	absGuess := math.Abs(guess)
	larger := math.Max(absTarget, absGuess)
	smaller := math.Max(math.Min(absTarget, absGuess), 1)
	return int(math.Round((larger/smaller - 1) * 100))
}

func higherLowerDisplay(field config.Field, direction Direction, targetNum, guessNum float64, percentDiff int) string {
	arrow := format.DirectionSymbol(string(direction))

	switch field.DisplayFormat {
	case config.DisplayRelativePercentage:
		// Signed change relative to the guess: ((target - guess) / guess).
		relPct := 0
		if guessNum != 0 {
			relPct = int(math.Round((targetNum - guessNum) / guessNum * 100))
		}
		sign := ""
		if relPct > 0 {
			sign = "+"
		}
		return fmt.Sprintf("%s %s%d%%", arrow, sign, relPct)
	case config.DisplayCurrency:
		return fmt.Sprintf("%s $%s", arrow, format.FormatNumber(guessNum, 1, ""))
	case config.DisplayAlphaPosition:
		return fmt.Sprintf("%s %s", format.AlphaDirectionSymbol(string(direction)), format.NumberToLetter(int(guessNum)))
	case config.DisplayPercentageDiff:
		if format.YearLike(field.Label) {
			absDiff := int(math.Round(math.Abs(targetNum - guessNum)))
			return fmt.Sprintf("%s %s", arrow, format.YearDiffTier(absDiff))
		}
		return fmt.Sprintf("%s %s", arrow, format.PercentDiffTier(percentDiff))
	default:
		return fmt.Sprintf("%s %s", arrow, format.FormatNumber(guessNum, 1, field.Label))
	}
}

func geoDistance(distKm int) Feedback {
	status := StatusMiss
	switch {
	case distKm == 0:
		status = StatusExact
	case distKm < 1000:
		status = StatusHot
	case distKm < 3000:
		status = StatusNear
	}

	return Feedback{
		Direction:    DirectionNone,
		Status:       status,
		Value:        distKm,
		DisplayValue: format.FormatDistance(distKm),
		DistanceKm:   intPtr(distKm),
	}
}

func setIntersection(target, guess catalog.Entity, field config.Field) Feedback {
	targetItems := target.List(field.Key)
	guessItems := guess.List(field.Key)

	targetSet := make(map[string]struct{}, len(targetItems))
	for _, item := range targetItems {
		targetSet[strings.ToLower(item)] = struct{}{}
	}

	union := make(map[string]struct{}, len(targetItems)+len(guessItems))
	for _, item := range targetItems {
		union[strings.ToLower(item)] = struct{}{}
	}

	intersection := 0
	matched := make([]MatchedItem, 0, len(guessItems))
	for _, item := range guessItems {
		lower := strings.ToLower(item)
		union[lower] = struct{}{}
		_, isMatch := targetSet[lower]
		if isMatch {
			intersection++
		}
		matched = append(matched, MatchedItem{Text: item, IsMatch: isMatch})
	}

	status := StatusMiss
	if len(union) > 0 {
		ratio := float64(intersection) / float64(len(union))
		switch {
		case ratio == 1:
			status = StatusExact
		case ratio > 0.5:
			status = StatusHot
		case ratio > 0:
			status = StatusNear
		}
	}

	return Feedback{
		Direction:    DirectionNone,
		Status:       status,
		Value:        rawValue(guess, field),
		DisplayValue: fmt.Sprintf("%d/%d", intersection, len(targetItems)),
		MatchedItems: matched,
	}
}

// entityDistance computes the great-circle distance between two entities,
// or the farAway sentinel when either side lacks coordinates.
func entityDistance(target, guess catalog.Entity) int {
	targetLat, ok1 := target.Number("Latitude")
	targetLon, ok2 := target.Number("Longitude")
	guessLat, ok3 := guess.Number("Latitude")
	guessLon, ok4 := guess.Number("Longitude")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return farAway
	}
	return geo.Distance(guessLat, guessLon, targetLat, targetLon)
}

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}
