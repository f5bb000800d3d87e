package main

import (
	"fmt"
	"io"
	"strings"

	"scalar/internal/config"
	"scalar/internal/engine"
	"scalar/internal/format"
	"scalar/internal/session"
)

func statusMarker(status engine.Status) string {
	switch status {
	case engine.StatusExact:
		return "[EXACT]"
	case engine.StatusHot:
		return "[HOT]  "
	case engine.StatusNear:
		return "[NEAR] "
	default:
		return "[MISS] "
	}
}

// renderGuess prints one guess row: the entity name followed by a line per
// visible compared field.
func renderGuess(out io.Writer, category *config.Category, result session.GuessResult, unit format.DistanceUnit) {
	fmt.Fprintf(out, "%s\n", result.Guess.Name)
	for _, field := range category.Fields {
		if !field.Compared() || field.DisplayFormat == config.DisplayHidden {
			continue
		}
		feedback, ok := result.Feedback[field.Key]
		if !ok {
			continue
		}

		display := feedback.DisplayValue
		if field.LogicType == config.LogicGeoDistance && feedback.DistanceKm != nil {
			display = format.FormatDistanceInUnit(*feedback.DistanceKm, unit)
		}
		if display == "" {
			display = fmt.Sprintf("%v", feedback.Value)
		}
		fmt.Fprintf(out, "  %s %-14s %s\n", statusMarker(feedback.Status), field.Label, display)
	}
}

func renderSlot(out io.Writer, category *config.Category, slot *session.Slot, unit format.DistanceUnit) {
	for _, guess := range slot.Guesses {
		renderGuess(out, category, guess, unit)
	}
	fmt.Fprintf(out, "Moves: %d  Credits: %d  Status: %s\n", slot.Moves, slot.Credits, slot.Status)
	if slot.Status != session.StatusPlaying {
		fmt.Fprintf(out, "Answer: %s\n", slot.Target.Name)
	}
}

func renderRank(out io.Writer, slot *session.Slot, par int) {
	if slot.Status != session.StatusSolved {
		return
	}
	rank := engine.Rank(slot.Moves, par)
	fmt.Fprintf(out, "Solved in %d moves: %s (%s)\n", slot.Moves, rank.Rank, rank.Label)
}

func modeFlagValue(daily bool) string {
	if daily {
		return session.ModeDaily
	}
	return session.ModeFreeplay
}

func joinNames(categories []string) string {
	return strings.Join(categories, ", ")
}

func guessFeedback(slot *session.Slot) []map[string]engine.Feedback {
	rows := make([]map[string]engine.Feedback, 0, len(slot.Guesses))
	for _, guess := range slot.Guesses {
		rows = append(rows, guess.Feedback)
	}
	return rows
}
