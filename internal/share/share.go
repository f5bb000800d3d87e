// Package share builds the Wordle-style share text for finished games and
// the challenge links that let players rematch a freeplay target.
package share

import (
	"fmt"
	"strings"

	"scalar/internal/config"
	"scalar/internal/daily"
	"scalar/internal/engine"
)

// The three location attribute keys that the countries grid merges into a
// single cell. They collapse into one emoji in the share grid so the row
// fits narrow screens without wrapping.
var locationKeys = map[string]struct{}{
	"hemisphere": {},
	"continent":  {},
	"subregion":  {},
}

// maxFullRows is the grid size above which the middle rows are elided.
const maxFullRows = 6

// Options describe the finished game being shared.
type Options struct {
	Daily    bool
	Date     string
	Category string
	Icon     string
	Moves    int
	EntityID string
	BaseURL  string
}

func statusEmoji(status engine.Status) string {
	switch status {
	case engine.StatusExact:
		return "🟩"
	case engine.StatusHot:
		return "🟧"
	case engine.StatusNear:
		return "🟨"
	default:
		return "⬜"
	}
}

// locationEmoji consolidates the merged location cell: all three exact is
// green, a partial match is yellow, none is a miss.
func locationEmoji(feedback map[string]engine.Feedback) string {
	exact := 0
	for key := range locationKeys {
		if f, ok := feedback[key]; ok && f.Status == engine.StatusExact {
			exact++
		}
	}
	switch {
	case exact == 3:
		return "🟩"
	case exact > 0:
		return "🟨"
	default:
		return "⬜"
	}
}

// Text renders the share text: a one-line header, an emoji grid with one
// row per guess, and a link. Daily shares link the bare site so the puzzle
// is not spoiled; freeplay shares embed a challenge token.
func Text(opts Options, guesses []map[string]engine.Feedback, fields []config.Field) string {
	var displayFields []config.Field
	for _, field := range fields {
		if field.DisplayFormat == config.DisplayHidden || field.Folded || !field.Compared() {
			continue
		}
		displayFields = append(displayFields, field)
	}

	icon := opts.Icon
	if icon == "" {
		icon = "🎮"
	}
	categoryName := titleCase(opts.Category)

	var header string
	if opts.Daily {
		header = fmt.Sprintf("SCALAR Daily #%d (%s) • %s %s • %d Moves",
			daily.PuzzleNumber(opts.Date), daily.DateLabel(opts.Date), icon, categoryName, opts.Moves)
	} else {
		header = fmt.Sprintf("SCALAR • %s %s • %d Moves", icon, categoryName, opts.Moves)
	}

	allRows := make([]string, 0, len(guesses))
	for _, feedback := range guesses {
		var row strings.Builder
		locationInserted := false
		for _, field := range displayFields {
			if _, isLocation := locationKeys[strings.ToLower(field.Key)]; isLocation {
				if !locationInserted {
					row.WriteString(locationEmoji(feedback))
					locationInserted = true
				}
				continue
			}
			row.WriteString(statusEmoji(feedback[field.Key].Status))
		}
		allRows = append(allRows, row.String())
	}

	rows := allRows
	if len(allRows) > maxFullRows {
		rows = append(append([]string{}, allRows[:3]...), "...", allRows[len(allRows)-1])
	}

	url := opts.BaseURL
	if !opts.Daily {
		url = opts.BaseURL + "?challenge=" + EncodeChallenge(opts.Category, opts.EntityID, opts.Moves)
	}

	lines := append([]string{header}, rows...)
	lines = append(lines, url)
	return strings.Join(lines, "\n")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
