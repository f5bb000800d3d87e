// Package session owns the state of in-progress games: one slot per
// (mode, category), plus the per-category daily streak. Slots persist
// through the store as guess ids only; feedback is recomputed on load
// since the engine is deterministic.
package session

import (
	"scalar/internal/catalog"
	"scalar/internal/engine"
	"scalar/internal/store"
)

const (
	ModeDaily    = "daily"
	ModeFreeplay = "freeplay"
)

const (
	StatusPlaying  = "PLAYING"
	StatusSolved   = "SOLVED"
	StatusRevealed = "REVEALED"
)

// GuessResult pairs a guessed entity with its computed feedback.
type GuessResult struct {
	Guess    catalog.Entity             `json:"guess"`
	Feedback map[string]engine.Feedback `json:"feedback"`
}

// Slot is one in-progress game.
type Slot struct {
	Mode      string
	Category  string
	Target    catalog.Entity
	Guesses   []GuessResult
	Status    string
	Moves     int
	Credits   int
	HintKeys  []string
	DailyDate string
}

func (s *Slot) record() store.SlotRecord {
	guessIDs := make([]string, 0, len(s.Guesses))
	for _, g := range s.Guesses {
		guessIDs = append(guessIDs, g.Guess.ID)
	}
	return store.SlotRecord{
		Mode:      s.Mode,
		Category:  s.Category,
		TargetID:  s.Target.ID,
		GuessIDs:  guessIDs,
		Status:    s.Status,
		Moves:     s.Moves,
		Credits:   s.Credits,
		HintKeys:  s.HintKeys,
		DailyDate: s.DailyDate,
	}
}

func (s *Slot) hintRevealed(key string) bool {
	for _, k := range s.HintKeys {
		if k == key {
			return true
		}
	}
	return false
}
