package store

import "time"

// SlotRecord is a persisted in-progress game. Guesses are stored as entity
// ids only; feedback is recomputed from the catalog on load, which is safe
// because the comparison engine is deterministic.
type SlotRecord struct {
	Mode      string
	Category  string
	TargetID  string
	GuessIDs  []string
	Status    string
	Moves     int
	Credits   int
	HintKeys  []string
	DailyDate string
	UpdatedAt time.Time
}

// DailyMeta tracks the per-category daily streak.
type DailyMeta struct {
	Category          string
	LastCompletedDate string
	CurrentStreak     int
	MaxStreak         int
}

// ResultRecord is one finished game.
type ResultRecord struct {
	Mode        string
	Category    string
	Date        string
	TargetID    string
	Moves       int
	Solved      bool
	Rank        string
	CompletedAt time.Time
}

// Stats aggregates finished games for one category.
type Stats struct {
	Played     int
	Solved     int
	Revealed   int
	BestMoves  int
	TotalMoves int
}
