package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"scalar/internal/catalog"
	"scalar/internal/config"
	"scalar/internal/store"
)

// memStore is an in-memory store.Store for exercising the manager without a
// database.
type memStore struct {
	slots   map[string]store.SlotRecord
	meta    map[string]store.DailyMeta
	results []store.ResultRecord
}

func newMemStore() *memStore {
	return &memStore{
		slots: make(map[string]store.SlotRecord),
		meta:  make(map[string]store.DailyMeta),
	}
}

func slotKey(mode, category string) string { return mode + "/" + category }

func (s *memStore) Close(ctx context.Context) error        { return nil }
func (s *memStore) EnsureSchema(ctx context.Context) error { return nil }

func (s *memStore) GetSlot(ctx context.Context, mode, category string) (*store.SlotRecord, error) {
	record, ok := s.slots[slotKey(mode, category)]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *memStore) SaveSlot(ctx context.Context, slot store.SlotRecord) error {
	s.slots[slotKey(slot.Mode, slot.Category)] = slot
	return nil
}

func (s *memStore) DeleteSlot(ctx context.Context, mode, category string) error {
	delete(s.slots, slotKey(mode, category))
	return nil
}

func (s *memStore) GetDailyMeta(ctx context.Context, category string) (*store.DailyMeta, error) {
	meta, ok := s.meta[category]
	if !ok {
		return nil, nil
	}
	return &meta, nil
}

func (s *memStore) SaveDailyMeta(ctx context.Context, meta store.DailyMeta) error {
	s.meta[meta.Category] = meta
	return nil
}

func (s *memStore) RecordResult(ctx context.Context, result store.ResultRecord) error {
	s.results = append(s.results, result)
	return nil
}

func (s *memStore) ListResults(ctx context.Context, category string, limit int) ([]store.ResultRecord, error) {
	return s.results, nil
}

func (s *memStore) Stats(ctx context.Context, category string) (*store.Stats, error) {
	return &store.Stats{Played: len(s.results)}, nil
}

func testSchema() *config.GameSchema {
	return &config.GameSchema{
		Version: 1,
		Categories: []config.Category{{
			Name:     "countries",
			Icon:     "🌍",
			Entities: "countries.json",
			Par:      4,
			Fields: []config.Field{
				{Key: "name", Label: "Country", DataType: config.DataString, LogicType: config.LogicTarget, DisplayFormat: config.DisplayHidden},
				{Key: "continent", Label: "Continent", DataType: config.DataString, LogicType: config.LogicCategoryMatch, DisplayFormat: config.DisplayText},
				{Key: "population", Label: "Population", DataType: config.DataInt, LogicType: config.LogicHigherLower, DisplayFormat: config.DisplayPercentageDiff},
				{Key: "landlocked", Label: "Landlocked", DataType: config.DataBoolean, LogicType: config.LogicExactMatch, DisplayFormat: config.DisplayText, Folded: true},
			},
		}},
	}
}

func testManager(t *testing.T, st store.Store) *Manager {
	t.Helper()
	dir := t.TempDir()
	data := `[
		{"id": "swe", "name": "Sweden", "continent": "Europe", "population": 10500000, "landlocked": false},
		{"id": "nor", "name": "Norway", "continent": "Europe", "population": 5500000, "landlocked": false},
		{"id": "che", "name": "Switzerland", "continent": "Europe", "population": 8700000, "landlocked": true},
		{"id": "jpn", "name": "Japan", "continent": "Asia", "population": 125000000, "landlocked": false}
	]`
	if err := os.WriteFile(filepath.Join(dir, "countries.json"), []byte(data), 0o644); err != nil {
		t.Fatalf("writing entities: %v", err)
	}
	cat, err := catalog.Load(testSchema(), dir)
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	cfg := &config.ProjectConfig{
		Game: config.GameConfig{Credits: 3, HintMoveCost: 3},
	}
	m := New(cat, st, cfg)
	m.now = func() time.Time { return time.Date(2026, 2, 26, 12, 0, 0, 0, time.Local) }
	return m
}

func TestDailySlot(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	m := testManager(t, st)

	t.Run("creates and persists a slot", func(t *testing.T) {
		slot, err := m.DailySlot(ctx, "countries")
		if err != nil {
			t.Fatalf("daily slot: %v", err)
		}
		if slot.Status != StatusPlaying || slot.Credits != 3 || slot.DailyDate != "2026-02-26" {
			t.Fatalf("unexpected slot: %+v", slot)
		}
		again, err := m.DailySlot(ctx, "countries")
		if err != nil {
			t.Fatalf("second daily slot: %v", err)
		}
		if again.Target.ID != slot.Target.ID {
			t.Fatalf("target changed between calls: %s vs %s", slot.Target.ID, again.Target.ID)
		}
	})

	t.Run("rolls over on a new day", func(t *testing.T) {
		before, err := m.DailySlot(ctx, "countries")
		if err != nil {
			t.Fatalf("daily slot: %v", err)
		}
		if _, _, err := m.SubmitGuess(ctx, ModeDaily, "countries", "nor"); err != nil && before.Target.ID != "nor" {
			t.Fatalf("guess: %v", err)
		}

		m.now = func() time.Time { return time.Date(2026, 2, 27, 12, 0, 0, 0, time.Local) }
		after, err := m.DailySlot(ctx, "countries")
		if err != nil {
			t.Fatalf("daily slot after rollover: %v", err)
		}
		if after.DailyDate != "2026-02-27" || after.Moves != 0 || len(after.Guesses) != 0 {
			t.Fatalf("expected a fresh slot, got %+v", after)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		if _, err := m.DailySlot(ctx, "planets"); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestSubmitGuess(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	m := testManager(t, st)

	slot, err := m.DailySlot(ctx, "countries")
	if err != nil {
		t.Fatalf("daily slot: %v", err)
	}
	target := slot.Target

	// A deliberately wrong guess first.
	wrongID := "swe"
	if target.ID == "swe" {
		wrongID = "nor"
	}

	t.Run("wrong guess keeps playing", func(t *testing.T) {
		updated, result, err := m.SubmitGuess(ctx, ModeDaily, "countries", wrongID)
		if err != nil {
			t.Fatalf("guess: %v", err)
		}
		if updated.Status != StatusPlaying || updated.Moves != 1 {
			t.Fatalf("unexpected slot: %+v", updated)
		}
		if result.Guess.ID != wrongID || len(result.Feedback) == 0 {
			t.Fatalf("unexpected result: %+v", result)
		}
	})

	t.Run("guessing the target solves", func(t *testing.T) {
		updated, _, err := m.SubmitGuess(ctx, ModeDaily, "countries", target.ID)
		if err != nil {
			t.Fatalf("guess: %v", err)
		}
		if updated.Status != StatusSolved || updated.Moves != 2 {
			t.Fatalf("unexpected slot: %+v", updated)
		}
		if len(st.results) != 1 || !st.results[0].Solved || st.results[0].Rank != "GOLD" {
			t.Fatalf("unexpected results: %+v", st.results)
		}
		meta := st.meta["countries"]
		if meta.CurrentStreak != 1 || meta.MaxStreak != 1 || meta.LastCompletedDate != "2026-02-26" {
			t.Fatalf("unexpected meta: %+v", meta)
		}
	})

	t.Run("finished game rejects further guesses", func(t *testing.T) {
		if _, _, err := m.SubmitGuess(ctx, ModeDaily, "countries", wrongID); err != ErrFinished {
			t.Fatalf("expected ErrFinished, got %v", err)
		}
	})

	t.Run("resolves by display name", func(t *testing.T) {
		fp, err := m.FreeplaySlot(ctx, "countries")
		if err != nil {
			t.Fatalf("freeplay slot: %v", err)
		}
		_, result, err := m.SubmitGuess(ctx, ModeFreeplay, "countries", "switzerland")
		if err != nil {
			t.Fatalf("guess: %v", err)
		}
		if result.Guess.ID != "che" {
			t.Fatalf("unexpected entity: %+v", result.Guess)
		}
		_ = fp
	})

	t.Run("unknown entity", func(t *testing.T) {
		if _, _, err := m.SubmitGuess(ctx, ModeFreeplay, "countries", "atlantis"); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestStreaks(t *testing.T) {
	ctx := context.Background()

	solveToday := func(t *testing.T, m *Manager) {
		t.Helper()
		slot, err := m.DailySlot(ctx, "countries")
		if err != nil {
			t.Fatalf("daily slot: %v", err)
		}
		if _, _, err := m.SubmitGuess(ctx, ModeDaily, "countries", slot.Target.ID); err != nil {
			t.Fatalf("guess: %v", err)
		}
	}

	t.Run("consecutive day extends the streak", func(t *testing.T) {
		st := newMemStore()
		m := testManager(t, st)
		st.meta["countries"] = store.DailyMeta{
			Category: "countries", LastCompletedDate: "2026-02-25", CurrentStreak: 4, MaxStreak: 6,
		}
		solveToday(t, m)
		meta := st.meta["countries"]
		if meta.CurrentStreak != 5 || meta.MaxStreak != 6 {
			t.Fatalf("unexpected meta: %+v", meta)
		}
	})

	t.Run("gap restarts the streak", func(t *testing.T) {
		st := newMemStore()
		m := testManager(t, st)
		st.meta["countries"] = store.DailyMeta{
			Category: "countries", LastCompletedDate: "2026-02-20", CurrentStreak: 4, MaxStreak: 6,
		}
		solveToday(t, m)
		meta := st.meta["countries"]
		if meta.CurrentStreak != 1 || meta.MaxStreak != 6 {
			t.Fatalf("unexpected meta: %+v", meta)
		}
	})

	t.Run("streak crosses the max", func(t *testing.T) {
		st := newMemStore()
		m := testManager(t, st)
		st.meta["countries"] = store.DailyMeta{
			Category: "countries", LastCompletedDate: "2026-02-25", CurrentStreak: 6, MaxStreak: 6,
		}
		solveToday(t, m)
		meta := st.meta["countries"]
		if meta.CurrentStreak != 7 || meta.MaxStreak != 7 {
			t.Fatalf("unexpected meta: %+v", meta)
		}
	})
}

func TestRevealHint(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	m := testManager(t, st)

	t.Run("spends credits first", func(t *testing.T) {
		slot, err := m.RevealHint(ctx, ModeFreeplay, "countries", []string{"landlocked"})
		if err != nil {
			t.Fatalf("hint: %v", err)
		}
		if slot.Credits != 2 || slot.Moves != 0 {
			t.Fatalf("unexpected slot: %+v", slot)
		}
		if len(slot.HintKeys) != 1 || slot.HintKeys[0] != "landlocked" {
			t.Fatalf("hint keys: %v", slot.HintKeys)
		}
	})

	t.Run("repeat reveal is free", func(t *testing.T) {
		slot, err := m.RevealHint(ctx, ModeFreeplay, "countries", []string{"landlocked"})
		if err != nil {
			t.Fatalf("hint: %v", err)
		}
		if slot.Credits != 2 || len(slot.HintKeys) != 1 {
			t.Fatalf("unexpected slot: %+v", slot)
		}
	})

	t.Run("costs moves once credits are gone", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if _, err := m.RevealHint(ctx, ModeFreeplay, "countries", []string{fmt.Sprintf("extra-%d", i)}); err != nil {
				t.Fatalf("hint: %v", err)
			}
		}
		slot, err := m.RevealHint(ctx, ModeFreeplay, "countries", []string{"final"})
		if err != nil {
			t.Fatalf("hint: %v", err)
		}
		if slot.Credits != 0 || slot.Moves != 3 {
			t.Fatalf("unexpected slot: %+v", slot)
		}
	})
}

func TestRevealAnswerAndReset(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	m := testManager(t, st)

	t.Run("reveal forfeits without touching the streak", func(t *testing.T) {
		slot, err := m.RevealAnswer(ctx, ModeDaily, "countries")
		if err != nil {
			t.Fatalf("reveal: %v", err)
		}
		if slot.Status != StatusRevealed {
			t.Fatalf("unexpected status: %s", slot.Status)
		}
		if _, exists := st.meta["countries"]; exists {
			t.Fatalf("reveal must not write streak meta: %+v", st.meta)
		}
		if len(st.results) != 1 || st.results[0].Solved {
			t.Fatalf("unexpected results: %+v", st.results)
		}
	})

	t.Run("daily cannot be reset", func(t *testing.T) {
		if _, err := m.Reset(ctx, ModeDaily, "countries"); err != ErrDailyReset {
			t.Fatalf("expected ErrDailyReset, got %v", err)
		}
	})

	t.Run("freeplay reset deals a new game", func(t *testing.T) {
		before, err := m.FreeplaySlot(ctx, "countries")
		if err != nil {
			t.Fatalf("freeplay slot: %v", err)
		}
		if _, err := m.RevealHint(ctx, ModeFreeplay, "countries", []string{"landlocked"}); err != nil {
			t.Fatalf("hint: %v", err)
		}
		after, err := m.Reset(ctx, ModeFreeplay, "countries")
		if err != nil {
			t.Fatalf("reset: %v", err)
		}
		if after.Moves != 0 || after.Credits != 3 || len(after.HintKeys) != 0 {
			t.Fatalf("expected a fresh slot, got %+v", after)
		}
		_ = before
	})
}

func TestStartChallengeAndRehydrate(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	m := testManager(t, st)

	target, ok := m.catalog.EntityByID("countries", "jpn")
	if !ok {
		t.Fatal("fixture entity missing")
	}

	slot, err := m.StartChallenge(ctx, "countries", target)
	if err != nil {
		t.Fatalf("challenge: %v", err)
	}
	if slot.Mode != ModeFreeplay || slot.Target.ID != "jpn" {
		t.Fatalf("unexpected slot: %+v", slot)
	}

	if _, _, err := m.SubmitGuess(ctx, ModeFreeplay, "countries", "swe"); err != nil {
		t.Fatalf("guess: %v", err)
	}

	// Reload from the store: feedback must be recomputed from guess ids.
	reloaded, err := m.FreeplaySlot(ctx, "countries")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Guesses) != 1 {
		t.Fatalf("expected one guess, got %d", len(reloaded.Guesses))
	}
	feedback := reloaded.Guesses[0].Feedback
	if len(feedback) == 0 {
		t.Fatal("feedback was not recomputed")
	}
	if feedback["continent"].Status == "" {
		t.Fatalf("missing continent feedback: %+v", feedback)
	}
}
