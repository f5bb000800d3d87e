package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"scalar/internal/catalog"
	"scalar/internal/config"
	"scalar/internal/daily"
	"scalar/internal/engine"
	"scalar/internal/store"
)

var (
	ErrFinished        = errors.New("game is not in progress")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownEntity   = errors.New("unknown entity")
	ErrDailyReset      = errors.New("daily games cannot be reset")
)

// Manager coordinates slots, the comparison engine, and the store.
type Manager struct {
	catalog *catalog.Catalog
	store   store.Store
	cfg     *config.ProjectConfig
	rng     *rand.Rand
	now     func() time.Time
}

func New(c *catalog.Catalog, st store.Store, cfg *config.ProjectConfig) *Manager {
	return &Manager{
		catalog: c,
		store:   st,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
}

func (m *Manager) category(name string) (*config.Category, error) {
	for i := range m.catalog.Schema().Categories {
		category := &m.catalog.Schema().Categories[i]
		if strings.EqualFold(category.Name, name) {
			return category, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, name)
}

// DailySlot returns the current daily game for a category, creating a fresh
// one when none exists or the stored slot belongs to an earlier day.
func (m *Manager) DailySlot(ctx context.Context, categoryName string) (*Slot, error) {
	category, err := m.category(categoryName)
	if err != nil {
		return nil, err
	}
	today := daily.LocalDateString(m.now())

	record, err := m.store.GetSlot(ctx, ModeDaily, category.Name)
	if err != nil {
		return nil, err
	}
	if record != nil && record.DailyDate == today {
		return m.rehydrate(record, category)
	}

	target := daily.Select(category.Name, m.catalog.Entities(category.Name), today)
	slot := m.newSlot(ModeDaily, category.Name, target)
	slot.DailyDate = today
	if err := m.store.SaveSlot(ctx, slot.record()); err != nil {
		return nil, err
	}
	return slot, nil
}

// FreeplaySlot returns the current freeplay game, creating one with a random
// target when none exists.
func (m *Manager) FreeplaySlot(ctx context.Context, categoryName string) (*Slot, error) {
	category, err := m.category(categoryName)
	if err != nil {
		return nil, err
	}

	record, err := m.store.GetSlot(ctx, ModeFreeplay, category.Name)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return m.rehydrate(record, category)
	}

	slot := m.newSlot(ModeFreeplay, category.Name, m.catalog.Random(category.Name, m.rng))
	if err := m.store.SaveSlot(ctx, slot.record()); err != nil {
		return nil, err
	}
	return slot, nil
}

// Slot dispatches on mode.
func (m *Manager) Slot(ctx context.Context, mode, category string) (*Slot, error) {
	if mode == ModeDaily {
		return m.DailySlot(ctx, category)
	}
	return m.FreeplaySlot(ctx, category)
}

// SubmitGuess evaluates one guess against the slot's target. The guess is
// resolved by entity id first, then by display name.
func (m *Manager) SubmitGuess(ctx context.Context, mode, categoryName, guess string) (*Slot, *GuessResult, error) {
	category, err := m.category(categoryName)
	if err != nil {
		return nil, nil, err
	}
	slot, err := m.Slot(ctx, mode, category.Name)
	if err != nil {
		return nil, nil, err
	}
	if slot.Status != StatusPlaying {
		return slot, nil, ErrFinished
	}

	entity, ok := m.catalog.EntityByID(category.Name, guess)
	if !ok {
		entity, ok = m.catalog.EntityByName(category.Name, guess)
	}
	if !ok {
		return slot, nil, fmt.Errorf("%w: %s", ErrUnknownEntity, guess)
	}

	feedback := engine.Compute(slot.Target, entity, category.Fields)
	result := GuessResult{Guess: entity, Feedback: feedback}
	slot.Guesses = append(slot.Guesses, result)
	slot.Moves++
	if engine.Solved(feedback) {
		slot.Status = StatusSolved
	}

	if err := m.store.SaveSlot(ctx, slot.record()); err != nil {
		return nil, nil, err
	}

	if slot.Status == StatusSolved {
		if slot.Mode == ModeDaily {
			if err := m.updateStreak(ctx, category.Name); err != nil {
				return nil, nil, err
			}
		}
		if err := m.recordResult(ctx, slot, category.Par, true); err != nil {
			return nil, nil, err
		}
	}

	return slot, &result, nil
}

// RevealHint unfolds hidden attributes. The first reveals spend hint credits;
// once credits run out each reveal costs extra moves instead.
func (m *Manager) RevealHint(ctx context.Context, mode, categoryName string, keys []string) (*Slot, error) {
	category, err := m.category(categoryName)
	if err != nil {
		return nil, err
	}
	slot, err := m.Slot(ctx, mode, category.Name)
	if err != nil {
		return nil, err
	}
	if slot.Status != StatusPlaying {
		return slot, ErrFinished
	}

	var fresh []string
	for _, key := range keys {
		if !slot.hintRevealed(key) {
			fresh = append(fresh, key)
		}
	}
	if len(fresh) == 0 {
		return slot, nil
	}

	slot.HintKeys = append(slot.HintKeys, fresh...)
	if slot.Credits > 0 {
		slot.Credits--
	} else {
		slot.Moves += m.cfg.Game.HintMoveCost
	}

	if err := m.store.SaveSlot(ctx, slot.record()); err != nil {
		return nil, err
	}
	return slot, nil
}

// RevealAnswer forfeits the game. The daily streak is left untouched: it
// stalls rather than breaks.
func (m *Manager) RevealAnswer(ctx context.Context, mode, categoryName string) (*Slot, error) {
	category, err := m.category(categoryName)
	if err != nil {
		return nil, err
	}
	slot, err := m.Slot(ctx, mode, category.Name)
	if err != nil {
		return nil, err
	}
	if slot.Status != StatusPlaying {
		return slot, ErrFinished
	}

	slot.Status = StatusRevealed
	if err := m.store.SaveSlot(ctx, slot.record()); err != nil {
		return nil, err
	}
	if err := m.recordResult(ctx, slot, category.Par, false); err != nil {
		return nil, err
	}
	return slot, nil
}

// Reset discards the freeplay slot and deals a new random target. Daily
// games cannot be reset.
func (m *Manager) Reset(ctx context.Context, mode, categoryName string) (*Slot, error) {
	if mode == ModeDaily {
		return nil, ErrDailyReset
	}
	category, err := m.category(categoryName)
	if err != nil {
		return nil, err
	}

	slot := m.newSlot(ModeFreeplay, category.Name, m.catalog.Random(category.Name, m.rng))
	if err := m.store.SaveSlot(ctx, slot.record()); err != nil {
		return nil, err
	}
	return slot, nil
}

// StartChallenge replaces the freeplay slot with a fixed target from a
// decoded challenge link.
func (m *Manager) StartChallenge(ctx context.Context, categoryName string, target catalog.Entity) (*Slot, error) {
	category, err := m.category(categoryName)
	if err != nil {
		return nil, err
	}

	slot := m.newSlot(ModeFreeplay, category.Name, target)
	if err := m.store.SaveSlot(ctx, slot.record()); err != nil {
		return nil, err
	}
	return slot, nil
}

// Streak returns the category's daily streak meta, zero-valued when the
// category has never been completed.
func (m *Manager) Streak(ctx context.Context, categoryName string) (store.DailyMeta, error) {
	meta, err := m.store.GetDailyMeta(ctx, categoryName)
	if err != nil {
		return store.DailyMeta{}, err
	}
	if meta == nil {
		return store.DailyMeta{Category: categoryName}, nil
	}
	return *meta, nil
}

func (m *Manager) newSlot(mode, category string, target catalog.Entity) *Slot {
	return &Slot{
		Mode:     mode,
		Category: category,
		Target:   target,
		Status:   StatusPlaying,
		Credits:  m.cfg.Game.Credits,
	}
}

func (m *Manager) rehydrate(record *store.SlotRecord, category *config.Category) (*Slot, error) {
	target, ok := m.catalog.EntityByID(category.Name, record.TargetID)
	if !ok {
		return nil, fmt.Errorf("%w: stored target %s", ErrUnknownEntity, record.TargetID)
	}

	slot := &Slot{
		Mode:      record.Mode,
		Category:  record.Category,
		Target:    target,
		Status:    record.Status,
		Moves:     record.Moves,
		Credits:   record.Credits,
		HintKeys:  record.HintKeys,
		DailyDate: record.DailyDate,
	}
	for _, guessID := range record.GuessIDs {
		guess, ok := m.catalog.EntityByID(category.Name, guessID)
		if !ok {
			return nil, fmt.Errorf("%w: stored guess %s", ErrUnknownEntity, guessID)
		}
		slot.Guesses = append(slot.Guesses, GuessResult{
			Guess:    guess,
			Feedback: engine.Compute(target, guess, category.Fields),
		})
	}
	return slot, nil
}

func (m *Manager) updateStreak(ctx context.Context, category string) error {
	today := daily.LocalDateString(m.now())

	meta, err := m.store.GetDailyMeta(ctx, category)
	if err != nil {
		return err
	}
	if meta == nil {
		meta = &store.DailyMeta{Category: category}
	}
	if meta.LastCompletedDate == today {
		return nil
	}

	if meta.LastCompletedDate == daily.Yesterday(today) {
		meta.CurrentStreak++
	} else {
		meta.CurrentStreak = 1
	}
	if meta.CurrentStreak > meta.MaxStreak {
		meta.MaxStreak = meta.CurrentStreak
	}
	meta.LastCompletedDate = today

	return m.store.SaveDailyMeta(ctx, *meta)
}

func (m *Manager) recordResult(ctx context.Context, slot *Slot, par int, solved bool) error {
	date := slot.DailyDate
	if date == "" {
		date = daily.LocalDateString(m.now())
	}
	result := store.ResultRecord{
		Mode:     slot.Mode,
		Category: slot.Category,
		Date:     date,
		TargetID: slot.Target.ID,
		Moves:    slot.Moves,
		Solved:   solved,
	}
	if solved {
		result.Rank = engine.Rank(slot.Moves, par).Rank
	}
	return m.store.RecordResult(ctx, result)
}
