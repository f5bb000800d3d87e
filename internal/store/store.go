// Package store defines the persistence boundary for game state. The game
// logic only sees this interface; sqlite backs the local CLI and postgres
// backs server deployments.
package store

import "context"

type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	// Slots hold in-progress games, one per (mode, category). A missing
	// slot is (nil, nil), not an error.
	GetSlot(ctx context.Context, mode, category string) (*SlotRecord, error)
	SaveSlot(ctx context.Context, slot SlotRecord) error
	DeleteSlot(ctx context.Context, mode, category string) error

	GetDailyMeta(ctx context.Context, category string) (*DailyMeta, error)
	SaveDailyMeta(ctx context.Context, meta DailyMeta) error

	RecordResult(ctx context.Context, result ResultRecord) error
	ListResults(ctx context.Context, category string, limit int) ([]ResultRecord, error)
	Stats(ctx context.Context, category string) (*Stats, error)
}
