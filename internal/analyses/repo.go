package analyses

import "context"

// Repo defines persistence operations for analysis records.
type Repo interface {
	Create(ctx context.Context, a Analysis) error
	// Recent returns records newest first.
	Recent(ctx context.Context, limit int) ([]Analysis, error)
	Stats(ctx context.Context) (Stats, error)
	// DeleteOlderThan removes records created strictly before now minus the
	// given number of days and returns how many were removed.
	DeleteOlderThan(ctx context.Context, daysOld int) (int, error)
}
