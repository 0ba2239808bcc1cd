package analyses

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo for tests and local runs.
type MemoryRepo struct {
	mu      sync.RWMutex
	records []Analysis
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create appends a record.
func (r *MemoryRepo) Create(ctx context.Context, a Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, a)
	return nil
}

// Recent returns records newest first.
func (r *MemoryRepo) Recent(ctx context.Context, limit int) ([]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	r.mu.RLock()
	out := make([]Analysis, len(r.records))
	copy(out, r.records)
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Stats aggregates the stored records.
func (r *MemoryRepo) Stats(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{FileTypeDistribution: make(map[string]int)}
	stats.TotalAnalyses = len(r.records)

	var confidenceSum float64
	for _, a := range r.records {
		if a.AIProbability >= aiThreshold {
			stats.AIDetected++
		}
		confidenceSum += a.Confidence
		stats.FileTypeDistribution[a.FileType]++
	}
	stats.HumanDetected = stats.TotalAnalyses - stats.AIDetected
	if stats.TotalAnalyses > 0 {
		stats.AIPercentage = float64(stats.AIDetected) / float64(stats.TotalAnalyses) * 100
		stats.HumanPercentage = float64(stats.HumanDetected) / float64(stats.TotalAnalyses) * 100
		stats.AverageConfidence = confidenceSum / float64(stats.TotalAnalyses)
	}
	return stats, nil
}

// DeleteOlderThan removes records created strictly before the cutoff.
func (r *MemoryRepo) DeleteOlderThan(ctx context.Context, daysOld int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -daysOld)

	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.records[:0]
	deleted := 0
	for _, a := range r.records {
		if a.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	r.records = kept
	return deleted, nil
}

var _ Repo = (*MemoryRepo)(nil)
