package analyses

import (
	"context"
	"database/sql"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// NewPGRepo constructs a Postgres-backed analysis repo.
func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{DB: db}
}

// Create inserts a new analysis record.
func (r *PGRepo) Create(ctx context.Context, a Analysis) error {
	const query = `
INSERT INTO analysis_records (id, filename, file_type, file_size, text_length, ai_probability, confidence, reasoning, ip_address, visitor_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var ip sql.NullString
	if a.IPAddress != "" {
		ip = sql.NullString{String: a.IPAddress, Valid: true}
	}
	var visitorID sql.NullString
	if a.VisitorID != "" {
		visitorID = sql.NullString{String: a.VisitorID, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		a.ID,
		a.Filename,
		a.FileType,
		a.FileSize,
		a.TextLength,
		a.AIProbability,
		a.Confidence,
		a.Reasoning,
		ip,
		visitorID,
		a.CreatedAt,
	)
	return err
}

// Recent returns the latest records, newest first.
func (r *PGRepo) Recent(ctx context.Context, limit int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	const query = `
SELECT id, filename, file_type, file_size, text_length, ai_probability, confidence, reasoning, ip_address, visitor_id, created_at
FROM analysis_records ORDER BY created_at DESC LIMIT $1`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Analysis
	for rows.Next() {
		var a Analysis
		var reasoning, ip, visitorID sql.NullString
		if err := rows.Scan(
			&a.ID,
			&a.Filename,
			&a.FileType,
			&a.FileSize,
			&a.TextLength,
			&a.AIProbability,
			&a.Confidence,
			&reasoning,
			&ip,
			&visitorID,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		a.Reasoning = reasoning.String
		a.IPAddress = ip.String
		a.VisitorID = visitorID.String
		out = append(out, a)
	}
	return out, rows.Err()
}

// Stats aggregates all stored records.
func (r *PGRepo) Stats(ctx context.Context) (Stats, error) {
	const totalsQuery = `
SELECT COUNT(*), COUNT(*) FILTER (WHERE ai_probability >= $1), COALESCE(AVG(confidence), 0)
FROM analysis_records`

	var stats Stats
	if err := r.DB.QueryRowContext(ctx, totalsQuery, aiThreshold).Scan(
		&stats.TotalAnalyses,
		&stats.AIDetected,
		&stats.AverageConfidence,
	); err != nil {
		return Stats{}, err
	}
	stats.HumanDetected = stats.TotalAnalyses - stats.AIDetected
	if stats.TotalAnalyses > 0 {
		stats.AIPercentage = float64(stats.AIDetected) / float64(stats.TotalAnalyses) * 100
		stats.HumanPercentage = float64(stats.HumanDetected) / float64(stats.TotalAnalyses) * 100
	}

	const typesQuery = `SELECT file_type, COUNT(*) FROM analysis_records GROUP BY file_type`
	rows, err := r.DB.QueryContext(ctx, typesQuery)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()

	stats.FileTypeDistribution = make(map[string]int)
	for rows.Next() {
		var fileType string
		var count int
		if err := rows.Scan(&fileType, &count); err != nil {
			return Stats{}, err
		}
		stats.FileTypeDistribution[fileType] = count
	}
	return stats, rows.Err()
}

// DeleteOlderThan bulk-deletes records past the retention window.
func (r *PGRepo) DeleteOlderThan(ctx context.Context, daysOld int) (int, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -daysOld)
	res, err := r.DB.ExecContext(ctx, `DELETE FROM analysis_records WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}

var _ Repo = (*PGRepo)(nil)
