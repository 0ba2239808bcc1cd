package analyses

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"ghostorshell-backend/internal/detector"
	"ghostorshell-backend/internal/extract"
	"ghostorshell-backend/internal/shared/telemetry"
)

// UploadInput is the request-scoped context for one analysis. It carries
// everything the pipeline needs explicitly; there is no ambient request state.
type UploadInput struct {
	Filename  string
	MimeType  string
	Data      []byte
	IPAddress string
	VisitorID string
}

// Outcome is what the caller renders. A failed save after a successful
// classification is reported through SaveWarning rather than an error, so the
// result is never lost from the user's perspective.
type Outcome struct {
	RecordID    string          `json:"analysisId,omitempty"`
	Result      detector.Result `json:"result"`
	TextLength  int             `json:"textLength"`
	SaveWarning string          `json:"saveWarning,omitempty"`
}

// Service runs the analysis pipeline: extract, classify, persist.
type Service struct {
	Repo     Repo
	Detector detector.Detector
}

// Analyze runs the full pipeline for one upload. Failures in extraction or
// classification are terminal and persist nothing; there are no retries.
func (s *Service) Analyze(ctx context.Context, in UploadInput) (Outcome, error) {
	text, err := extract.ExtractText(ctx, in.Data, in.MimeType, in.Filename)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to extract text from %s: %w", in.Filename, err)
	}
	if len(text) < extract.MinTextLength {
		return Outcome{}, ErrInsufficientText
	}

	result, err := s.Detector.Detect(ctx, text)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", ErrDetection, err)
	}

	outcome := Outcome{Result: result, TextLength: len(text)}

	record := Analysis{
		ID:            uuid.NewString(),
		Filename:      in.Filename,
		FileType:      fileTypeOf(in.Filename),
		FileSize:      int64(len(in.Data)),
		TextLength:    len(text),
		AIProbability: result.AIProbability,
		Confidence:    result.Confidence,
		Reasoning:     result.Reasoning,
		IPAddress:     in.IPAddress,
		VisitorID:     in.VisitorID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, record); err != nil {
		telemetry.Warn("analysis.save_failed", map[string]any{
			"filename": in.Filename,
			"error":    err.Error(),
		})
		outcome.SaveWarning = "analysis complete but saving the result failed"
		return outcome, nil
	}
	outcome.RecordID = record.ID

	return outcome, nil
}

// Recent returns stored analyses, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Analysis, error) {
	return s.Repo.Recent(ctx, limit)
}

// Stats aggregates the stored analyses.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.Repo.Stats(ctx)
}

// DeleteOldRecords applies the retention window.
func (s *Service) DeleteOldRecords(ctx context.Context, daysOld int) (int, error) {
	return s.Repo.DeleteOlderThan(ctx, daysOld)
}

// fileTypeOf reduces a filename to its extension for stats grouping.
func fileTypeOf(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}
