package visitors

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres. Credit mutations run inside a
// transaction with a row lock so two simultaneous requests from the same
// visitor cannot both spend the last credit.
type PGRepo struct {
	DB *sql.DB
}

// NewPGRepo constructs a Postgres-backed credit repo.
func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{DB: db}
}

// Ensure returns the visitor's credit row, creating it lazily.
func (r *PGRepo) Ensure(ctx context.Context, visitorID, ip string) (Credit, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Credit{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	credit, err := r.lockAndEnsure(ctx, tx, visitorID, ip)
	if err != nil {
		return Credit{}, err
	}
	if err = tx.Commit(); err != nil {
		return Credit{}, err
	}
	return credit, nil
}

// Use decrements one credit atomically.
func (r *PGRepo) Use(ctx context.Context, visitorID string) (Credit, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Credit{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	credit, err := r.lockAndEnsure(ctx, tx, visitorID, "")
	if err != nil {
		return Credit{}, err
	}
	if credit.CreditsRemaining <= 0 {
		err = ErrNoCredits
		return Credit{}, err
	}

	credit.CreditsRemaining--
	credit.LastActivity = time.Now().UTC()
	if _, err = tx.ExecContext(ctx, `
UPDATE visitor_credits SET credits_remaining = $1, last_activity = $2 WHERE visitor_id = $3`,
		credit.CreditsRemaining, credit.LastActivity, visitorID); err != nil {
		return Credit{}, err
	}
	if err = tx.Commit(); err != nil {
		return Credit{}, err
	}
	return credit, nil
}

// Add grants purchased credits.
func (r *PGRepo) Add(ctx context.Context, visitorID string, n int, paymentRef string) (Credit, error) {
	if n <= 0 {
		return r.Ensure(ctx, visitorID, "")
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Credit{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	credit, err := r.lockAndEnsure(ctx, tx, visitorID, "")
	if err != nil {
		return Credit{}, err
	}

	credit.CreditsRemaining += n
	credit.TotalPurchased += n
	credit.LastActivity = time.Now().UTC()
	if paymentRef != "" {
		credit.PaymentRef = paymentRef
	}

	var ref sql.NullString
	if credit.PaymentRef != "" {
		ref = sql.NullString{String: credit.PaymentRef, Valid: true}
	}
	if _, err = tx.ExecContext(ctx, `
UPDATE visitor_credits
SET credits_remaining = $1, total_purchased = $2, last_activity = $3, payment_ref = $4
WHERE visitor_id = $5`,
		credit.CreditsRemaining, credit.TotalPurchased, credit.LastActivity, ref, visitorID); err != nil {
		return Credit{}, err
	}
	if err = tx.Commit(); err != nil {
		return Credit{}, err
	}
	return credit, nil
}

func (r *PGRepo) lockAndEnsure(ctx context.Context, tx *sql.Tx, visitorID, ip string) (Credit, error) {
	var credit Credit
	var ref sql.NullString
	row := tx.QueryRowContext(ctx, `
SELECT visitor_id, ip_address, credits_remaining, total_purchased, last_activity, created_at, payment_ref
FROM visitor_credits WHERE visitor_id = $1 FOR UPDATE`, visitorID)
	err := row.Scan(
		&credit.VisitorID,
		&credit.IPAddress,
		&credit.CreditsRemaining,
		&credit.TotalPurchased,
		&credit.LastActivity,
		&credit.CreatedAt,
		&ref,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			now := time.Now().UTC()
			if ip == "" {
				ip = fallbackIP
			}
			credit = Credit{
				VisitorID:        visitorID,
				IPAddress:        ip,
				CreditsRemaining: FreeCredits,
				LastActivity:     now,
				CreatedAt:        now,
			}
			if _, err = tx.ExecContext(ctx, `
INSERT INTO visitor_credits (visitor_id, ip_address, credits_remaining, total_purchased, last_activity, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`,
				credit.VisitorID, credit.IPAddress, credit.CreditsRemaining, credit.TotalPurchased, credit.LastActivity, credit.CreatedAt); err != nil {
				return Credit{}, err
			}
			return credit, nil
		}
		return Credit{}, err
	}
	if ref.Valid {
		credit.PaymentRef = ref.String
	}
	return credit, nil
}

var _ Repo = (*PGRepo)(nil)
