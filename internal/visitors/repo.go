package visitors

import "context"

// Repo defines persistence operations for visitor credits.
type Repo interface {
	// Ensure returns the visitor's credit row, creating it with the free
	// allowance if absent.
	Ensure(ctx context.Context, visitorID, ip string) (Credit, error)
	// Use atomically decrements one credit. Returns ErrNoCredits when the
	// balance is zero; credits never go negative.
	Use(ctx context.Context, visitorID string) (Credit, error)
	// Add grants purchased credits, recording the payment reference.
	Add(ctx context.Context, visitorID string, n int, paymentRef string) (Credit, error)
}
