package visitors

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo for tests and local runs.
type MemoryRepo struct {
	mu   sync.Mutex
	data map[string]Credit
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Credit)}
}

// Ensure returns the visitor's credit row, creating it lazily.
func (r *MemoryRepo) Ensure(ctx context.Context, visitorID, ip string) (Credit, error) {
	if err := ctx.Err(); err != nil {
		return Credit{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ensureLocked(visitorID, ip), nil
}

// Use decrements one credit, failing without mutation at zero balance.
func (r *MemoryRepo) Use(ctx context.Context, visitorID string) (Credit, error) {
	if err := ctx.Err(); err != nil {
		return Credit{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	credit := r.ensureLocked(visitorID, "")
	if credit.CreditsRemaining <= 0 {
		return Credit{}, ErrNoCredits
	}
	credit.CreditsRemaining--
	credit.LastActivity = time.Now().UTC()
	r.data[visitorID] = credit
	return credit, nil
}

// Add grants purchased credits.
func (r *MemoryRepo) Add(ctx context.Context, visitorID string, n int, paymentRef string) (Credit, error) {
	if err := ctx.Err(); err != nil {
		return Credit{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	credit := r.ensureLocked(visitorID, "")
	if n > 0 {
		credit.CreditsRemaining += n
		credit.TotalPurchased += n
		credit.LastActivity = time.Now().UTC()
		if paymentRef != "" {
			credit.PaymentRef = paymentRef
		}
		r.data[visitorID] = credit
	}
	return credit, nil
}

func (r *MemoryRepo) ensureLocked(visitorID, ip string) Credit {
	if credit, ok := r.data[visitorID]; ok {
		return credit
	}
	now := time.Now().UTC()
	if ip == "" {
		ip = fallbackIP
	}
	credit := Credit{
		VisitorID:        visitorID,
		IPAddress:        ip,
		CreditsRemaining: FreeCredits,
		LastActivity:     now,
		CreatedAt:        now,
	}
	r.data[visitorID] = credit
	return credit
}

var _ Repo = (*MemoryRepo)(nil)
