package visitors

import "context"

// Service manages visitor credits via an underlying repo.
type Service struct {
	repo Repo
}

// NewService constructs a Service over the given repo.
func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// Balance returns the visitor's credit row, creating it with the free
// allowance on first sight.
func (s *Service) Balance(ctx context.Context, visitorID, ip string) (Credit, error) {
	return s.repo.Ensure(ctx, visitorID, ip)
}

// Use spends one credit. Returns ErrNoCredits when the balance is exhausted.
func (s *Service) Use(ctx context.Context, visitorID, ip string) (Credit, error) {
	// Ensure first so a brand-new visitor gets their free credit row before
	// the decrement.
	if _, err := s.repo.Ensure(ctx, visitorID, ip); err != nil {
		return Credit{}, err
	}
	return s.repo.Use(ctx, visitorID)
}

// Purchase grants n credits and records the payment reference.
func (s *Service) Purchase(ctx context.Context, visitorID string, n int, paymentRef string) (Credit, error) {
	return s.repo.Add(ctx, visitorID, n, paymentRef)
}
