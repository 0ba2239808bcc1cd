package visitors

import (
	"context"
	"errors"
	"testing"
)

func TestUseSpendsTheFreeCredit(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	credit, err := svc.Use(ctx, "visitor-1", "203.0.113.7")
	if err != nil {
		t.Fatalf("Use: %v", err)
	}
	if credit.CreditsRemaining != 0 {
		t.Fatalf("expected 0 credits remaining, got %d", credit.CreditsRemaining)
	}
}

func TestUseAtZeroFailsWithoutMutation(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Use(ctx, "visitor-1", ""); err != nil {
		t.Fatalf("first Use: %v", err)
	}
	if _, err := svc.Use(ctx, "visitor-1", ""); !errors.Is(err, ErrNoCredits) {
		t.Fatalf("expected ErrNoCredits, got %v", err)
	}

	// Row is unchanged: still zero, never negative.
	credit, err := svc.Balance(ctx, "visitor-1", "")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if credit.CreditsRemaining != 0 {
		t.Fatalf("expected balance to stay 0, got %d", credit.CreditsRemaining)
	}
}

func TestPurchaseThenUse(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Use(ctx, "visitor-1", ""); err != nil {
		t.Fatalf("Use: %v", err)
	}
	credit, err := svc.Purchase(ctx, "visitor-1", 5, "pay_123")
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if credit.CreditsRemaining != 5 {
		t.Fatalf("expected 5 credits, got %d", credit.CreditsRemaining)
	}
	if credit.TotalPurchased != 5 {
		t.Fatalf("expected total purchased 5, got %d", credit.TotalPurchased)
	}
	if credit.PaymentRef != "pay_123" {
		t.Fatalf("expected payment ref recorded, got %q", credit.PaymentRef)
	}

	if _, err := svc.Use(ctx, "visitor-1", ""); err != nil {
		t.Fatalf("Use after purchase: %v", err)
	}
}

func TestBalanceCreatesRowLazily(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	credit, err := svc.Balance(context.Background(), "fresh-visitor", "198.51.100.4")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if credit.CreditsRemaining != FreeCredits {
		t.Fatalf("expected the free allowance, got %d", credit.CreditsRemaining)
	}
	if credit.IPAddress != "198.51.100.4" {
		t.Fatalf("expected ip recorded, got %s", credit.IPAddress)
	}
}
