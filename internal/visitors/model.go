package visitors

import "time"

// FreeCredits is the allowance granted to a new visitor.
const FreeCredits = 1

// Credit is a visitor's usage allowance. One row per distinct visitor
// fingerprint, created lazily on first use.
type Credit struct {
	VisitorID        string    `json:"visitorId"`
	IPAddress        string    `json:"-"`
	CreditsRemaining int       `json:"creditsRemaining"`
	TotalPurchased   int       `json:"totalPurchased"`
	LastActivity     time.Time `json:"lastActivity"`
	CreatedAt        time.Time `json:"createdAt"`
	PaymentRef       string    `json:"-"`
}
