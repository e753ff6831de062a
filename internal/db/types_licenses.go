package db

import (
	"time"

	"github.com/google/uuid"
)

// Subscription statuses.
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusInactive = "inactive"
	SubscriptionStatusCanceled = "canceled"
)

// Subscription holds one customer's generation entitlements. PageLimit is
// the lifetime ceiling, MonthlyGenerationLimit the per-period one; both are
// enforced by counting usage log rows, never by a decrementing counter.
type Subscription struct {
	ID                     uuid.UUID `json:"id"`
	Status                 string    `json:"status"`
	PageLimit              int       `json:"page_limit"`
	MonthlyGenerationLimit int       `json:"monthly_generation_limit"`
	CurrentPeriodStart     time.Time `json:"current_period_start"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// APIKey is one license key bound to a subscription. A subscription may
// carry several keys; usage counts aggregate across all of them.
type APIKey struct {
	ID             uuid.UUID `json:"id"`
	Key            string    `json:"key"`
	Name           string    `json:"name,omitempty"`
	SubscriptionID uuid.UUID `json:"subscription_id"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// License is the joined view of a key and its subscription, the unit the
// server and worker check before generating.
type License struct {
	APIKey       APIKey       `json:"api_key"`
	Subscription Subscription `json:"subscription"`
}

// Active reports whether both the key and its subscription allow use.
func (l *License) Active() bool {
	return l.APIKey.IsActive && l.Subscription.Status == SubscriptionStatusActive
}
