// Package license enforces subscription quotas before page generation.
package license

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/parkerjr2/seogen/internal/db"
)

// Deny reasons reported when a quota ceiling is reached.
const (
	ReasonPageLimit    = "page limit reached"
	ReasonMonthlyLimit = "monthly generation limit reached"
)

// Store is the subset of database access the gate needs.
// This allows the gate to be tested against an in-memory implementation.
type Store interface {
	GetSubscriptionForKey(ctx context.Context, apiKeyID uuid.UUID) (*db.Subscription, error)
	CountSubscriptionUsage(ctx context.Context, subscriptionID uuid.UUID, actions []string) (int, error)
	CountSubscriptionUsageSince(ctx context.Context, subscriptionID uuid.UUID, actions []string, since time.Time) (int, error)
}

// Stats reports a subscription's usage against both of its ceilings.
// Remaining fields are -1 when the corresponding limit is unlimited.
type Stats struct {
	TotalPages              int `json:"total_pages"`
	PageLimit               int `json:"page_limit"`
	PagesRemainingCapacity  int `json:"pages_remaining_capacity"`
	PeriodPages             int `json:"period_pages"`
	MonthlyLimit            int `json:"monthly_limit"`
	PagesRemainingThisMonth int `json:"pages_remaining_this_month"`
}

// Decision is the outcome of a quota check. Stats are populated whether or
// not the generation is allowed, so callers can report usage either way.
type Decision struct {
	Allowed bool
	Reason  string
	Stats   Stats
}

// Gate answers whether an API key may generate another page.
type Gate struct {
	store Store
}

// NewGate creates a quota gate backed by the given store.
func NewGate(store Store) *Gate {
	return &Gate{store: store}
}

// Check resolves the key's subscription and counts successful generations
// across every key on that subscription: the lifetime count against
// PageLimit and the current-period count against MonthlyGenerationLimit.
// A limit of zero or below means unlimited. Any lookup error fails closed;
// callers must treat an error as a denial.
func (g *Gate) Check(ctx context.Context, apiKeyID uuid.UUID) (*Decision, error) {
	sub, err := g.store.GetSubscriptionForKey(ctx, apiKeyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve subscription: %w", err)
	}
	if sub == nil {
		return nil, fmt.Errorf("no subscription for api key %s", apiKeyID)
	}

	total, err := g.store.CountSubscriptionUsage(ctx, sub.ID, db.QuotaActions)
	if err != nil {
		return nil, fmt.Errorf("failed to count lifetime usage: %w", err)
	}
	period, err := g.store.CountSubscriptionUsageSince(ctx, sub.ID, db.QuotaActions, sub.CurrentPeriodStart)
	if err != nil {
		return nil, fmt.Errorf("failed to count period usage: %w", err)
	}

	decision := &Decision{
		Allowed: true,
		Stats: Stats{
			TotalPages:              total,
			PageLimit:               sub.PageLimit,
			PagesRemainingCapacity:  remaining(sub.PageLimit, total),
			PeriodPages:             period,
			MonthlyLimit:            sub.MonthlyGenerationLimit,
			PagesRemainingThisMonth: remaining(sub.MonthlyGenerationLimit, period),
		},
	}

	switch {
	case sub.PageLimit > 0 && total >= sub.PageLimit:
		decision.Allowed = false
		decision.Reason = ReasonPageLimit
	case sub.MonthlyGenerationLimit > 0 && period >= sub.MonthlyGenerationLimit:
		decision.Allowed = false
		decision.Reason = ReasonMonthlyLimit
	}
	return decision, nil
}

func remaining(limit, used int) int {
	if limit <= 0 {
		return -1
	}
	if used >= limit {
		return 0
	}
	return limit - used
}
