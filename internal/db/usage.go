package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Usage Log Methods
// -----------------------------------------------------------------------------

// InsertUsageLog records one metered action for an API key. Details are
// optional structured context, stored as JSON.
func (db *DB) InsertUsageLog(ctx context.Context, apiKeyID uuid.UUID, action string, details any) error {
	var detailsJSON []byte
	if details != nil {
		var err error
		detailsJSON, err = json.Marshal(details)
		if err != nil {
			return fmt.Errorf("failed to marshal usage details: %w", err)
		}
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO usage_logs (api_key_id, action, details) VALUES ($1, $2, $3)`,
		apiKeyID, action, detailsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert usage log: %w", err)
	}
	return nil
}

// CountSubscriptionUsage counts matching actions across every key belonging
// to a subscription, for the lifetime of the subscription.
func (db *DB) CountSubscriptionUsage(ctx context.Context, subscriptionID uuid.UUID, actions []string) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM usage_logs u
		 JOIN api_keys k ON k.id = u.api_key_id
		 WHERE k.subscription_id = $1 AND u.action = ANY($2)`,
		subscriptionID, actions,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscription usage: %w", err)
	}
	return count, nil
}

// CountSubscriptionUsageSince counts matching actions across every key
// belonging to a subscription from a point in time onward, typically the
// start of the current billing period.
func (db *DB) CountSubscriptionUsageSince(ctx context.Context, subscriptionID uuid.UUID, actions []string, since time.Time) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM usage_logs u
		 JOIN api_keys k ON k.id = u.api_key_id
		 WHERE k.subscription_id = $1 AND u.action = ANY($2) AND u.created_at >= $3`,
		subscriptionID, actions, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscription usage: %w", err)
	}
	return count, nil
}
