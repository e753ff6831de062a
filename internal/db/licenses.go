package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// License Methods
// -----------------------------------------------------------------------------

// CreateLicense inserts a subscription and its API key in one transaction.
// The subscription starts active with the current period opening now.
func (db *DB) CreateLicense(ctx context.Context, key, name string, pageLimit, monthlyLimit int) (*License, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var license License
	err = tx.QueryRow(ctx,
		`INSERT INTO subscriptions (status, page_limit, monthly_generation_limit, current_period_start)
		 VALUES ('active', $1, $2, NOW())
		 RETURNING id, status, page_limit, monthly_generation_limit, current_period_start, created_at, updated_at`,
		pageLimit, monthlyLimit,
	).Scan(&license.Subscription.ID, &license.Subscription.Status,
		&license.Subscription.PageLimit, &license.Subscription.MonthlyGenerationLimit,
		&license.Subscription.CurrentPeriodStart, &license.Subscription.CreatedAt,
		&license.Subscription.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO api_keys (key, name, subscription_id, is_active)
		 VALUES ($1, $2, $3, TRUE)
		 RETURNING id, key, COALESCE(name, ''), subscription_id, is_active, created_at`,
		key, name, license.Subscription.ID,
	).Scan(&license.APIKey.ID, &license.APIKey.Key, &license.APIKey.Name,
		&license.APIKey.SubscriptionID, &license.APIKey.IsActive, &license.APIKey.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create api key: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &license, nil
}

// GetLicenseByKey resolves an API key string to the key row and its
// subscription, or nil when the key is unknown.
func (db *DB) GetLicenseByKey(ctx context.Context, key string) (*License, error) {
	var license License
	err := db.pool.QueryRow(ctx,
		`SELECT k.id, k.key, COALESCE(k.name, ''), k.subscription_id, k.is_active, k.created_at,
		        s.id, s.status, s.page_limit, s.monthly_generation_limit,
		        s.current_period_start, s.created_at, s.updated_at
		 FROM api_keys k
		 JOIN subscriptions s ON s.id = k.subscription_id
		 WHERE k.key = $1`,
		key,
	).Scan(&license.APIKey.ID, &license.APIKey.Key, &license.APIKey.Name,
		&license.APIKey.SubscriptionID, &license.APIKey.IsActive, &license.APIKey.CreatedAt,
		&license.Subscription.ID, &license.Subscription.Status,
		&license.Subscription.PageLimit, &license.Subscription.MonthlyGenerationLimit,
		&license.Subscription.CurrentPeriodStart, &license.Subscription.CreatedAt,
		&license.Subscription.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get license by key: %w", err)
	}
	return &license, nil
}

// GetSubscriptionForKey retrieves the subscription an API key belongs to,
// or nil when the key does not exist.
func (db *DB) GetSubscriptionForKey(ctx context.Context, apiKeyID uuid.UUID) (*Subscription, error) {
	var sub Subscription
	err := db.pool.QueryRow(ctx,
		`SELECT s.id, s.status, s.page_limit, s.monthly_generation_limit,
		        s.current_period_start, s.created_at, s.updated_at
		 FROM subscriptions s
		 JOIN api_keys k ON k.subscription_id = s.id
		 WHERE k.id = $1`,
		apiKeyID,
	).Scan(&sub.ID, &sub.Status, &sub.PageLimit, &sub.MonthlyGenerationLimit,
		&sub.CurrentPeriodStart, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription for key: %w", err)
	}
	return &sub, nil
}

// ListLicenses returns every API key joined with its subscription, newest
// first.
func (db *DB) ListLicenses(ctx context.Context) ([]License, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT k.id, k.key, COALESCE(k.name, ''), k.subscription_id, k.is_active, k.created_at,
		        s.id, s.status, s.page_limit, s.monthly_generation_limit,
		        s.current_period_start, s.created_at, s.updated_at
		 FROM api_keys k
		 JOIN subscriptions s ON s.id = k.subscription_id
		 ORDER BY k.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	defer rows.Close()

	var licenses []License
	for rows.Next() {
		var license License
		err := rows.Scan(&license.APIKey.ID, &license.APIKey.Key, &license.APIKey.Name,
			&license.APIKey.SubscriptionID, &license.APIKey.IsActive, &license.APIKey.CreatedAt,
			&license.Subscription.ID, &license.Subscription.Status,
			&license.Subscription.PageLimit, &license.Subscription.MonthlyGenerationLimit,
			&license.Subscription.CurrentPeriodStart, &license.Subscription.CreatedAt,
			&license.Subscription.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan license: %w", err)
		}
		licenses = append(licenses, license)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	return licenses, nil
}

// SetAPIKeyActive toggles a key without touching its subscription.
func (db *DB) SetAPIKeyActive(ctx context.Context, apiKeyID uuid.UUID, active bool) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE api_keys SET is_active = $2 WHERE id = $1`,
		apiKeyID, active,
	)
	if err != nil {
		return fmt.Errorf("failed to update api key: %w", err)
	}
	return nil
}
