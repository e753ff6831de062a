package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Admin User Methods
// -----------------------------------------------------------------------------

// CreateAdminUser inserts a dashboard login. The caller hashes the password;
// this layer never sees plaintext.
func (db *DB) CreateAdminUser(ctx context.Context, username, passwordHash string) (*AdminUser, error) {
	var user AdminUser
	err := db.pool.QueryRow(ctx,
		`INSERT INTO admin_users (username, password_hash)
		 VALUES ($1, $2)
		 RETURNING id, username, password_hash, created_at`,
		username, passwordHash,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}
	return &user, nil
}

// GetAdminUserByUsername retrieves a login by username, or nil when no such
// user exists.
func (db *DB) GetAdminUserByUsername(ctx context.Context, username string) (*AdminUser, error) {
	var user AdminUser
	err := db.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at
		 FROM admin_users
		 WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}
	return &user, nil
}
