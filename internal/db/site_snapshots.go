package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Site Snapshot Methods
// -----------------------------------------------------------------------------

// GetSiteSnapshot retrieves the cached crawl text for a site, or nil when
// the site has never been fetched.
func (db *DB) GetSiteSnapshot(ctx context.Context, siteURL string) (*SiteSnapshot, error) {
	var snap SiteSnapshot
	err := db.pool.QueryRow(ctx,
		`SELECT id, site_url, content, fetched_at
		 FROM site_snapshots
		 WHERE site_url = $1`,
		siteURL,
	).Scan(&snap.ID, &snap.SiteURL, &snap.Content, &snap.FetchedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get site snapshot: %w", err)
	}
	return &snap, nil
}

// UpsertSiteSnapshot stores crawl text for a site, replacing any previous
// snapshot and restarting its freshness window.
func (db *DB) UpsertSiteSnapshot(ctx context.Context, siteURL, content string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO site_snapshots (site_url, content, fetched_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (site_url)
		 DO UPDATE SET content = EXCLUDED.content, fetched_at = NOW()`,
		siteURL, content,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert site snapshot: %w", err)
	}
	return nil
}
