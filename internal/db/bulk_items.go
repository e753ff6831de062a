package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	// importChunkSize bounds how many item IDs one import UPDATE touches.
	importChunkSize = 100

	defaultResultsLimit = 20
)

const bulkItemColumns = `id, job_id, idx, service, city, state,
	business_name, phone, email, address, canonical_key, status, attempts,
	result_json, COALESCE(error, ''), created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBulkJobItem(row rowScanner) (*BulkJobItem, error) {
	var item BulkJobItem
	err := row.Scan(&item.ID, &item.JobID, &item.Idx, &item.Service, &item.City, &item.State,
		&item.BusinessName, &item.Phone, &item.Email, &item.Address,
		&item.CanonicalKey, &item.Status, &item.Attempts,
		&item.ResultJSON, &item.Error, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// -----------------------------------------------------------------------------
// Bulk Item Methods
// -----------------------------------------------------------------------------

// GetBulkJobItem retrieves one item by ID, or nil when it does not exist.
func (db *DB) GetBulkJobItem(ctx context.Context, itemID uuid.UUID) (*BulkJobItem, error) {
	item, err := scanBulkJobItem(db.pool.QueryRow(ctx,
		`SELECT `+bulkItemColumns+` FROM bulk_job_items WHERE id = $1`,
		itemID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bulk job item: %w", err)
	}
	return item, nil
}

// ListClaimableItems returns the oldest pending and running items across all
// jobs, the worker's poll set. Running items are listed too so a worker can
// fail out or finalize items a crashed process left behind.
func (db *DB) ListClaimableItems(ctx context.Context, limit int) ([]BulkJobItem, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+bulkItemColumns+`
		 FROM bulk_job_items
		 WHERE status IN ('pending', 'running')
		 ORDER BY created_at ASC, idx ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list claimable items: %w", err)
	}
	defer rows.Close()

	var items []BulkJobItem
	for rows.Next() {
		item, err := scanBulkJobItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bulk job item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list claimable items: %w", err)
	}
	return items, nil
}

// TryClaimItem attempts to take exclusive ownership of a pending item. The
// conditional update is the sole cross-process coordination mechanism: the
// claim holds only when this statement moved the row out of pending, which
// exactly one concurrent claimant can observe.
func (db *DB) TryClaimItem(ctx context.Context, itemID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE bulk_job_items
		 SET status = 'running', attempts = attempts + 1, updated_at = NOW()
		 WHERE id = $1 AND status = 'pending'`,
		itemID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to claim item: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SaveItemResult persists a generated page payload without touching the item
// status. Written before the completed transition so a crash in between
// leaves a running item with a recoverable result.
func (db *DB) SaveItemResult(ctx context.Context, itemID uuid.UUID, resultJSON []byte) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE bulk_job_items SET result_json = $2, updated_at = NOW() WHERE id = $1`,
		itemID, resultJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save item result: %w", err)
	}
	return nil
}

// MarkItemCompleted moves an item to completed.
func (db *DB) MarkItemCompleted(ctx context.Context, itemID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE bulk_job_items SET status = 'completed', updated_at = NOW() WHERE id = $1`,
		itemID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark item completed: %w", err)
	}
	return nil
}

// MarkItemFailed moves an item to failed with the error recorded.
func (db *DB) MarkItemFailed(ctx context.Context, itemID uuid.UUID, errMsg string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE bulk_job_items SET status = 'failed', error = $2, updated_at = NOW() WHERE id = $1`,
		itemID, errMsg,
	)
	if err != nil {
		return fmt.Errorf("failed to mark item failed: %w", err)
	}
	return nil
}

// ResetItemToPending puts an item back in the poll set for a retry, keeping
// the error that caused the reset on record.
func (db *DB) ResetItemToPending(ctx context.Context, itemID uuid.UUID, errMsg string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE bulk_job_items SET status = 'pending', error = $2, updated_at = NOW() WHERE id = $1`,
		itemID, errMsg,
	)
	if err != nil {
		return fmt.Errorf("failed to reset item to pending: %w", err)
	}
	return nil
}

// ListJobResults pages a job's terminal items by idx. The page reads above
// the cursor first; when it comes back short, a second read below the cursor
// picks up items that completed out of order after the consumer already
// moved past their idx. Acknowledged items drop out of the default filter,
// so the below-cursor rescan stays small.
func (db *DB) ListJobResults(ctx context.Context, jobID uuid.UUID, statuses []string, cursor *int, limit int) ([]BulkJobItem, error) {
	if len(statuses) == 0 {
		statuses = []string{ItemStatusCompleted, ItemStatusFailed}
	}
	if limit <= 0 {
		limit = defaultResultsLimit
	}

	after, err := db.listResultsPage(ctx, jobID, statuses, cursor, nil, limit)
	if err != nil {
		return nil, err
	}
	if cursor == nil || len(after) >= limit {
		return after, nil
	}

	before, err := db.listResultsPage(ctx, jobID, statuses, nil, cursor, limit-len(after))
	if err != nil {
		return nil, err
	}

	// Both pages are idx-ascending and the below-cursor page sits entirely
	// before the above-cursor one, so concatenation keeps the order.
	return append(before, after...), nil
}

func (db *DB) listResultsPage(ctx context.Context, jobID uuid.UUID, statuses []string, above, below *int, limit int) ([]BulkJobItem, error) {
	query := `SELECT ` + bulkItemColumns + `
		 FROM bulk_job_items
		 WHERE job_id = $1 AND status = ANY($2)`
	args := []any{jobID, statuses}

	if above != nil {
		args = append(args, *above)
		query += fmt.Sprintf(" AND idx > $%d", len(args))
	}
	if below != nil {
		args = append(args, *below)
		query += fmt.Sprintf(" AND idx < $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY idx ASC LIMIT $%d", len(args))

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job results: %w", err)
	}
	defer rows.Close()

	var items []BulkJobItem
	for rows.Next() {
		item, err := scanBulkJobItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bulk job item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list job results: %w", err)
	}
	return items, nil
}

// MarkItemsImported acknowledges delivered items, flipping them from
// completed to imported in chunks and reporting how many rows actually
// changed. Failed items never flip, and a second acknowledgement of the
// same IDs affects zero rows.
func (db *DB) MarkItemsImported(ctx context.Context, jobID uuid.UUID, itemIDs []uuid.UUID) (int, error) {
	imported := 0
	for _, chunk := range chunkIDs(itemIDs, importChunkSize) {
		ids := make([]string, len(chunk))
		for i, id := range chunk {
			ids[i] = id.String()
		}

		tag, err := db.pool.Exec(ctx,
			`UPDATE bulk_job_items
			 SET status = 'imported', updated_at = NOW()
			 WHERE job_id = $1 AND id = ANY($2::uuid[]) AND status = 'completed'`,
			jobID, ids,
		)
		if err != nil {
			return imported, fmt.Errorf("failed to mark items imported: %w", err)
		}
		imported += int(tag.RowsAffected())
	}
	return imported, nil
}
