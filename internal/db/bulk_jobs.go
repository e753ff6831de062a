package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/parkerjr2/seogen/internal/types"
)

// -----------------------------------------------------------------------------
// Bulk Job Methods
// -----------------------------------------------------------------------------

// CreateBulkJob creates a job in running status with zeroed counters and one
// pending item per request, in a single transaction. Item idx follows the
// request order and is the stable key results pagination uses.
func (db *DB) CreateBulkJob(ctx context.Context, licenseKey, siteURL, jobName string, requests []types.PageRequest) (*BulkJob, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var job BulkJob
	err = tx.QueryRow(ctx,
		`INSERT INTO bulk_jobs (license_key, site_url, job_name, status, total_items, processed, completed, failed)
		 VALUES ($1, $2, $3, 'running', $4, 0, 0, 0)
		 RETURNING id, license_key, COALESCE(site_url, ''), COALESCE(job_name, ''), status,
		           total_items, processed, completed, failed, created_at, updated_at`,
		licenseKey, siteURL, jobName, len(requests),
	).Scan(&job.ID, &job.LicenseKey, &job.SiteURL, &job.JobName, &job.Status,
		&job.TotalItems, &job.Processed, &job.Completed, &job.Failed, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create bulk job: %w", err)
	}

	for i, req := range requests {
		_, err = tx.Exec(ctx,
			`INSERT INTO bulk_job_items (job_id, idx, service, city, state, business_name, phone, email, address, canonical_key, status, attempts)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'pending', 0)`,
			job.ID, i, req.Service, req.City, req.State, req.BusinessName, req.Phone, req.Email, req.Address, req.CanonicalKey(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create bulk job item %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit bulk job: %w", err)
	}
	return &job, nil
}

// GetBulkJob retrieves a job by ID, or nil when it does not exist.
func (db *DB) GetBulkJob(ctx context.Context, jobID uuid.UUID) (*BulkJob, error) {
	var job BulkJob
	err := db.pool.QueryRow(ctx,
		`SELECT id, license_key, COALESCE(site_url, ''), COALESCE(job_name, ''), status,
		        total_items, processed, completed, failed, created_at, updated_at
		 FROM bulk_jobs WHERE id = $1`,
		jobID,
	).Scan(&job.ID, &job.LicenseKey, &job.SiteURL, &job.JobName, &job.Status,
		&job.TotalItems, &job.Processed, &job.Completed, &job.Failed, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bulk job: %w", err)
	}
	return &job, nil
}

// CancelBulkJob marks a job canceled. Cancellation is cooperative: in-flight
// items notice the status at their next decision point.
func (db *DB) CancelBulkJob(ctx context.Context, jobID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE bulk_jobs SET status = 'canceled', updated_at = NOW() WHERE id = $1`,
		jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to cancel bulk job: %w", err)
	}
	return nil
}

// RecomputeJobCounters rescans every item status and overwrites the job's
// counters. The job status derives from the fresh counts; canceled and
// failed stay sticky even if a cancel lands between the scan and the write.
func (db *DB) RecomputeJobCounters(ctx context.Context, jobID uuid.UUID) error {
	job, err := db.GetBulkJob(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("bulk job not found: %s", jobID)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT status FROM bulk_job_items WHERE job_id = $1`,
		jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to scan item statuses: %w", err)
	}
	defer rows.Close()

	var statuses []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return fmt.Errorf("failed to scan item status: %w", err)
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to scan item statuses: %w", err)
	}

	processed, completed, failed := jobCounters(statuses)
	status := deriveJobStatus(job.Status, job.TotalItems, completed, failed)

	_, err = db.pool.Exec(ctx,
		`UPDATE bulk_jobs
		 SET processed = $2, completed = $3, failed = $4,
		     status = CASE WHEN status IN ('canceled', 'failed') THEN status ELSE $5 END,
		     updated_at = NOW()
		 WHERE id = $1`,
		jobID, processed, completed, failed, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update job counters: %w", err)
	}
	return nil
}
