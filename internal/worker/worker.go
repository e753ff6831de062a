// Package worker polls the bulk queue and runs page generation for claimed
// items. Multiple worker processes may poll the same queue; the conditional
// claim update in the store is the only coordination between them.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/parkerjr2/seogen/internal/db"
	"github.com/parkerjr2/seogen/internal/license"
	"github.com/parkerjr2/seogen/internal/types"
)

const (
	// DefaultBatchLimit is how many items one poll pulls.
	DefaultBatchLimit = 5
	// DefaultConcurrency bounds in-flight generations per worker process.
	DefaultConcurrency = 3
	// DefaultRetryLimit is the attempt count at which an item stops being
	// reset to pending. Two attempts total: the first run plus one retry.
	DefaultRetryLimit = 2
	// DefaultMaxAttempts is the hard ceiling checked before claiming,
	// catching rows whose attempts climbed past the retry policy through
	// crash recovery.
	DefaultMaxAttempts = 3
	// DefaultStaleAfter is how long a running item may sit untouched before
	// it is treated as abandoned by a dead worker.
	DefaultStaleAfter = 10 * time.Minute

	heartbeatInterval = 60 * time.Second
)

// Store is the queue and bookkeeping access the worker needs. *db.DB
// satisfies it; tests use an in-memory implementation.
type Store interface {
	ListClaimableItems(ctx context.Context, limit int) ([]db.BulkJobItem, error)
	TryClaimItem(ctx context.Context, itemID uuid.UUID) (bool, error)
	GetBulkJob(ctx context.Context, jobID uuid.UUID) (*db.BulkJob, error)
	GetLicenseByKey(ctx context.Context, key string) (*db.License, error)
	SaveItemResult(ctx context.Context, itemID uuid.UUID, resultJSON []byte) error
	MarkItemCompleted(ctx context.Context, itemID uuid.UUID) error
	MarkItemFailed(ctx context.Context, itemID uuid.UUID, errMsg string) error
	ResetItemToPending(ctx context.Context, itemID uuid.UUID, errMsg string) error
	RecomputeJobCounters(ctx context.Context, jobID uuid.UUID) error
	InsertUsageLog(ctx context.Context, apiKeyID uuid.UUID, action string, details any) error
}

// Generator produces a page for one request. *pipeline.Generator satisfies
// it.
type Generator interface {
	Generate(ctx context.Context, req types.PageRequest) (*types.PageResponse, error)
}

// Config holds worker tuning. Zero values take the defaults above.
type Config struct {
	BatchLimit  int
	Concurrency int
	RetryLimit  int
	MaxAttempts int
	StaleAfter  time.Duration
	Logger      *log.Logger
}

// Worker drains the bulk queue.
type Worker struct {
	store     Store
	generator Generator
	gate      *license.Gate
	cfg       Config
	logger    *log.Logger
}

// New creates a worker, filling config defaults.
func New(store Store, generator Generator, gate *license.Gate, cfg Config) *Worker {
	if cfg.BatchLimit <= 0 {
		cfg.BatchLimit = DefaultBatchLimit
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.RetryLimit <= 0 {
		cfg.RetryLimit = DefaultRetryLimit
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = DefaultStaleAfter
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "[worker] ", log.LstdFlags)
	}
	return &Worker{
		store:     store,
		generator: generator,
		gate:      gate,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run polls until the context is canceled. Shutdown is graceful: the loop
// exits between batches, and an in-flight generation cut off by the
// cancellation puts its item back to pending.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Printf("started batch=%d concurrency=%d", w.cfg.BatchLimit, w.cfg.Concurrency)
	lastHeartbeat := time.Now()

	for {
		if ctx.Err() != nil {
			w.logger.Printf("stopping: %v", ctx.Err())
			return nil
		}
		if time.Since(lastHeartbeat) >= heartbeatInterval {
			w.logger.Printf("heartbeat")
			lastHeartbeat = time.Now()
		}

		items, err := w.store.ListClaimableItems(ctx, w.cfg.BatchLimit)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			w.logger.Printf("poll failed: %v", err)
			w.idle(ctx)
			continue
		}
		if len(items) == 0 {
			w.idle(ctx)
			continue
		}

		var g errgroup.Group
		g.SetLimit(w.cfg.Concurrency)
		for i := range items {
			item := items[i]
			g.Go(func() error {
				w.processItem(ctx, &item)
				return nil
			})
		}
		_ = g.Wait()
	}
}

// idle sleeps 2-5 seconds or until cancellation.
func (w *Worker) idle(ctx context.Context) {
	d := time.Duration(2+rand.Intn(4)) * time.Second
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// processItem drives one polled item through claim, gating, generation, and
// status bookkeeping. Counters are recomputed after every terminal
// transition; a reset to pending is not terminal and skips the recompute.
func (w *Worker) processItem(ctx context.Context, item *db.BulkJobItem) {
	// Items the poll saw as running belong to another worker unless they
	// carry recoverable state.
	if item.Status == db.ItemStatusRunning {
		w.recoverRunning(ctx, item)
		return
	}

	if item.Attempts >= w.cfg.MaxAttempts {
		w.logger.Printf("max attempts reached item=%s job=%s idx=%d", item.ID, item.JobID, item.Idx)
		w.failItem(ctx, item, "max attempts exceeded")
		return
	}

	claimed, err := w.store.TryClaimItem(ctx, item.ID)
	if err != nil {
		w.logger.Printf("claim failed item=%s: %v", item.ID, err)
		return
	}
	if !claimed {
		// Another worker got there first.
		return
	}
	attempts := item.Attempts + 1

	job, err := w.store.GetBulkJob(ctx, item.JobID)
	if err != nil {
		w.retryOrFail(ctx, item, attempts, fmt.Sprintf("job lookup failed: %v", err))
		return
	}
	if job == nil {
		w.failItem(ctx, item, "job not found")
		return
	}
	if job.Status == db.JobStatusCanceled || job.Status == db.JobStatusFailed {
		w.failItem(ctx, item, "job "+job.Status)
		return
	}

	lic, err := w.store.GetLicenseByKey(ctx, job.LicenseKey)
	if err != nil {
		w.retryOrFail(ctx, item, attempts, fmt.Sprintf("license lookup failed: %v", err))
		return
	}
	if lic == nil || !lic.Active() {
		w.failItem(ctx, item, "license not active")
		return
	}
	decision, err := w.gate.Check(ctx, lic.APIKey.ID)
	if err != nil {
		w.retryOrFail(ctx, item, attempts, fmt.Sprintf("quota check failed: %v", err))
		return
	}
	if !decision.Allowed {
		w.failItem(ctx, item, decision.Reason)
		return
	}

	req := types.PageRequest{
		Service:      item.Service,
		City:         item.City,
		State:        item.State,
		BusinessName: item.BusinessName,
		Phone:        item.Phone,
		Email:        item.Email,
		Address:      item.Address,
		SiteURL:      job.SiteURL,
	}

	w.logger.Printf("generating item=%s job=%s idx=%d key=%s", item.ID, item.JobID, item.Idx, item.CanonicalKey)
	resp, err := w.generator.Generate(ctx, req)
	if err != nil {
		// A generation cut off by worker shutdown goes back to the queue
		// without burning the failure bookkeeping. The reset runs on a
		// detached context because the worker's own context is already
		// canceled.
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			_ = w.store.ResetItemToPending(context.WithoutCancel(ctx), item.ID, "worker shutdown during generation")
			return
		}
		w.logger.Printf("generation failed item=%s job=%s idx=%d: %v", item.ID, item.JobID, item.Idx, err)
		w.logUsage(ctx, lic.APIKey.ID, db.ActionBulkItemGenerationFailed, map[string]any{
			"job_id":        item.JobID,
			"item_id":       item.ID,
			"idx":           item.Idx,
			"canonical_key": item.CanonicalKey,
			"error":         err.Error(),
		})
		w.retryOrFail(ctx, item, attempts, err.Error())
		return
	}

	resultJSON, err := json.Marshal(resp)
	if err != nil {
		w.retryOrFail(ctx, item, attempts, fmt.Sprintf("failed to encode result: %v", err))
		return
	}

	// Result lands before the status flip so a crash in between leaves a
	// recoverable running item instead of a lost page.
	if err := w.store.SaveItemResult(ctx, item.ID, resultJSON); err != nil {
		w.retryOrFail(ctx, item, attempts, fmt.Sprintf("failed to save result: %v", err))
		return
	}
	if err := w.store.MarkItemCompleted(ctx, item.ID); err != nil {
		w.logger.Printf("completion update failed item=%s: %v", item.ID, err)
		return
	}
	w.logUsage(ctx, lic.APIKey.ID, db.ActionBulkItemGenerationSuccess, map[string]any{
		"job_id":        item.JobID,
		"item_id":       item.ID,
		"idx":           item.Idx,
		"canonical_key": item.CanonicalKey,
		"service":       item.Service,
		"city":          item.City,
		"state":         item.State,
		"title":         resp.Title,
		"slug":          resp.Slug,
	})
	w.recompute(ctx, item.JobID)
}

// recoverRunning handles items a previous worker left in running. A stored
// result means the crash hit between the result write and the completed
// flip, so finish the flip. A stale row without a result goes back to
// pending for a normal reclaim; attempts keep counting, and the
// max-attempts guard reaps rows that crash-loop.
func (w *Worker) recoverRunning(ctx context.Context, item *db.BulkJobItem) {
	if item.HasResult() {
		w.logger.Printf("finalizing recovered item=%s job=%s idx=%d", item.ID, item.JobID, item.Idx)
		if err := w.store.MarkItemCompleted(ctx, item.ID); err != nil {
			w.logger.Printf("recovery completion failed item=%s: %v", item.ID, err)
			return
		}
		w.recompute(ctx, item.JobID)
		return
	}
	if item.Attempts >= w.cfg.MaxAttempts {
		w.failItem(ctx, item, "max attempts exceeded")
		return
	}
	if time.Since(item.UpdatedAt) >= w.cfg.StaleAfter {
		w.logger.Printf("resetting stale item=%s job=%s idx=%d", item.ID, item.JobID, item.Idx)
		_ = w.store.ResetItemToPending(ctx, item.ID, "abandoned by previous worker")
	}
	// Otherwise the item is live on another worker.
}

// retryOrFail applies the uniform retry policy: only the attempts counter
// decides, never the error kind.
func (w *Worker) retryOrFail(ctx context.Context, item *db.BulkJobItem, attempts int, errMsg string) {
	if attempts < w.cfg.RetryLimit {
		if err := w.store.ResetItemToPending(ctx, item.ID, errMsg); err != nil {
			w.logger.Printf("reset failed item=%s: %v", item.ID, err)
		}
		return
	}
	w.failItem(ctx, item, errMsg)
}

// failItem marks an item failed and recomputes its job's counters.
func (w *Worker) failItem(ctx context.Context, item *db.BulkJobItem, errMsg string) {
	if err := w.store.MarkItemFailed(ctx, item.ID, errMsg); err != nil {
		w.logger.Printf("failure update failed item=%s: %v", item.ID, err)
		return
	}
	w.recompute(ctx, item.JobID)
}

func (w *Worker) recompute(ctx context.Context, jobID uuid.UUID) {
	if err := w.store.RecomputeJobCounters(ctx, jobID); err != nil {
		w.logger.Printf("recompute failed job=%s: %v", jobID, err)
	}
}

// logUsage writes an audit row, best effort.
func (w *Worker) logUsage(ctx context.Context, apiKeyID uuid.UUID, action string, details map[string]any) {
	if err := w.store.InsertUsageLog(ctx, apiKeyID, action, details); err != nil {
		w.logger.Printf("usage log failed action=%s: %v", action, err)
	}
}
