package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Bulk job statuses. A job starts running and ends complete once every item
// reaches a terminal status; canceled and failed are sticky and never
// overwritten by the counter recompute.
const (
	JobStatusRunning  = "running"
	JobStatusComplete = "complete"
	JobStatusCanceled = "canceled"
	JobStatusFailed   = "failed"
)

// Bulk item statuses. Pending items are claimable; imported is terminal and
// only ever reached from completed via the import acknowledgement.
const (
	ItemStatusPending   = "pending"
	ItemStatusRunning   = "running"
	ItemStatusCompleted = "completed"
	ItemStatusFailed    = "failed"
	ItemStatusImported  = "imported"
)

// BulkJob tracks one bulk generation request and its aggregate counters.
// The counters are recomputed from item statuses, never incremented.
type BulkJob struct {
	ID         uuid.UUID `json:"id"`
	LicenseKey string    `json:"license_key"`
	SiteURL    string    `json:"site_url,omitempty"`
	JobName    string    `json:"job_name,omitempty"`
	Status     string    `json:"status"`
	TotalItems int       `json:"total_items"`
	Processed  int       `json:"processed"`
	Completed  int       `json:"completed"`
	Failed     int       `json:"failed"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BulkJobItem is one (service, city) page inside a bulk job. Idx is the
// stable ordering key assigned at creation; CanonicalKey is the dedup key
// `lower(service)|lower(city)|lower(state)`.
type BulkJobItem struct {
	ID           uuid.UUID       `json:"id"`
	JobID        uuid.UUID       `json:"job_id"`
	Idx          int             `json:"idx"`
	Service      string          `json:"service"`
	City         string          `json:"city"`
	State        string          `json:"state"`
	BusinessName string          `json:"business_name,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Email        string          `json:"email,omitempty"`
	Address      string          `json:"address,omitempty"`
	CanonicalKey string          `json:"canonical_key"`
	Status       string          `json:"status"`
	Attempts     int             `json:"attempts"`
	ResultJSON   json.RawMessage `json:"result_json,omitempty"`
	Error        string          `json:"error,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// HasResult reports whether a result payload was persisted for the item.
// A running item with a result is the recoverable crash window between the
// result write and the completed status write.
func (i *BulkJobItem) HasResult() bool {
	return len(i.ResultJSON) > 0
}

// jobCounters derives the aggregate counters from item statuses. Processed
// counts every terminal item, completed includes imported ones, failed
// counts only failures.
func jobCounters(statuses []string) (processed, completed, failed int) {
	for _, s := range statuses {
		switch s {
		case ItemStatusCompleted, ItemStatusImported:
			processed++
			completed++
		case ItemStatusFailed:
			processed++
			failed++
		}
	}
	return processed, completed, failed
}

// deriveJobStatus returns the job status implied by the counters, keeping
// sticky statuses. Zero-item jobs stay running.
func deriveJobStatus(current string, totalItems, completed, failed int) string {
	if current == JobStatusCanceled || current == JobStatusFailed {
		return current
	}
	if totalItems > 0 && completed+failed >= totalItems {
		return JobStatusComplete
	}
	return JobStatusRunning
}

// chunkIDs splits ids into runs of at most size, for batched updates.
func chunkIDs(ids []uuid.UUID, size int) [][]uuid.UUID {
	if size <= 0 || len(ids) == 0 {
		return nil
	}
	chunks := make([][]uuid.UUID, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
