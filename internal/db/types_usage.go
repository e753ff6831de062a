package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Usage log actions. The two success actions are the ones quota enforcement
// counts.
const (
	ActionPageGenerationSuccess     = "ai_page_generation_success"
	ActionPageGenerationFailed      = "ai_page_generation_failed"
	ActionBulkItemGenerationSuccess = "bulk_item_generation_success"
	ActionBulkItemGenerationFailed  = "bulk_item_generation_failed"
)

// QuotaActions are the usage actions that consume generation quota.
var QuotaActions = []string{
	ActionPageGenerationSuccess,
	ActionBulkItemGenerationSuccess,
}

// UsageLog is one append-only audit row. Details is free-form JSON; on a
// success it carries the generated page's identifying fields, on a failure
// the error text.
type UsageLog struct {
	ID        uuid.UUID       `json:"id"`
	APIKeyID  uuid.UUID       `json:"api_key_id"`
	Action    string          `json:"action"`
	Details   json.RawMessage `json:"details,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// AdminUser can mint and inspect licenses through the admin endpoints.
type AdminUser struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SiteSnapshot caches extracted text from a business site so one fetch
// serves a whole bulk job.
type SiteSnapshot struct {
	ID        uuid.UUID `json:"id"`
	SiteURL   string    `json:"site_url"`
	Content   string    `json:"content"`
	FetchedAt time.Time `json:"fetched_at"`
}

// IsFresh reports whether the snapshot is younger than maxAge.
func (s *SiteSnapshot) IsFresh(maxAge time.Duration) bool {
	return time.Since(s.FetchedAt) < maxAge
}
