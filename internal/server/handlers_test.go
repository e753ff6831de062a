package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/parkerjr2/seogen/internal/config"
	"github.com/parkerjr2/seogen/internal/db"
	"github.com/parkerjr2/seogen/internal/license"
	"github.com/parkerjr2/seogen/internal/types"
)

// memStore is an in-memory Store implementation for handler tests. It plays
// the quota rules the same way the real store does: usage rows aggregate
// across every key on a subscription, and acknowledged items stay counted
// as completed.
type memStore struct {
	mu       sync.Mutex
	licenses map[string]*db.License
	jobs     map[uuid.UUID]*db.BulkJob
	items    map[uuid.UUID]*db.BulkJobItem
	admins   map[string]*db.AdminUser
	usage    []usageEntry
}

type usageEntry struct {
	apiKeyID uuid.UUID
	action   string
	at       time.Time
}

func newMemStore() *memStore {
	return &memStore{
		licenses: make(map[string]*db.License),
		jobs:     make(map[uuid.UUID]*db.BulkJob),
		items:    make(map[uuid.UUID]*db.BulkJobItem),
		admins:   make(map[string]*db.AdminUser),
	}
}

func (m *memStore) GetSubscriptionForKey(_ context.Context, apiKeyID uuid.UUID) (*db.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, lic := range m.licenses {
		if lic.APIKey.ID == apiKeyID {
			sub := lic.Subscription
			return &sub, nil
		}
	}
	return nil, nil
}

func (m *memStore) CountSubscriptionUsage(_ context.Context, subscriptionID uuid.UUID, actions []string) (int, error) {
	return m.countUsage(subscriptionID, actions, time.Time{}), nil
}

func (m *memStore) CountSubscriptionUsageSince(_ context.Context, subscriptionID uuid.UUID, actions []string, since time.Time) (int, error) {
	return m.countUsage(subscriptionID, actions, since), nil
}

func (m *memStore) countUsage(subscriptionID uuid.UUID, actions []string, since time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make(map[uuid.UUID]bool)
	for _, lic := range m.licenses {
		if lic.Subscription.ID == subscriptionID {
			keys[lic.APIKey.ID] = true
		}
	}
	wanted := make(map[string]bool, len(actions))
	for _, a := range actions {
		wanted[a] = true
	}

	count := 0
	for _, entry := range m.usage {
		if keys[entry.apiKeyID] && wanted[entry.action] && !entry.at.Before(since) {
			count++
		}
	}
	return count
}

func (m *memStore) GetLicenseByKey(_ context.Context, key string) (*db.License, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lic, ok := m.licenses[key]
	if !ok {
		return nil, nil
	}
	copied := *lic
	return &copied, nil
}

func (m *memStore) CreateLicense(_ context.Context, key, name string, pageLimit, monthlyLimit int) (*db.License, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	lic := &db.License{
		APIKey: db.APIKey{
			ID:        uuid.New(),
			Key:       key,
			Name:      name,
			IsActive:  true,
			CreatedAt: now,
		},
		Subscription: db.Subscription{
			ID:                     uuid.New(),
			Status:                 db.SubscriptionStatusActive,
			PageLimit:              pageLimit,
			MonthlyGenerationLimit: monthlyLimit,
			CurrentPeriodStart:     now,
			CreatedAt:              now,
			UpdatedAt:              now,
		},
	}
	lic.APIKey.SubscriptionID = lic.Subscription.ID
	m.licenses[key] = lic
	copied := *lic
	return &copied, nil
}

func (m *memStore) ListLicenses(_ context.Context) ([]db.License, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	licenses := make([]db.License, 0, len(m.licenses))
	for _, lic := range m.licenses {
		licenses = append(licenses, *lic)
	}
	sort.Slice(licenses, func(i, j int) bool {
		return licenses[i].APIKey.Key < licenses[j].APIKey.Key
	})
	return licenses, nil
}

func (m *memStore) SetAPIKeyActive(_ context.Context, apiKeyID uuid.UUID, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, lic := range m.licenses {
		if lic.APIKey.ID == apiKeyID {
			lic.APIKey.IsActive = active
		}
	}
	return nil
}

func (m *memStore) InsertUsageLog(_ context.Context, apiKeyID uuid.UUID, action string, _ any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.usage = append(m.usage, usageEntry{apiKeyID: apiKeyID, action: action, at: time.Now()})
	return nil
}

func (m *memStore) CreateBulkJob(_ context.Context, licenseKey, siteURL, jobName string, requests []types.PageRequest) (*db.BulkJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	job := &db.BulkJob{
		ID:         uuid.New(),
		LicenseKey: licenseKey,
		SiteURL:    siteURL,
		JobName:    jobName,
		Status:     db.JobStatusRunning,
		TotalItems: len(requests),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.jobs[job.ID] = job

	for i, req := range requests {
		item := &db.BulkJobItem{
			ID:           uuid.New(),
			JobID:        job.ID,
			Idx:          i,
			Service:      req.Service,
			City:         req.City,
			State:        req.State,
			BusinessName: req.BusinessName,
			Phone:        req.Phone,
			Email:        req.Email,
			Address:      req.Address,
			CanonicalKey: req.CanonicalKey(),
			Status:       db.ItemStatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		m.items[item.ID] = item
	}
	copied := *job
	return &copied, nil
}

func (m *memStore) GetBulkJob(_ context.Context, jobID uuid.UUID) (*db.BulkJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, nil
	}
	copied := *job
	return &copied, nil
}

func (m *memStore) CancelBulkJob(_ context.Context, jobID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job, ok := m.jobs[jobID]; ok {
		job.Status = db.JobStatusCanceled
		job.UpdatedAt = time.Now()
	}
	return nil
}

func (m *memStore) RecomputeJobCounters(_ context.Context, jobID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return nil
	}

	var completed, failed int
	for _, item := range m.items {
		if item.JobID != jobID {
			continue
		}
		switch item.Status {
		case db.ItemStatusCompleted, db.ItemStatusImported:
			completed++
		case db.ItemStatusFailed:
			failed++
		}
	}
	job.Processed = completed + failed
	job.Completed = completed
	job.Failed = failed
	if job.Status != db.JobStatusCanceled && job.Status != db.JobStatusFailed {
		if job.TotalItems > 0 && completed+failed >= job.TotalItems {
			job.Status = db.JobStatusComplete
		}
	}
	return nil
}

func (m *memStore) ListJobResults(_ context.Context, jobID uuid.UUID, statuses []string, cursor *int, limit int) ([]db.BulkJobItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(statuses) == 0 {
		statuses = []string{db.ItemStatusCompleted, db.ItemStatusFailed}
	}
	if limit <= 0 {
		limit = defaultResultsPageLimit
	}
	wanted := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}

	var all []db.BulkJobItem
	for _, item := range m.items {
		if item.JobID == jobID && wanted[item.Status] {
			all = append(all, *item)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Idx < all[j].Idx })

	page := func(above, below *int, n int) []db.BulkJobItem {
		var out []db.BulkJobItem
		for _, item := range all {
			if above != nil && item.Idx <= *above {
				continue
			}
			if below != nil && item.Idx >= *below {
				continue
			}
			out = append(out, item)
			if len(out) == n {
				break
			}
		}
		return out
	}

	after := page(cursor, nil, limit)
	if cursor == nil || len(after) >= limit {
		return after, nil
	}
	before := page(nil, cursor, limit-len(after))
	return append(before, after...), nil
}

func (m *memStore) MarkItemsImported(_ context.Context, jobID uuid.UUID, itemIDs []uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	imported := 0
	for _, id := range itemIDs {
		item, ok := m.items[id]
		if !ok || item.JobID != jobID || item.Status != db.ItemStatusCompleted {
			continue
		}
		item.Status = db.ItemStatusImported
		item.UpdatedAt = time.Now()
		imported++
	}
	return imported, nil
}

func (m *memStore) GetAdminUserByUsername(_ context.Context, username string) (*db.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	admin, ok := m.admins[username]
	if !ok {
		return nil, nil
	}
	copied := *admin
	return &copied, nil
}

// stubGenerator returns a scripted response and records the requests it saw.
type stubGenerator struct {
	mu           sync.Mutex
	resp         *types.PageResponse
	err          error
	generateReqs []types.PageRequest
	previewReqs  []types.PageRequest
}

func (g *stubGenerator) Generate(_ context.Context, req types.PageRequest) (*types.PageResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.generateReqs = append(g.generateReqs, req)
	if g.err != nil {
		return nil, g.err
	}
	return g.resp, nil
}

func (g *stubGenerator) Preview(_ context.Context, req types.PageRequest) (*types.PageResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.previewReqs = append(g.previewReqs, req)
	if g.err != nil {
		return nil, g.err
	}
	return g.resp, nil
}

func testPage() *types.PageResponse {
	return &types.PageResponse{
		Title:           "Gutter Repair in Tulsa, OK | Acme Roofing",
		MetaDescription: "Professional gutter repair in Tulsa, OK. Call Acme Roofing today.",
		Slug:            "gutter-repair-tulsa",
		Blocks: []types.ContentBlock{
			types.Heading{Level: 1, Text: "Gutter Repair in Tulsa, OK"},
			types.Paragraph{Text: "Acme Roofing repairs gutters across Tulsa."},
		},
	}
}

// newTestServer builds a server over the in-memory store without reading the
// environment.
func newTestServer(store *memStore, generator PageGenerator) *Server {
	return &Server{
		store:     store,
		generator: generator,
		gate:      license.NewGate(store),
		validate:  validator.New(),
		jwtService: NewJWTService(&config.JWTConfig{
			Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
			ExpirationHours: 1,
		}),
		passwords: &config.PasswordConfig{BcryptCost: 10},
	}
}

func seedLicense(store *memStore, key string, pageLimit, monthlyLimit int, active bool) *db.License {
	now := time.Now()
	lic := &db.License{
		APIKey: db.APIKey{
			ID:        uuid.New(),
			Key:       key,
			IsActive:  active,
			CreatedAt: now,
		},
		Subscription: db.Subscription{
			ID:                     uuid.New(),
			Status:                 db.SubscriptionStatusActive,
			PageLimit:              pageLimit,
			MonthlyGenerationLimit: monthlyLimit,
			CurrentPeriodStart:     now.Add(-24 * time.Hour),
			CreatedAt:              now,
			UpdatedAt:              now,
		},
	}
	if !active {
		lic.Subscription.Status = db.SubscriptionStatusCanceled
	}
	lic.APIKey.SubscriptionID = lic.Subscription.ID

	store.mu.Lock()
	store.licenses[key] = lic
	store.mu.Unlock()
	return lic
}

func seedTerminalItems(t *testing.T, store *memStore, licenseKey string, statuses []string) *db.BulkJob {
	t.Helper()

	requests := make([]types.PageRequest, len(statuses))
	for i := range statuses {
		requests[i] = types.PageRequest{Service: "Gutter Repair", City: "Tulsa", State: "OK"}
	}
	job, err := store.CreateBulkJob(context.Background(), licenseKey, "", "", requests)
	require.NoError(t, err)

	store.mu.Lock()
	for _, item := range store.items {
		if item.JobID != job.ID {
			continue
		}
		item.Status = statuses[item.Idx]
		if item.Status == db.ItemStatusCompleted || item.Status == db.ItemStatusImported {
			item.ResultJSON = json.RawMessage(`{"title":"t","meta_description":"m","slug":"s","blocks":[]}`)
		}
	}
	store.mu.Unlock()

	require.NoError(t, store.RecomputeJobCounters(context.Background(), job.ID))
	return job
}

// doJSON routes a request through the real mux so path values bind.
func doJSON(t *testing.T, s *Server, method, target string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Set(k, v)
		}
	}
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(out))
}
