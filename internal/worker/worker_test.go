package worker

import (
	"context"
	"errors"
	"io"
	"log"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkerjr2/seogen/internal/db"
	"github.com/parkerjr2/seogen/internal/license"
	"github.com/parkerjr2/seogen/internal/types"
)

// memStore implements Store and license.Store with the same transition
// semantics as the real queries, guarded by one mutex so claim exclusivity
// holds under concurrent callers.
type memStore struct {
	mu       sync.Mutex
	jobs     map[uuid.UUID]*db.BulkJob
	items    map[uuid.UUID]*db.BulkJobItem
	licenses map[string]*db.License
	usage    []usageEntry

	pollCount int
	pollHook  func(count int)
}

type usageEntry struct {
	apiKeyID uuid.UUID
	action   string
	at       time.Time
}

func newMemStore() *memStore {
	return &memStore{
		jobs:     map[uuid.UUID]*db.BulkJob{},
		items:    map[uuid.UUID]*db.BulkJobItem{},
		licenses: map[string]*db.License{},
	}
}

func (s *memStore) ListClaimableItems(ctx context.Context, limit int) ([]db.BulkJobItem, error) {
	s.mu.Lock()
	var out []db.BulkJobItem
	for _, item := range s.items {
		if item.Status == db.ItemStatusPending || item.Status == db.ItemStatusRunning {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Idx < out[j].Idx
	})
	if len(out) > limit {
		out = out[:limit]
	}
	s.pollCount++
	count := s.pollCount
	hook := s.pollHook
	s.mu.Unlock()

	if hook != nil {
		hook(count)
	}
	return out, nil
}

func (s *memStore) TryClaimItem(ctx context.Context, itemID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[itemID]
	if !ok || item.Status != db.ItemStatusPending {
		return false, nil
	}
	item.Status = db.ItemStatusRunning
	item.Attempts++
	item.UpdatedAt = time.Now()
	return true, nil
}

func (s *memStore) GetBulkJob(ctx context.Context, jobID uuid.UUID) (*db.BulkJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, nil
	}
	copied := *job
	return &copied, nil
}

func (s *memStore) GetLicenseByKey(ctx context.Context, key string) (*db.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lic, ok := s.licenses[key]
	if !ok {
		return nil, nil
	}
	copied := *lic
	return &copied, nil
}

func (s *memStore) SaveItemResult(ctx context.Context, itemID uuid.UUID, resultJSON []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[itemID].ResultJSON = resultJSON
	s.items[itemID].UpdatedAt = time.Now()
	return nil
}

func (s *memStore) MarkItemCompleted(ctx context.Context, itemID uuid.UUID) error {
	return s.setStatus(itemID, db.ItemStatusCompleted, "")
}

func (s *memStore) MarkItemFailed(ctx context.Context, itemID uuid.UUID, errMsg string) error {
	return s.setStatus(itemID, db.ItemStatusFailed, errMsg)
}

func (s *memStore) ResetItemToPending(ctx context.Context, itemID uuid.UUID, errMsg string) error {
	return s.setStatus(itemID, db.ItemStatusPending, errMsg)
}

func (s *memStore) setStatus(itemID uuid.UUID, status, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := s.items[itemID]
	item.Status = status
	if errMsg != "" {
		item.Error = errMsg
	}
	item.UpdatedAt = time.Now()
	return nil
}

func (s *memStore) RecomputeJobCounters(ctx context.Context, jobID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return errors.New("job not found")
	}
	processed, completed, failed := 0, 0, 0
	for _, item := range s.items {
		if item.JobID != jobID {
			continue
		}
		switch item.Status {
		case db.ItemStatusCompleted, db.ItemStatusImported:
			processed++
			completed++
		case db.ItemStatusFailed:
			processed++
			failed++
		}
	}
	job.Processed, job.Completed, job.Failed = processed, completed, failed
	if job.Status != db.JobStatusCanceled && job.Status != db.JobStatusFailed {
		if job.TotalItems > 0 && completed+failed >= job.TotalItems {
			job.Status = db.JobStatusComplete
		} else {
			job.Status = db.JobStatusRunning
		}
	}
	return nil
}

func (s *memStore) InsertUsageLog(ctx context.Context, apiKeyID uuid.UUID, action string, details any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage = append(s.usage, usageEntry{apiKeyID: apiKeyID, action: action, at: time.Now()})
	return nil
}

func (s *memStore) GetSubscriptionForKey(ctx context.Context, apiKeyID uuid.UUID) (*db.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, lic := range s.licenses {
		if lic.APIKey.ID == apiKeyID {
			sub := lic.Subscription
			return &sub, nil
		}
	}
	return nil, nil
}

func (s *memStore) CountSubscriptionUsage(ctx context.Context, subscriptionID uuid.UUID, actions []string) (int, error) {
	return s.countUsage(subscriptionID, actions, time.Time{}), nil
}

func (s *memStore) CountSubscriptionUsageSince(ctx context.Context, subscriptionID uuid.UUID, actions []string, since time.Time) (int, error) {
	return s.countUsage(subscriptionID, actions, since), nil
}

func (s *memStore) countUsage(subscriptionID uuid.UUID, actions []string, since time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := map[uuid.UUID]bool{}
	for _, lic := range s.licenses {
		if lic.Subscription.ID == subscriptionID {
			keys[lic.APIKey.ID] = true
		}
	}
	count := 0
	for _, entry := range s.usage {
		if !keys[entry.apiKeyID] {
			continue
		}
		if !since.IsZero() && entry.at.Before(since) {
			continue
		}
		for _, action := range actions {
			if entry.action == action {
				count++
				break
			}
		}
	}
	return count
}

func (s *memStore) usageActions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var actions []string
	for _, entry := range s.usage {
		actions = append(actions, entry.action)
	}
	return actions
}

func (s *memStore) item(id uuid.UUID) db.BulkJobItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.items[id]
}

func (s *memStore) job(id uuid.UUID) db.BulkJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.jobs[id]
}

// stubGenerator scripts generation outcomes and records requests.
type stubGenerator struct {
	mu    sync.Mutex
	resp  *types.PageResponse
	err   error
	calls []types.PageRequest
}

func (g *stubGenerator) Generate(ctx context.Context, req types.PageRequest) (*types.PageResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, req)
	if g.err != nil {
		return nil, g.err
	}
	return g.resp, nil
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func seedLicense(s *memStore, key string, pageLimit, monthlyLimit int, active bool) *db.License {
	status := db.SubscriptionStatusActive
	if !active {
		status = db.SubscriptionStatusCanceled
	}
	lic := &db.License{}
	lic.Subscription = db.Subscription{
		ID:                     uuid.New(),
		Status:                 status,
		PageLimit:              pageLimit,
		MonthlyGenerationLimit: monthlyLimit,
		CurrentPeriodStart:     time.Now().Add(-24 * time.Hour),
	}
	lic.APIKey = db.APIKey{
		ID:             uuid.New(),
		Key:            key,
		SubscriptionID: lic.Subscription.ID,
		IsActive:       active,
	}
	s.licenses[key] = lic
	return lic
}

func seedJobWithItem(s *memStore, licenseKey, siteURL string) (*db.BulkJob, *db.BulkJobItem) {
	job := &db.BulkJob{
		ID:         uuid.New(),
		LicenseKey: licenseKey,
		SiteURL:    siteURL,
		Status:     db.JobStatusRunning,
		TotalItems: 1,
		CreatedAt:  time.Now(),
	}
	item := &db.BulkJobItem{
		ID:           uuid.New(),
		JobID:        job.ID,
		Idx:          0,
		Service:      "Gutter Repair",
		City:         "Tulsa",
		State:        "OK",
		BusinessName: "Acme Roofing",
		Phone:        "555-1234",
		CanonicalKey: "gutter repair|tulsa|ok",
		Status:       db.ItemStatusPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.jobs[job.ID] = job
	s.items[item.ID] = item
	return job, item
}

func newTestWorker(s *memStore, gen Generator) *Worker {
	return New(s, gen, license.NewGate(s), Config{
		Logger: log.New(io.Discard, "", 0),
	})
}

func testResponse() *types.PageResponse {
	return &types.PageResponse{
		Title:           "Gutter Repair in Tulsa, OK | Acme Roofing",
		MetaDescription: "Gutter repair in Tulsa, OK.",
		Slug:            "gutter-repair-tulsa",
	}
}

func TestProcessItem_Success(t *testing.T) {
	store := newMemStore()
	seedLicense(store, "key-1", 100, 25, true)
	job, item := seedJobWithItem(store, "key-1", "https://acmeroofing.example.com")
	gen := &stubGenerator{resp: testResponse()}
	w := newTestWorker(store, gen)

	listing := store.item(item.ID)
	w.processItem(context.Background(), &listing)

	got := store.item(item.ID)
	assert.Equal(t, db.ItemStatusCompleted, got.Status)
	assert.True(t, got.HasResult())
	assert.Equal(t, 1, got.Attempts)

	gotJob := store.job(job.ID)
	assert.Equal(t, db.JobStatusComplete, gotJob.Status)
	assert.Equal(t, 1, gotJob.Completed)
	assert.Equal(t, 0, gotJob.Failed)

	require.Equal(t, 1, gen.callCount())
	assert.Equal(t, "https://acmeroofing.example.com", gen.calls[0].SiteURL)
	assert.Equal(t, "Gutter Repair", gen.calls[0].Service)

	assert.Equal(t, []string{db.ActionBulkItemGenerationSuccess}, store.usageActions())
}

func TestProcessItem_RetryThenFail(t *testing.T) {
	store := newMemStore()
	seedLicense(store, "key-1", 100, 25, true)
	job, item := seedJobWithItem(store, "key-1", "")
	gen := &stubGenerator{err: errors.New("rate limit exceeded")}
	w := newTestWorker(store, gen)

	// First attempt resets to pending with the error on record.
	listing := store.item(item.ID)
	w.processItem(context.Background(), &listing)

	got := store.item(item.ID)
	assert.Equal(t, db.ItemStatusPending, got.Status)
	assert.Equal(t, 1, got.Attempts)
	assert.Equal(t, "rate limit exceeded", got.Error)
	assert.Equal(t, db.JobStatusRunning, store.job(job.ID).Status)

	// Second attempt exhausts the retry limit.
	listing = store.item(item.ID)
	w.processItem(context.Background(), &listing)

	got = store.item(item.ID)
	assert.Equal(t, db.ItemStatusFailed, got.Status)
	assert.Equal(t, 2, got.Attempts)

	gotJob := store.job(job.ID)
	assert.Equal(t, db.JobStatusComplete, gotJob.Status)
	assert.Equal(t, 1, gotJob.Failed)

	assert.Equal(t, 2, gen.callCount())
	assert.Equal(t, []string{db.ActionBulkItemGenerationFailed, db.ActionBulkItemGenerationFailed}, store.usageActions())
}

func TestProcessItem_LostClaimIsSilent(t *testing.T) {
	store := newMemStore()
	seedLicense(store, "key-1", 100, 25, true)
	_, item := seedJobWithItem(store, "key-1", "")
	gen := &stubGenerator{resp: testResponse()}
	w := newTestWorker(store, gen)

	// Another worker claims between the poll and this processItem call.
	stale := store.item(item.ID)
	claimed, err := store.TryClaimItem(context.Background(), item.ID)
	require.NoError(t, err)
	require.True(t, claimed)

	w.processItem(context.Background(), &stale)

	got := store.item(item.ID)
	assert.Equal(t, db.ItemStatusRunning, got.Status)
	assert.Equal(t, 1, got.Attempts)
	assert.Zero(t, gen.callCount())
	assert.Empty(t, store.usageActions())
}

func TestProcessItem_CanceledJobFailsItem(t *testing.T) {
	store := newMemStore()
	seedLicense(store, "key-1", 100, 25, true)
	job, item := seedJobWithItem(store, "key-1", "")
	store.jobs[job.ID].Status = db.JobStatusCanceled
	gen := &stubGenerator{resp: testResponse()}
	w := newTestWorker(store, gen)

	listing := store.item(item.ID)
	w.processItem(context.Background(), &listing)

	got := store.item(item.ID)
	assert.Equal(t, db.ItemStatusFailed, got.Status)
	assert.Equal(t, "job canceled", got.Error)
	assert.Zero(t, gen.callCount())

	// Recompute must not resurrect the canceled job.
	assert.Equal(t, db.JobStatusCanceled, store.job(job.ID).Status)
}

func TestProcessItem_MissingJobFailsItem(t *testing.T) {
	store := newMemStore()
	seedLicense(store, "key-1", 100, 25, true)
	job, item := seedJobWithItem(store, "key-1", "")
	delete(store.jobs, job.ID)
	gen := &stubGenerator{resp: testResponse()}
	w := newTestWorker(store, gen)

	listing := store.item(item.ID)
	w.processItem(context.Background(), &listing)

	assert.Equal(t, db.ItemStatusFailed, store.item(item.ID).Status)
	assert.Equal(t, "job not found", store.item(item.ID).Error)
	assert.Zero(t, gen.callCount())
}

func TestProcessItem_InactiveLicense(t *testing.T) {
	store := newMemStore()
	seedLicense(store, "key-1", 100, 25, false)
	_, item := seedJobWithItem(store, "key-1", "")
	gen := &stubGenerator{resp: testResponse()}
	w := newTestWorker(store, gen)

	listing := store.item(item.ID)
	w.processItem(context.Background(), &listing)

	got := store.item(item.ID)
	assert.Equal(t, db.ItemStatusFailed, got.Status)
	assert.Equal(t, "license not active", got.Error)
	assert.Zero(t, gen.callCount())
}

func TestProcessItem_QuotaExhaustedSkipsGeneration(t *testing.T) {
	store := newMemStore()
	lic := seedLicense(store, "key-1", 100, 1, true)
	_, item := seedJobWithItem(store, "key-1", "")
	require.NoError(t, store.InsertUsageLog(context.Background(), lic.APIKey.ID, db.ActionBulkItemGenerationSuccess, nil))
	gen := &stubGenerator{resp: testResponse()}
	w := newTestWorker(store, gen)

	listing := store.item(item.ID)
	w.processItem(context.Background(), &listing)

	got := store.item(item.ID)
	assert.Equal(t, db.ItemStatusFailed, got.Status)
	assert.Equal(t, license.ReasonMonthlyLimit, got.Error)
	assert.Zero(t, gen.callCount())
}

func TestProcessItem_MaxAttemptsGuard(t *testing.T) {
	store := newMemStore()
	seedLicense(store, "key-1", 100, 25, true)
	job, item := seedJobWithItem(store, "key-1", "")
	store.items[item.ID].Attempts = 3
	gen := &stubGenerator{resp: testResponse()}
	w := newTestWorker(store, gen)

	listing := store.item(item.ID)
	w.processItem(context.Background(), &listing)

	got := store.item(item.ID)
	assert.Equal(t, db.ItemStatusFailed, got.Status)
	assert.Equal(t, "max attempts exceeded", got.Error)
	assert.Equal(t, 3, got.Attempts)
	assert.Zero(t, gen.callCount())
	assert.Equal(t, db.JobStatusComplete, store.job(job.ID).Status)
}

func TestProcessItem_FinalizesRecoveredResult(t *testing.T) {
	store := newMemStore()
	seedLicense(store, "key-1", 100, 25, true)
	job, item := seedJobWithItem(store, "key-1", "")
	store.items[item.ID].Status = db.ItemStatusRunning
	store.items[item.ID].Attempts = 1
	store.items[item.ID].ResultJSON = []byte(`{"title": "Gutter Repair in Tulsa, OK"}`)
	gen := &stubGenerator{resp: testResponse()}
	w := newTestWorker(store, gen)

	listing := store.item(item.ID)
	w.processItem(context.Background(), &listing)

	got := store.item(item.ID)
	assert.Equal(t, db.ItemStatusCompleted, got.Status)
	assert.Zero(t, gen.callCount())
	assert.Equal(t, db.JobStatusComplete, store.job(job.ID).Status)
}

func TestProcessItem_ResetsStaleRunningItem(t *testing.T) {
	store := newMemStore()
	seedLicense(store, "key-1", 100, 25, true)
	_, item := seedJobWithItem(store, "key-1", "")
	store.items[item.ID].Status = db.ItemStatusRunning
	store.items[item.ID].Attempts = 1
	store.items[item.ID].UpdatedAt = time.Now().Add(-15 * time.Minute)
	gen := &stubGenerator{resp: testResponse()}
	w := newTestWorker(store, gen)

	listing := store.item(item.ID)
	w.processItem(context.Background(), &listing)

	got := store.item(item.ID)
	assert.Equal(t, db.ItemStatusPending, got.Status)
	assert.Equal(t, "abandoned by previous worker", got.Error)
	assert.Zero(t, gen.callCount())
}

func TestProcessItem_LeavesFreshRunningItemAlone(t *testing.T) {
	store := newMemStore()
	seedLicense(store, "key-1", 100, 25, true)
	_, item := seedJobWithItem(store, "key-1", "")
	store.items[item.ID].Status = db.ItemStatusRunning
	store.items[item.ID].Attempts = 1
	gen := &stubGenerator{resp: testResponse()}
	w := newTestWorker(store, gen)

	listing := store.item(item.ID)
	w.processItem(context.Background(), &listing)

	assert.Equal(t, db.ItemStatusRunning, store.item(item.ID).Status)
	assert.Zero(t, gen.callCount())
}

func TestTryClaimItem_Exclusive(t *testing.T) {
	store := newMemStore()
	seedLicense(store, "key-1", 100, 25, true)
	_, item := seedJobWithItem(store, "key-1", "")

	const claimants = 10
	var wg sync.WaitGroup
	wins := make(chan bool, claimants)
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			claimed, err := store.TryClaimItem(context.Background(), item.ID)
			assert.NoError(t, err)
			wins <- claimed
		}()
	}
	wg.Wait()
	close(wins)

	winners := 0
	for claimed := range wins {
		if claimed {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, store.item(item.ID).Attempts)
}

func TestRun_ProcessesBatchAndStopsOnCancel(t *testing.T) {
	store := newMemStore()
	seedLicense(store, "key-1", 100, 25, true)
	_, item := seedJobWithItem(store, "key-1", "")
	gen := &stubGenerator{resp: testResponse()}
	w := newTestWorker(store, gen)

	ctx, cancel := context.WithCancel(context.Background())
	store.pollHook = func(count int) {
		if count >= 2 {
			cancel()
		}
	}

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}

	assert.Equal(t, db.ItemStatusCompleted, store.item(item.ID).Status)
	assert.Equal(t, 1, gen.callCount())
}
