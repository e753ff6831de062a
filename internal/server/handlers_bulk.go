package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/parkerjr2/seogen/internal/db"
	"github.com/parkerjr2/seogen/internal/types"
)

// Results pagination bounds.
const (
	defaultResultsPageLimit = 20
	maxResultsPageLimit     = 100
)

// BulkItemRequest is one service+city page inside a bulk job request.
type BulkItemRequest struct {
	Service      string `json:"service" validate:"required"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	Address      string `json:"address,omitempty"`
}

// CreateBulkJobRequest represents the request body for POST /bulk-jobs
type CreateBulkJobRequest struct {
	LicenseKey string            `json:"licenseKey" validate:"required"`
	SiteURL    string            `json:"siteUrl,omitempty" validate:"omitempty,url"`
	JobName    string            `json:"jobName,omitempty"`
	Items      []BulkItemRequest `json:"items" validate:"required,min=1,max=500,dive"`
}

// CreateBulkJobResponse represents the response for POST /bulk-jobs
type CreateBulkJobResponse struct {
	JobID      uuid.UUID `json:"jobId"`
	TotalItems int       `json:"totalItems"`
}

// JobResultsResponse pages a job's terminal items. NextCursor is the highest
// idx in the page; clients pass it back to continue.
type JobResultsResponse struct {
	Items      []db.BulkJobItem `json:"items"`
	NextCursor *int             `json:"nextCursor,omitempty"`
}

// AckResultsRequest represents the request body for POST /bulk-jobs/{id}/ack
type AckResultsRequest struct {
	ImportedItemIDs []uuid.UUID `json:"importedItemIds" validate:"required,min=1"`
}

// AckResultsResponse reports how many items actually flipped to imported.
type AckResultsResponse struct {
	Imported int `json:"imported"`
}

// handleCreateBulkJob queues a bulk generation job. The license is checked
// up front so a dead key fails fast instead of failing every item.
func (s *Server) handleCreateBulkJob(w http.ResponseWriter, r *http.Request) {
	var req CreateBulkJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if _, err := s.lookupLicense(r.Context(), req.LicenseKey); err != nil {
		s.handleError(w, err)
		return
	}

	requests := make([]types.PageRequest, len(req.Items))
	for i, item := range req.Items {
		requests[i] = types.PageRequest{
			Service:      item.Service,
			City:         item.City,
			State:        item.State,
			BusinessName: item.BusinessName,
			Phone:        item.Phone,
			Email:        item.Email,
			Address:      item.Address,
		}
	}

	job, err := s.store.CreateBulkJob(r.Context(), req.LicenseKey, req.SiteURL, req.JobName, requests)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusAccepted, CreateBulkJobResponse{
		JobID:      job.ID,
		TotalItems: job.TotalItems,
	})
}

// handleGetBulkJob returns a job's status and counters.
func (s *Server) handleGetBulkJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobFromRequest(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleJobResults pages a job's terminal items by idx. The store reads
// above the cursor first and rescans below it when the page comes back
// short, so items that completed out of order are never skipped.
func (s *Server) handleJobResults(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobFromRequest(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	statuses, err := parseStatusFilter(r.URL.Query().Get("status"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	cursor, err := parseCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		s.handleError(w, err)
		return
	}

	items, err := s.store.ListJobResults(r.Context(), job.ID, statuses, cursor, limit)
	if err != nil {
		s.handleError(w, err)
		return
	}

	resp := JobResultsResponse{Items: items}
	if len(items) > 0 {
		// The above-cursor half sits last, so the final item carries the
		// highest idx of the page.
		next := items[len(items)-1].Idx
		resp.NextCursor = &next
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAckResults flips delivered items from completed to imported and
// reports the real number of rows that changed. Repeating an ack or acking
// a failed item affects zero rows.
func (s *Server) handleAckResults(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobFromRequest(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	var req AckResultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	imported, err := s.store.MarkItemsImported(r.Context(), job.ID, req.ImportedItemIDs)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if err := s.store.RecomputeJobCounters(r.Context(), job.ID); err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, AckResultsResponse{Imported: imported})
}

// handleCancelBulkJob marks a job canceled. In-flight items notice at their
// next decision point; the cancel itself returns immediately.
func (s *Server) handleCancelBulkJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobFromRequest(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	if err := s.store.CancelBulkJob(r.Context(), job.ID); err != nil {
		s.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// jobFromRequest resolves the {id} path value and authorizes the request's
// licenseKey query parameter against the job's license.
func (s *Server) jobFromRequest(r *http.Request) (*db.BulkJob, error) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return nil, &ErrValidation{Field: "id", Message: "must be a valid UUID"}
	}

	key := r.URL.Query().Get("licenseKey")
	if key == "" {
		return nil, &ErrValidation{Field: "licenseKey", Message: "query parameter is required"}
	}

	job, err := s.store.GetBulkJob(r.Context(), jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bulk job: %w", err)
	}
	if job == nil {
		return nil, &ErrJobNotFound{JobID: jobID}
	}
	if job.LicenseKey != key {
		return nil, &ErrJobLicenseMismatch{}
	}
	return job, nil
}

// parseStatusFilter parses the comma-separated status query parameter. An
// empty filter falls through to the store's default of completed+failed.
func parseStatusFilter(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}

	valid := map[string]bool{
		db.ItemStatusPending:   true,
		db.ItemStatusRunning:   true,
		db.ItemStatusCompleted: true,
		db.ItemStatusFailed:    true,
		db.ItemStatusImported:  true,
	}

	var statuses []string
	for _, status := range strings.Split(raw, ",") {
		status = strings.TrimSpace(status)
		if status == "" {
			continue
		}
		if !valid[status] {
			return nil, &ErrValidation{Field: "status", Message: "unknown status: " + status}
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func parseCursor(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	cursor, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &ErrValidation{Field: "cursor", Message: "must be an integer"}
	}
	return &cursor, nil
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultResultsPageLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ErrValidation{Field: "limit", Message: "must be an integer"}
	}
	if limit <= 0 {
		return defaultResultsPageLimit, nil
	}
	if limit > maxResultsPageLimit {
		return maxResultsPageLimit, nil
	}
	return limit, nil
}
