package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/parkerjr2/seogen/internal/db"
	"github.com/parkerjr2/seogen/internal/license"
	"github.com/parkerjr2/seogen/internal/types"
)

// GeneratePageRequest represents the request body for /generate-page
type GeneratePageRequest struct {
	LicenseKey string            `json:"licenseKey" validate:"required"`
	Data       types.PageRequest `json:"data"`
	Preview    bool              `json:"preview,omitempty"`
}

// GeneratePageResponse represents the response for /generate-page
type GeneratePageResponse struct {
	Page  *types.PageResponse `json:"page"`
	Usage *license.Stats      `json:"usage,omitempty"`
}

// handleGeneratePage runs one synchronous page generation. Preview requests
// run the same loop on the shorter timeout and skip the success usage log,
// so previews never consume quota.
func (s *Server) handleGeneratePage(w http.ResponseWriter, r *http.Request) {
	var req GeneratePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if err := validatePageData(req.Data); err != nil {
		s.handleError(w, err)
		return
	}

	lic, err := s.lookupLicense(r.Context(), req.LicenseKey)
	if err != nil {
		s.handleError(w, err)
		return
	}

	decision, err := s.gate.Check(r.Context(), lic.APIKey.ID)
	if err != nil {
		s.handleError(w, fmt.Errorf("failed to check quota: %w", err))
		return
	}
	if !decision.Allowed {
		s.handleError(w, &ErrQuotaExceeded{Reason: decision.Reason, Stats: decision.Stats})
		return
	}

	var resp *types.PageResponse
	if req.Preview {
		resp, err = s.generator.Preview(r.Context(), req.Data)
	} else {
		resp, err = s.generator.Generate(r.Context(), req.Data)
	}
	if err != nil {
		s.logUsage(r.Context(), lic.APIKey.ID, db.ActionPageGenerationFailed, map[string]any{
			"canonical_key": req.Data.CanonicalKey(),
			"error":         err.Error(),
		})
		s.handleError(w, err)
		return
	}

	if !req.Preview {
		s.logUsage(r.Context(), lic.APIKey.ID, db.ActionPageGenerationSuccess, map[string]any{
			"canonical_key": req.Data.CanonicalKey(),
			"service":       req.Data.Service,
			"city":          req.Data.City,
			"state":         req.Data.State,
			"title":         resp.Title,
			"slug":          resp.Slug,
		})
	}

	s.jsonResponse(w, http.StatusOK, GeneratePageResponse{
		Page:  resp,
		Usage: s.usageStats(r, lic.APIKey.ID, decision),
	})
}

// usageStats re-reads the counters so the response reflects the generation
// just logged, falling back to the pre-check snapshot on error.
func (s *Server) usageStats(r *http.Request, apiKeyID uuid.UUID, pre *license.Decision) *license.Stats {
	decision, err := s.gate.Check(r.Context(), apiKeyID)
	if err != nil {
		return &pre.Stats
	}
	return &decision.Stats
}

// validatePageData checks the mode-dependent required fields. Service+city
// pages need both names; hub pages only need the axis they pivot on.
func validatePageData(data types.PageRequest) error {
	switch data.Mode() {
	case types.ModeServiceHub:
		if data.Service == "" && data.HubLabel == "" {
			return &ErrValidation{Field: "data.service", Message: "is required for service hub pages"}
		}
	case types.ModeCityHub:
		if data.City == "" {
			return &ErrValidation{Field: "data.city", Message: "is required for city hub pages"}
		}
	default:
		if data.Service == "" {
			return &ErrValidation{Field: "data.service", Message: "is required"}
		}
		if data.City == "" {
			return &ErrValidation{Field: "data.city", Message: "is required"}
		}
	}
	return nil
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
