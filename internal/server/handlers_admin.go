package server

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/parkerjr2/seogen/internal/db"
	"github.com/parkerjr2/seogen/internal/license"
	"github.com/parkerjr2/seogen/internal/server/middleware"
)

// LoginRequest represents the request body for /auth/login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued admin token.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreateLicenseRequest represents the request body for POST /admin/licenses.
// Zero limits mean unlimited.
type CreateLicenseRequest struct {
	Name         string `json:"name,omitempty"`
	PageLimit    int    `json:"pageLimit" validate:"min=0"`
	MonthlyLimit int    `json:"monthlyLimit" validate:"min=0"`
}

// LicenseResponse is a license plus its current usage snapshot.
type LicenseResponse struct {
	License *db.License    `json:"license"`
	Usage   *license.Stats `json:"usage,omitempty"`
}

// handleLogin authenticates an admin user and issues a JWT.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	admin, err := s.store.GetAdminUserByUsername(r.Context(), req.Username)
	if err != nil {
		s.handleError(w, fmt.Errorf("failed to look up admin user: %w", err))
		return
	}
	// Same generic error for unknown users and wrong passwords.
	if admin == nil || !s.passwords.VerifyPassword(req.Password, admin.PasswordHash) {
		s.handleError(w, &ErrInvalidCredentials{})
		return
	}

	token, err := s.jwtService.GenerateToken(admin.ID)
	if err != nil {
		s.handleError(w, fmt.Errorf("failed to generate token: %w", err))
		return
	}

	s.jsonResponse(w, http.StatusOK, LoginResponse{Token: token})
}

// handleCreateLicense mints a subscription and its first API key.
func (s *Server) handleCreateLicense(w http.ResponseWriter, r *http.Request) {
	var req CreateLicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	key, err := MintLicenseKey()
	if err != nil {
		s.handleError(w, err)
		return
	}

	lic, err := s.store.CreateLicense(r.Context(), key, req.Name, req.PageLimit, req.MonthlyLimit)
	if err != nil {
		s.handleError(w, err)
		return
	}

	if adminID, err := middleware.GetUserID(r); err == nil {
		log.Printf("[admin] license created key=%s by=%s", lic.APIKey.Key, adminID)
	}
	s.jsonResponse(w, http.StatusCreated, LicenseResponse{License: lic})
}

// handleListLicenses returns every license, newest key first.
func (s *Server) handleListLicenses(w http.ResponseWriter, r *http.Request) {
	licenses, err := s.store.ListLicenses(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"licenses": licenses})
}

// handleGetLicense returns one license with its usage stats.
func (s *Server) handleGetLicense(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		s.handleError(w, &ErrValidation{Field: "key", Message: "is required"})
		return
	}

	lic, err := s.store.GetLicenseByKey(r.Context(), key)
	if err != nil {
		s.handleError(w, fmt.Errorf("failed to look up license: %w", err))
		return
	}
	if lic == nil {
		s.handleError(w, &ErrLicenseNotFound{Key: key})
		return
	}

	resp := LicenseResponse{License: lic}
	if decision, err := s.gate.Check(r.Context(), lic.APIKey.ID); err == nil {
		resp.Usage = &decision.Stats
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleDeactivateLicense disables a key without touching its subscription,
// so usage history and sibling keys survive.
func (s *Server) handleDeactivateLicense(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		s.handleError(w, &ErrValidation{Field: "key", Message: "is required"})
		return
	}

	lic, err := s.store.GetLicenseByKey(r.Context(), key)
	if err != nil {
		s.handleError(w, fmt.Errorf("failed to look up license: %w", err))
		return
	}
	if lic == nil {
		s.handleError(w, &ErrLicenseNotFound{Key: key})
		return
	}

	if err := s.store.SetAPIKeyActive(r.Context(), lic.APIKey.ID, false); err != nil {
		s.handleError(w, err)
		return
	}
	if adminID, err := middleware.GetUserID(r); err == nil {
		log.Printf("[admin] license deactivated key=%s by=%s", key, adminID)
	}
	w.WriteHeader(http.StatusNoContent)
}

// MintLicenseKey generates a new license key: an sg_ prefix over 24 random
// bytes, hex encoded. The ops tooling uses the same format.
func MintLicenseKey() (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate license key: %w", err)
	}
	return "sg_" + hex.EncodeToString(raw), nil
}
