// Package httpapi is the HTTP transport of the identity service. It
// marshals requests into service calls and serializes results; it holds
// no business rules of its own.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/talenthub/talenthub/internal/common"
	"github.com/talenthub/talenthub/internal/logging"
	"github.com/talenthub/talenthub/internal/server/metrics"
	"github.com/talenthub/talenthub/internal/server/models"
	"github.com/talenthub/talenthub/internal/server/services"
)

type registerRequest struct {
	FullName       string   `json:"full_name"`
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	Role           string   `json:"role"`
	CollegeName    string   `json:"college_name"`
	GraduationYear string   `json:"graduation_year"`
	Skills         []string `json:"skills"`
	LinkedinURL    string   `json:"linkedin_url"`
	GithubURL      string   `json:"github_url"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	FullName       *string   `json:"full_name"`
	CollegeName    *string   `json:"college_name"`
	GraduationYear *string   `json:"graduation_year"`
	Skills         *[]string `json:"skills"`
	LinkedinURL    *string   `json:"linkedin_url"`
	GithubURL      *string   `json:"github_url"`
}

type authResponse struct {
	Token string             `json:"token"`
	User  *models.PublicUser `json:"user"`
}

type userResponse struct {
	User *models.PublicUser `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	service *services.UserService
	logger  logging.Logger
	metrics *metrics.Collector
}

func NewHandler(service *services.UserService, logger logging.Logger, collector *metrics.Collector) *Handler {
	return &Handler{service: service, logger: logger, metrics: collector}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.RecordRegistration("validation")
		h.writeError(w, r, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	user, token, err := h.service.Register(r.Context(), services.RegisterInput{
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		CollegeName:    req.CollegeName,
		GraduationYear: req.GraduationYear,
		Skills:         req.Skills,
		LinkedinURL:    req.LinkedinURL,
		GithubURL:      req.GithubURL,
	})
	if err != nil {
		h.metrics.RecordRegistration(outcomeFor(err))
		h.writeError(w, r, err)
		return
	}

	h.metrics.RecordRegistration("success")
	h.writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user.Public()})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.RecordLogin("validation")
		h.writeError(w, r, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.RecordLogin(outcomeFor(err))
		h.writeError(w, r, err)
		return
	}

	h.metrics.RecordLogin("success")
	h.writeJSON(w, http.StatusOK, authResponse{Token: token, User: user.Public()})
}

// Me returns the profile of the authenticated subject.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		h.writeError(w, r, common.ErrInvalidToken)
		return
	}

	user, err := h.service.GetProfile(r.Context(), claims.Subject)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, userResponse{User: user.Public()})
}

// UpdateProfile edits the profile of the authenticated subject.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		h.writeError(w, r, common.ErrInvalidToken)
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), claims.Subject, models.ProfileUpdate{
		FullName:       req.FullName,
		CollegeName:    req.CollegeName,
		GraduationYear: req.GraduationYear,
		Skills:         req.Skills,
		LinkedinURL:    req.LinkedinURL,
		GithubURL:      req.GithubURL,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, userResponse{User: user.Public()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, common.ErrValidation):
		return "validation"
	case errors.Is(err, common.ErrAlreadyExists):
		return "conflict"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "unauthorized"
	case errors.Is(err, common.ErrStoreUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
