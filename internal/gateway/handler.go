package gateway

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fitforge-app/fitforge/internal/ai"
	"github.com/fitforge-app/fitforge/internal/api"
)

// Wire shapes for the AI endpoint. Unlike the CRUD endpoints these are a
// fixed public contract consumed by the browser client.
type successResponse struct {
	Success bool           `json:"success"`
	Result  map[string]any `json:"result"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Code       string `json:"code,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}

// Handler exposes the gateway over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// HandleAction serves POST /api/v1/ai.
func (h *Handler) HandleAction(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.UserIDFromContext(r.Context())
	if !ok {
		api.JSONRaw(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.JSONRaw(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Action == "" {
		api.JSONRaw(w, http.StatusBadRequest, errorResponse{Error: "missing action"})
		return
	}

	result, err := h.svc.Handle(r.Context(), userID, req)
	if err != nil {
		h.writeError(w, req.Action, err)
		return
	}

	api.JSONRaw(w, http.StatusOK, successResponse{Success: true, Result: result})
}

func (h *Handler) writeError(w http.ResponseWriter, action string, err error) {
	var (
		unknownErr *UnknownActionError
		rateErr    *RateLimitError
		quotaErr   *QuotaError
		extractErr *ExtractionError
		providerErr *ai.ProviderError
	)

	switch {
	case errors.As(err, &unknownErr):
		api.JSONRaw(w, http.StatusBadRequest, errorResponse{Error: unknownErr.Error()})
	case errors.As(err, &rateErr):
		api.JSONRaw(w, http.StatusTooManyRequests, errorResponse{
			Error:      "too many requests, slow down",
			RetryAfter: rateErr.RetryAfter,
		})
	case errors.As(err, &quotaErr):
		api.JSONRaw(w, http.StatusForbidden, errorResponse{
			Error: "monthly free limit reached, upgrade to premium for unlimited generations",
			Code:  quotaErr.Reason,
			Limit: quotaErr.Limit,
		})
	case errors.As(err, &providerErr):
		api.JSONRaw(w, http.StatusInternalServerError, errorResponse{Error: providerErr.Message})
	case errors.As(err, &extractErr):
		api.JSONRaw(w, http.StatusInternalServerError, errorResponse{Error: "could not understand the AI response, please try again"})
	default:
		slog.Error("gateway: unhandled error", "action", action, "error", err)
		api.JSONRaw(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
