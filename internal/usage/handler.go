package usage

import (
	"net/http"
	"strconv"

	"github.com/fitforge-app/fitforge/internal/api"
	"github.com/fitforge-app/fitforge/internal/quota"
)

// Handler provides HTTP handlers for usage endpoints.
type Handler struct {
	quotaSvc *quota.Service
	repo     *Repository
}

func NewHandler(quotaSvc *quota.Service, repo *Repository) *Handler {
	return &Handler{
		quotaSvc: quotaSvc,
		repo:     repo,
	}
}

// GetQuota returns the authenticated user's current monthly quota status.
func (h *Handler) GetQuota(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.UserIDFromContext(r.Context())
	if !ok {
		api.HandleError(w, api.ErrUnauthorized)
		return
	}

	status, err := h.quotaSvc.StatusFor(r.Context(), userID)
	if err != nil {
		api.HandleError(w, api.ErrInternalServer)
		return
	}

	api.JSON(w, http.StatusOK, status)
}

// ListHistory returns the user's paginated AI request history.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.UserIDFromContext(r.Context())
	if !ok {
		api.HandleError(w, api.ErrUnauthorized)
		return
	}

	params := parseListParams(r)

	logs, total, err := h.repo.ListByUser(r.Context(), userID, params)
	if err != nil {
		api.HandleError(w, api.ErrInternalServer)
		return
	}

	api.JSONPaginated(w, http.StatusOK, logs, total, params.Page, params.PageSize)
}

func parseListParams(r *http.Request) ListParams {
	params := DefaultListParams()

	if a := r.URL.Query().Get("action"); a != "" {
		params.Action = a
	}
	if p := r.URL.Query().Get("page"); p != "" {
		if page, err := strconv.Atoi(p); err == nil && page > 0 {
			params.Page = page
		}
	}
	if ps := r.URL.Query().Get("page_size"); ps != "" {
		if pageSize, err := strconv.Atoi(ps); err == nil && pageSize > 0 && pageSize <= 100 {
			params.PageSize = pageSize
		}
	}

	return params
}
