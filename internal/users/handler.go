package users

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/fitforge-app/fitforge/internal/api"
)

type Handler struct {
	svc      *Service
	validate *validator.Validate
}

func NewHandler(svc *Service) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

type UpdateProfileRequest struct {
	HeightCm   *float64 `json:"height_cm" validate:"omitempty,gt=0,lt=300"`
	WeightKg   *float64 `json:"weight_kg" validate:"omitempty,gt=0,lt=500"`
	Goal       *string  `json:"goal" validate:"omitempty,max=120"`
	Experience *string  `json:"experience" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// Me serves GET /api/v1/users/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.UserIDFromContext(r.Context())
	if !ok {
		api.HandleError(w, api.ErrUnauthorized)
		return
	}

	user, err := h.svc.GetByID(r.Context(), userID)
	if err != nil {
		slog.Error("getting user", "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}
	if user == nil {
		api.HandleError(w, api.ErrNotFound)
		return
	}

	api.JSON(w, http.StatusOK, user)
}

// UpdateMe serves PUT /api/v1/users/me.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.UserIDFromContext(r.Context())
	if !ok {
		api.HandleError(w, api.ErrUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, api.ErrBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), userID, ProfileUpdate{
		HeightCm:   req.HeightCm,
		WeightKg:   req.WeightKg,
		Goal:       req.Goal,
		Experience: req.Experience,
	})
	if err != nil {
		slog.Error("updating profile", "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}

	api.JSON(w, http.StatusOK, user)
}
