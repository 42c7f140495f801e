package handler

import (
	"net/http"

	"github.com/jobreach/jobreach/internal/middleware"
	"github.com/jobreach/jobreach/internal/service"
)

// GetProfile returns the session's sender profile (empty until first write)
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profile, err := h.profileSvc.Get(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to load profile")
		writeError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

type updateProfileRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	LinkedIn   string `json:"linkedin"`
	Phone      string `json:"phone"`
	TargetRole string `json:"target_role"`
	Location   string `json:"location"`
}

// UpdateProfile merges non-empty fields into the stored profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req updateProfileRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.profileSvc.Update(r.Context(), userID, service.ProfileUpdate{
		Name:       req.Name,
		Email:      req.Email,
		LinkedIn:   req.LinkedIn,
		Phone:      req.Phone,
		TargetRole: req.TargetRole,
		Location:   req.Location,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("failed to update profile")
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
