package handler

import (
	"errors"
	"net/http"

	"github.com/jobreach/jobreach/internal/service"
)

type findContactsRequest struct {
	CompanyType string   `json:"company_type"`
	RoleTypes   []string `json:"role_types"`
	Location    string   `json:"location"`
}

// FindContacts generates plausible hiring-manager contacts for the criteria
func (h *Handler) FindContacts(w http.ResponseWriter, r *http.Request) {
	var req findContactsRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	contacts, err := h.genSvc.FindContacts(r.Context(), service.FindContactsRequest{
		CompanyType: req.CompanyType,
		RoleTypes:   req.RoleTypes,
		Location:    req.Location,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("contact generation failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"contacts": contacts})
}

type generateEmailRequest struct {
	JobRole           string `json:"job_role"`
	Purpose           string `json:"purpose"`
	Tone              string `json:"tone"`
	RecipientName     string `json:"recipient_name"`
	AdditionalContext string `json:"additional_context"`
}

// GenerateEmail drafts a cold email from the structured inputs
func (h *Handler) GenerateEmail(w http.ResponseWriter, r *http.Request) {
	var req generateEmailRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	text, err := h.genSvc.ComposeEmail(r.Context(), service.ComposeEmailRequest{
		JobRole:           req.JobRole,
		Purpose:           req.Purpose,
		Tone:              req.Tone,
		RecipientName:     req.RecipientName,
		AdditionalContext: req.AdditionalContext,
	})
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, http.StatusBadRequest, "Email purpose is required")
			return
		}
		h.log.Error().Err(err).Msg("email generation failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	draft := service.ParseDraft(text)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"email": text,
		"draft": draft,
	})
}
