package handler

import (
	"errors"
	"net/http"

	"github.com/jobreach/jobreach/internal/middleware"
	"github.com/jobreach/jobreach/internal/service"
)

// GmailStatus reports whether the session's Gmail account is connected
func (h *Handler) GmailStatus(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	connected, err := h.profileSvc.Connected(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to check gmail status")
		writeError(w, http.StatusInternalServerError, "Failed to check Gmail status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"connected": connected})
}

type sendRequest struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendEmail sends one email through the user's connected Gmail account
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req sendRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	messageID, err := h.sendSvc.Send(r.Context(), userID, req.ToEmail, req.Subject, req.Body)
	if err != nil {
		var validationErr *service.ValidationError
		var dispatchErr *service.DispatchError
		switch {
		case errors.As(err, &validationErr):
			writeError(w, http.StatusBadRequest, validationErr.Error())
		case errors.Is(err, service.ErrNotConnected):
			writeError(w, http.StatusBadRequest, "Gmail not connected. Please connect your Gmail account first.")
		case errors.Is(err, service.ErrReauthorizationRequired):
			writeError(w, http.StatusBadRequest, "Gmail authorization expired. Please reconnect your Gmail account.")
		case errors.As(err, &dispatchErr):
			h.log.Error().Err(err).Str("kind", string(dispatchErr.Kind)).Msg("send failed")
			writeError(w, http.StatusInternalServerError, dispatchErr.Error())
		default:
			h.log.Error().Err(err).Msg("send failed")
			writeError(w, http.StatusInternalServerError, "Failed to send email")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"message_id": messageID,
	})
}
