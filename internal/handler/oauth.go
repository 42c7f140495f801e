package handler

import (
	"errors"
	"net/http"

	"github.com/jobreach/jobreach/internal/middleware"
	"github.com/jobreach/jobreach/internal/service"
)

// BeginGoogleAuth redirects the browser to the Google consent page for the
// gmail.send scope.
func (h *Handler) BeginGoogleAuth(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	redirectURL, err := h.oauthSvc.BeginAuthorization(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotConfigured) {
			writeError(w, http.StatusInternalServerError, "Google OAuth is not configured")
			return
		}
		h.log.Error().Err(err).Msg("failed to begin authorization")
		writeError(w, http.StatusInternalServerError, "Failed to start Google authorization")
		return
	}

	http.Redirect(w, r, redirectURL, http.StatusFound)
}

// GoogleAuthCallback completes the consent flow: validates state, exchanges
// the code and stores the grant, then sends the browser back to the app.
func (h *Handler) GoogleAuthCallback(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	q := r.URL.Query()
	if errMsg := q.Get("error"); errMsg != "" {
		// User denied consent at Google
		writeError(w, http.StatusBadRequest, "Google authorization was denied: "+errMsg)
		return
	}

	code := q.Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "Missing authorization code")
		return
	}

	_, err := h.oauthSvc.CompleteAuthorization(r.Context(), userID, code, q.Get("state"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStateMismatch):
			writeError(w, http.StatusBadRequest, "Authorization state mismatch, please try connecting again")
		case errors.Is(err, service.ErrExchangeFailed):
			h.log.Warn().Err(err).Msg("code exchange failed")
			writeError(w, http.StatusInternalServerError, "Failed to complete Google authorization")
		default:
			h.log.Error().Err(err).Msg("authorization callback failed")
			writeError(w, http.StatusInternalServerError, "Failed to complete Google authorization")
		}
		return
	}

	http.Redirect(w, r, h.cfg.App.BaseURL+"/", http.StatusFound)
}
