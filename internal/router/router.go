package router

import (
	"net/http"
	"time"

	"github.com/jobreach/jobreach/internal/handler"
	"github.com/jobreach/jobreach/internal/logger"
	"github.com/jobreach/jobreach/internal/middleware"
)

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, log *logger.Logger, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoints (no session required)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)

	// Gmail authorization flow
	mux.HandleFunc("GET /auth/google", h.BeginGoogleAuth)
	mux.HandleFunc("GET /oauth2callback", h.GoogleAuthCallback)

	// Gmail endpoints
	sendRateLimit := mw.RateLimit(middleware.RateLimitConfig{
		Limit:  20,
		Window: 1 * time.Hour,
		KeyFn:  middleware.SessionKey,
	})
	mux.HandleFunc("GET /api/gmail/status", h.GmailStatus)
	mux.Handle("POST /api/gmail/send", sendRateLimit(http.HandlerFunc(h.SendEmail)))

	// Generation endpoints (rate limited, the model is metered)
	generateRateLimit := mw.RateLimit(middleware.RateLimitConfig{
		Limit:  30,
		Window: 1 * time.Hour,
		KeyFn:  middleware.SessionKey,
	})
	mux.Handle("POST /api/find-contacts", generateRateLimit(http.HandlerFunc(h.FindContacts)))
	mux.Handle("POST /api/generate-email", generateRateLimit(http.HandlerFunc(h.GenerateEmail)))

	// Profile endpoints
	mux.HandleFunc("GET /api/profile", h.GetProfile)
	mux.HandleFunc("POST /api/profile", h.UpdateProfile)

	// Apply middleware stack
	var handlerChain http.Handler = mux

	// Session identity (inside logging so user-bound handlers see it)
	handlerChain = mw.Session(handlerChain)

	// CORS
	handlerChain = mw.CORS(allowedOrigins)(handlerChain)

	// Security headers
	handlerChain = mw.SecurityHeaders(handlerChain)

	// Request logging
	handlerChain = mw.Logger(handlerChain)

	// Timing
	handlerChain = mw.Timing(handlerChain)

	// Request ID
	handlerChain = mw.RequestID(handlerChain)

	// Panic recovery (outermost)
	handlerChain = mw.Recover(handlerChain)

	return handlerChain
}
