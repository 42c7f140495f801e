package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserIDKey is the context key for the session's opaque user ID
const UserIDKey contextKey = "user_id"

// Session guarantees every request carries an opaque user identity. A signed
// session cookie holds a generated UUID; requests without a valid cookie get
// a fresh identity issued on the spot. The ID is stable for the cookie
// lifetime and is the only key the rest of the system stores data under.
func (m *Middleware) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := ""

		if cookie, err := r.Cookie(m.cfg.Session.CookieName); err == nil && cookie.Value != "" {
			userID = m.parseSession(cookie.Value)
		}

		if userID == "" {
			userID = uuid.New().String()
			token, err := m.signSession(userID)
			if err != nil {
				m.log.Error().Err(err).Msg("failed to sign session token")
				http.Error(w, `{"error":"An unexpected error occurred"}`, http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     m.cfg.Session.CookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(m.cfg.Session.TTL.Seconds()),
				HttpOnly: true,
				Secure:   m.cfg.Session.Secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) signSession(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.Session.TTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.sessionSecret)
}

func (m *Middleware) parseSession(token string) string {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.sessionSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return ""
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return ""
	}
	return claims.Subject
}

// GetUserID retrieves the session user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}
