package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobreach/jobreach/internal/config"
	"github.com/jobreach/jobreach/internal/logger"
)

func testMiddleware(t *testing.T) *Middleware {
	t.Helper()
	cfg := &config.Config{}
	cfg.Session.CookieName = "jobreach_session"
	cfg.Session.TTL = time.Hour
	return New(nil, logger.New("error", "json"), cfg, []byte("test-secret"))
}

func TestSessionIssuesIdentity(t *testing.T) {
	mw := testMiddleware(t)

	var seenUserID string
	h := mw.Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = GetUserID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seenUserID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "jobreach_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSessionIsStableAcrossRequests(t *testing.T) {
	mw := testMiddleware(t)

	var userIDs []string
	h := mw.Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDs = append(userIDs, GetUserID(r.Context()))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := rec.Result().Cookies()[0]

	second := httptest.NewRequest(http.MethodGet, "/", nil)
	second.AddCookie(cookie)
	h.ServeHTTP(httptest.NewRecorder(), second)

	require.Len(t, userIDs, 2)
	assert.Equal(t, userIDs[0], userIDs[1])
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	mw := testMiddleware(t)

	var userIDs []string
	h := mw.Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDs = append(userIDs, GetUserID(r.Context()))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	tampered := httptest.NewRequest(http.MethodGet, "/", nil)
	tampered.AddCookie(&http.Cookie{Name: "jobreach_session", Value: "not-a-jwt"})
	h.ServeHTTP(httptest.NewRecorder(), tampered)

	require.Len(t, userIDs, 2)
	assert.NotEqual(t, userIDs[0], userIDs[1], "a tampered cookie gets a fresh identity")
}
