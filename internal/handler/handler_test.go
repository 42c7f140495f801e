package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"

	"github.com/jobreach/jobreach/internal/config"
	"github.com/jobreach/jobreach/internal/handler"
	"github.com/jobreach/jobreach/internal/logger"
	"github.com/jobreach/jobreach/internal/middleware"
	"github.com/jobreach/jobreach/internal/model"
	"github.com/jobreach/jobreach/internal/repository"
	"github.com/jobreach/jobreach/internal/router"
	"github.com/jobreach/jobreach/internal/service"
)

// memoryStateStore is an in-process service.StateStore for handler tests
type memoryStateStore struct {
	states map[string]string
}

func (s *memoryStateStore) SaveState(ctx context.Context, userID, state string) error {
	s.states[userID] = state
	return nil
}

func (s *memoryStateStore) ConsumeState(ctx context.Context, userID string) (string, error) {
	state := s.states[userID]
	delete(s.states, userID)
	return state, nil
}

type testApp struct {
	handler http.Handler
	store   *repository.MemoryProfileStore
	session *http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.BaseURL = "http://localhost:8080"
	cfg.Session.CookieName = "jobreach_session"
	cfg.Session.TTL = time.Hour
	cfg.Security.RateLimiting.Enabled = false

	log := logger.New("error", "json")
	store := repository.NewMemoryProfileStore()
	oauthCfg := &oauth2.Config{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURL:  "http://localhost:8080/oauth2callback",
		Scopes:       []string{gmail.GmailSendScope},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.example.com/auth",
			TokenURL: "https://accounts.example.com/token",
		},
	}

	oauthSvc := service.NewOAuthService(oauthCfg, &memoryStateStore{states: map[string]string{}}, store, log)
	credSvc := service.NewCredentialService(oauthCfg, store, log)
	sendSvc := service.NewSendService(credSvc, store, log)
	profileSvc := service.NewProfileService(store, log)
	genSvc := service.NewGenerateService(nil, cfg, log)

	h := handler.New(nil, nil, log, cfg, oauthSvc, profileSvc, sendSvc, genSvc)
	mw := middleware.New(nil, log, cfg, []byte("test-secret"))

	app := &testApp{
		handler: router.New(h, mw, log, nil),
		store:   store,
	}

	// Prime a session so every request acts as the same user
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/gmail/status", nil))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	app.session = cookies[0]
	return app
}

func (a *testApp) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.AddCookie(a.session)

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// userID extracts the session's user ID by reading the profile it stores
func (a *testApp) userID(t *testing.T) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/profile", `{"name":"probe"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile model.UserProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.NotEmpty(t, profile.UserID)
	return profile.UserID
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload.Error
}

func TestGmailStatusNotConnected(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/gmail/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"connected":false}`, rec.Body.String())
}

func TestGmailStatusConnected(t *testing.T) {
	app := newTestApp(t)
	userID := app.userID(t)

	profile, err := app.store.Get(context.Background(), userID)
	require.NoError(t, err)
	profile.Authorization = &model.GoogleAuthorization{
		AccessToken: "token-1",
		Expiry:      time.Now().Add(time.Hour),
		Scopes:      []string{gmail.GmailSendScope},
	}
	require.NoError(t, app.store.Put(context.Background(), profile))

	rec := app.do(t, http.MethodGet, "/api/gmail/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"connected":true}`, rec.Body.String())
}

func TestSendEmailNotConnected(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/gmail/send",
		`{"to_email":"to@example.com","subject":"Hi","body":"hello"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Gmail not connected. Please connect your Gmail account first.", errorMessage(t, rec))
}

func TestSendEmailValidation(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/gmail/send", `{"subject":"Hi","body":"hello"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "to_email")
}

func TestSendEmailMalformedBody(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/gmail/send", `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOAuthCallbackStateMismatch(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/oauth2callback?code=auth-code&state=forged", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "state mismatch")
}

func TestOAuthCallbackDenied(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/oauth2callback?error=access_denied", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "denied")
}

func TestBeginGoogleAuthRedirects(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/auth/google", "")
	require.Equal(t, http.StatusFound, rec.Code)
	location := rec.Header().Get("Location")
	assert.Contains(t, location, "https://accounts.example.com/auth")
	assert.Contains(t, location, "state=")
}

func TestBeginGoogleAuthNotConfigured(t *testing.T) {
	app := newTestApp(t)
	// Rebuild the app with a nil OAuth client
	cfg := &config.Config{}
	cfg.Session.CookieName = "jobreach_session"
	cfg.Session.TTL = time.Hour
	log := logger.New("error", "json")
	store := repository.NewMemoryProfileStore()
	oauthSvc := service.NewOAuthService(nil, &memoryStateStore{states: map[string]string{}}, store, log)
	h := handler.New(nil, nil, log, cfg, oauthSvc, service.NewProfileService(store, log), nil, nil)
	mw := middleware.New(nil, log, cfg, []byte("test-secret"))
	app.handler = router.New(h, mw, log, nil)

	rec := app.do(t, http.MethodGet, "/auth/google", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "not configured")
}

func TestGenerateEmailRequiresPurpose(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/generate-email", `{"tone":"casual"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email purpose is required", errorMessage(t, rec))
}

func TestProfileRoundTrip(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/profile",
		`{"name":"Jess Doe","email":"jess@example.com","target_role":"Staff Engineer"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Partial update leaves other fields alone
	rec = app.do(t, http.MethodPost, "/api/profile", `{"location":"Berlin"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var profile model.UserProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "Jess Doe", profile.Name)
	assert.Equal(t, "jess@example.com", profile.Email)
	assert.Equal(t, "Staff Engineer", profile.TargetRole)
	assert.Equal(t, "Berlin", profile.Location)
}
