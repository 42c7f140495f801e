package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"

	"github.com/jobreach/jobreach/internal/repository"
)

// memoryStateStore is an in-process StateStore for tests
type memoryStateStore struct {
	states map[string]string
}

func newMemoryStateStore() *memoryStateStore {
	return &memoryStateStore{states: make(map[string]string)}
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

func TestBeginAuthorizationNotConfigured(t *testing.T) {
	svc := NewOAuthService(nil, newMemoryStateStore(), repository.NewMemoryProfileStore(), testLogger())

	_, err := svc.BeginAuthorization(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestBeginAuthorizationBuildsConsentURL(t *testing.T) {
	states := newMemoryStateStore()
	svc := NewOAuthService(testOAuthConfig("http://invalid"), states, repository.NewMemoryProfileStore(), testLogger())

	redirectURL, err := svc.BeginAuthorization(context.Background(), "user-1")
	require.NoError(t, err)

	parsed, err := url.Parse(redirectURL)
	require.NoError(t, err)
	q := parsed.Query()

	assert.Equal(t, "test-client", q.Get("client_id"))
	assert.Equal(t, gmail.GmailSendScope, q.Get("scope"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "true", q.Get("include_granted_scopes"))
	assert.NotEmpty(t, q.Get("state"))
	assert.Equal(t, states.states["user-1"], q.Get("state"), "redirect state must match the stored state")
}

func TestBeginAuthorizationRotatesState(t *testing.T) {
	states := newMemoryStateStore()
	svc := NewOAuthService(testOAuthConfig("http://invalid"), states, repository.NewMemoryProfileStore(), testLogger())

	first, err := svc.BeginAuthorization(context.Background(), "user-1")
	require.NoError(t, err)
	second, err := svc.BeginAuthorization(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestCompleteAuthorizationStateMismatch(t *testing.T) {
	srv, calls := fakeTokenServer(t, http.StatusOK, `{"access_token":"token-1"}`)
	states := newMemoryStateStore()
	svc := NewOAuthService(testOAuthConfig(srv.URL), states, repository.NewMemoryProfileStore(), testLogger())

	_, err := svc.BeginAuthorization(context.Background(), "user-1")
	require.NoError(t, err)

	_, err = svc.CompleteAuthorization(context.Background(), "user-1", "auth-code", "forged-state")
	assert.ErrorIs(t, err, ErrStateMismatch)
	assert.Zero(t, *calls, "a mismatched state must fail before the code exchange")
}

func TestCompleteAuthorizationExpiredState(t *testing.T) {
	srv, _ := fakeTokenServer(t, http.StatusOK, `{"access_token":"token-1"}`)
	svc := NewOAuthService(testOAuthConfig(srv.URL), newMemoryStateStore(), repository.NewMemoryProfileStore(), testLogger())

	// No BeginAuthorization: nothing stored, as after a state TTL expiry
	_, err := svc.CompleteAuthorization(context.Background(), "user-1", "auth-code", "some-state")
	assert.ErrorIs(t, err, ErrStateMismatch)
}

func TestCompleteAuthorizationStoresGrant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "auth-code", r.PostForm.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"token-1","refresh_token":"refresh-1","token_type":"Bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	states := newMemoryStateStore()
	store := repository.NewMemoryProfileStore()
	svc := NewOAuthService(testOAuthConfig(srv.URL), states, store, testLogger())

	redirectURL, err := svc.BeginAuthorization(context.Background(), "user-1")
	require.NoError(t, err)
	state := urlQuery(t, redirectURL, "state")

	auth, err := svc.CompleteAuthorization(context.Background(), "user-1", "auth-code", state)
	require.NoError(t, err)
	assert.Equal(t, "token-1", auth.AccessToken)
	assert.Equal(t, "refresh-1", auth.RefreshToken)
	assert.Equal(t, []string{gmail.GmailSendScope}, auth.Scopes)
	assert.True(t, auth.CanSend(gmail.GmailSendScope))

	// The profile was created lazily and the grant persisted
	profile, err := store.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, profile.Connected())
	assert.Equal(t, "token-1", profile.Authorization.AccessToken)
}

func TestCompleteAuthorizationExchangeRejected(t *testing.T) {
	srv, _ := fakeTokenServer(t, http.StatusBadRequest, `{"error":"invalid_grant"}`)
	states := newMemoryStateStore()
	store := repository.NewMemoryProfileStore()
	svc := NewOAuthService(testOAuthConfig(srv.URL), states, store, testLogger())

	redirectURL, err := svc.BeginAuthorization(context.Background(), "user-1")
	require.NoError(t, err)
	state := urlQuery(t, redirectURL, "state")

	_, err = svc.CompleteAuthorization(context.Background(), "user-1", "bad-code", state)
	assert.ErrorIs(t, err, ErrExchangeFailed)

	// Nothing is stored on failure
	_, err = store.Get(context.Background(), "user-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCompleteAuthorizationStateIsSingleUse(t *testing.T) {
	srv, _ := fakeTokenServer(t, http.StatusOK,
		`{"access_token":"token-1","token_type":"Bearer","expires_in":3600}`)
	states := newMemoryStateStore()
	svc := NewOAuthService(testOAuthConfig(srv.URL), states, repository.NewMemoryProfileStore(), testLogger())

	redirectURL, err := svc.BeginAuthorization(context.Background(), "user-1")
	require.NoError(t, err)
	state := urlQuery(t, redirectURL, "state")

	_, err = svc.CompleteAuthorization(context.Background(), "user-1", "auth-code", state)
	require.NoError(t, err)

	// Replaying the callback fails: the state was consumed
	_, err = svc.CompleteAuthorization(context.Background(), "user-1", "auth-code", state)
	assert.ErrorIs(t, err, ErrStateMismatch)
}

func urlQuery(t *testing.T, rawURL, key string) string {
	t.Helper()
	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	return parsed.Query().Get(key)
}
