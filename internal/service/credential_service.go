package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/jobreach/jobreach/internal/logger"
	"github.com/jobreach/jobreach/internal/model"
	"github.com/jobreach/jobreach/internal/repository"
)

// CredentialService hands out a usable Gmail grant for a user, silently
// refreshing an expired access token before use and writing the renewed
// record back to the store.
//
// Concurrent refreshes for the same user are not serialized: Put is a full
// overwrite, so the worst case is a wasted token exchange and a
// last-writer-wins record. That is accepted rather than holding a per-user
// lock across a network call.
type CredentialService struct {
	oauth *oauth2.Config
	store repository.ProfileStore
	log   *logger.Logger
}

// NewCredentialService creates a new CredentialService
func NewCredentialService(oauthCfg *oauth2.Config, store repository.ProfileStore, log *logger.Logger) *CredentialService {
	return &CredentialService{
		oauth: oauthCfg,
		store: store,
		log:   log.WithComponent("credentials"),
	}
}

// EnsureValid returns a grant whose access token is good for use now.
//
// Expiry is tracked explicitly on the stored record: a token past its expiry
// is refreshed before the caller ever presents it to Gmail, so the caller
// does not pay a failed round trip to discover staleness. A record with an
// unknown expiry is presented as-is.
func (s *CredentialService) EnsureValid(ctx context.Context, userID string) (*model.GoogleAuthorization, error) {
	profile, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotConnected
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	auth := profile.Authorization
	if auth == nil || auth.AccessToken == "" {
		return nil, ErrNotConnected
	}

	tok := auth.Token()
	if tok.Valid() {
		return auth, nil
	}

	// Token expired. Without a refresh token the grant cannot be renewed
	// silently; the user has to repeat the consent flow.
	if auth.RefreshToken == "" {
		return nil, ErrReauthorizationRequired
	}
	if s.oauth == nil {
		return nil, ErrNotConfigured
	}

	fresh, err := s.oauth.TokenSource(ctx, tok).Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			// The provider refused the refresh token (revoked or stale grant)
			return nil, fmt.Errorf("%w: %v", ErrReauthorizationRequired, err)
		}
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	updated := model.AuthorizationFromToken(fresh, auth.Scopes)
	if updated.RefreshToken == "" {
		// Google omits the refresh token on renewals; keep the original
		updated.RefreshToken = auth.RefreshToken
	}

	profile.Authorization = updated
	if err := s.store.Put(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to store refreshed token: %w", err)
	}

	s.log.Info().Str("user_id", userID).Time("expiry", updated.Expiry).Msg("access token refreshed")
	return updated, nil
}
