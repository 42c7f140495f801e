package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"

	"github.com/jobreach/jobreach/internal/config"
	"github.com/jobreach/jobreach/internal/logger"
	"github.com/jobreach/jobreach/internal/model"
	"github.com/jobreach/jobreach/internal/repository"
)

// NewGoogleOAuthConfig builds the oauth2 client for the Gmail send grant.
// Returns nil when the client credentials are not configured.
func NewGoogleOAuthConfig(cfg config.GoogleConfig) *oauth2.Config {
	if !cfg.Configured() {
		return nil
	}
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       []string{gmail.GmailSendScope},
		Endpoint:     google.Endpoint,
	}
}

// OAuthService implements the three-legged Gmail authorization flow:
// it builds the consent redirect, validates the returned state, exchanges
// the code for tokens and persists the resulting grant on the profile.
type OAuthService struct {
	oauth  *oauth2.Config
	states StateStore
	store  repository.ProfileStore
	log    *logger.Logger
}

// NewOAuthService creates a new OAuthService. oauthCfg may be nil when the
// Google client is not configured; Begin then fails with ErrNotConfigured.
func NewOAuthService(oauthCfg *oauth2.Config, states StateStore, store repository.ProfileStore, log *logger.Logger) *OAuthService {
	return &OAuthService{
		oauth:  oauthCfg,
		states: states,
		store:  store,
		log:    log.WithComponent("oauth"),
	}
}

// BeginAuthorization generates an anti-forgery state bound to the user's
// session and returns the Google consent URL. access_type=offline makes
// Google issue a refresh token on first consent.
func (s *OAuthService) BeginAuthorization(ctx context.Context, userID string) (string, error) {
	if s.oauth == nil {
		return "", ErrNotConfigured
	}

	state, err := randomState()
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	if err := s.states.SaveState(ctx, userID, state); err != nil {
		return "", fmt.Errorf("failed to save state: %w", err)
	}

	url := s.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)

	s.log.Debug().Str("user_id", userID).Msg("authorization started")
	return url, nil
}

// CompleteAuthorization validates the callback state, exchanges the code for
// tokens and stores the grant on the (lazily created) profile. The returned
// record is what was persisted.
func (s *OAuthService) CompleteAuthorization(ctx context.Context, userID, code, state string) (*model.GoogleAuthorization, error) {
	if s.oauth == nil {
		return nil, ErrNotConfigured
	}

	stored, err := s.states.ConsumeState(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	if stored == "" || state == "" ||
		subtle.ConstantTimeCompare([]byte(stored), []byte(state)) != 1 {
		return nil, ErrStateMismatch
	}

	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	auth := model.AuthorizationFromToken(tok, s.oauth.Scopes)

	profile, err := s.store.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		profile = &model.UserProfile{UserID: userID}
	}
	profile.Authorization = auth

	if err := s.store.Put(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to store authorization: %w", err)
	}

	s.log.Info().Str("user_id", userID).
		Bool("refresh_token", auth.RefreshToken != "").
		Msg("gmail connected")
	return auth, nil
}

func randomState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
