package model

import (
	"time"

	"golang.org/x/oauth2"
)

// GoogleAuthorization is the per-user Gmail send grant. It is persisted as
// part of the profile record and rewritten wholesale on every refresh.
type GoogleAuthorization struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
	Scopes       []string  `json:"scopes,omitempty"`
}

// Token converts the stored authorization into an oauth2 token
func (a *GoogleAuthorization) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  a.AccessToken,
		RefreshToken: a.RefreshToken,
		TokenType:    a.TokenType,
		Expiry:       a.Expiry,
	}
}

// CanSend reports whether the grant is usable for a send: a non-empty access
// token carrying the given scope.
func (a *GoogleAuthorization) CanSend(scope string) bool {
	if a == nil || a.AccessToken == "" {
		return false
	}
	for _, s := range a.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// AuthorizationFromToken builds a GoogleAuthorization from an oauth2 token
func AuthorizationFromToken(tok *oauth2.Token, scopes []string) *GoogleAuthorization {
	return &GoogleAuthorization{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
		Scopes:       scopes,
	}
}

// UserProfile is the per-user record: free-form sender details plus the
// optional Gmail authorization. Keyed by the opaque session user ID.
type UserProfile struct {
	UserID        string               `json:"user_id"`
	Name          string               `json:"name,omitempty"`
	Email         string               `json:"email,omitempty"`
	LinkedIn      string               `json:"linkedin,omitempty"`
	Phone         string               `json:"phone,omitempty"`
	TargetRole    string               `json:"target_role,omitempty"`
	Location      string               `json:"location,omitempty"`
	Authorization *GoogleAuthorization `json:"-"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// Connected reports whether a Gmail grant is stored for this profile
func (p *UserProfile) Connected() bool {
	return p != nil && p.Authorization != nil && p.Authorization.AccessToken != ""
}

// Clone returns a deep copy of the profile
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Authorization != nil {
		auth := *p.Authorization
		auth.Scopes = append([]string(nil), p.Authorization.Scopes...)
		cp.Authorization = &auth
	}
	return &cp
}
