package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jobreach/jobreach/internal/logger"
	"github.com/jobreach/jobreach/internal/model"
	"github.com/jobreach/jobreach/internal/repository"
)

// ProfileService manages the user's sender profile. Profiles are created
// lazily on first write; reads of a missing profile return an empty one.
type ProfileService struct {
	store repository.ProfileStore
	log   *logger.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(store repository.ProfileStore, log *logger.Logger) *ProfileService {
	return &ProfileService{
		store: store,
		log:   log.WithComponent("profile"),
	}
}

// Get returns the stored profile, or an empty profile when none exists yet
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	profile, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &model.UserProfile{UserID: userID}, nil
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

// ProfileUpdate carries the updatable contact fields. Empty fields are left
// untouched, so a partial update never clears data.
type ProfileUpdate struct {
	Name       string
	Email      string
	LinkedIn   string
	Phone      string
	TargetRole string
	Location   string
}

// Update merges the non-empty fields into the profile, creating it if needed.
// The authorization record is never touched here.
func (s *ProfileService) Update(ctx context.Context, userID string, upd ProfileUpdate) (*model.UserProfile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Name != "" {
		profile.Name = upd.Name
	}
	if upd.Email != "" {
		profile.Email = upd.Email
	}
	if upd.LinkedIn != "" {
		profile.LinkedIn = upd.LinkedIn
	}
	if upd.Phone != "" {
		profile.Phone = upd.Phone
	}
	if upd.TargetRole != "" {
		profile.TargetRole = upd.TargetRole
	}
	if upd.Location != "" {
		profile.Location = upd.Location
	}

	if err := s.store.Put(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to store profile: %w", err)
	}
	return profile, nil
}

// Connected reports whether the user has a Gmail grant stored
func (s *ProfileService) Connected(ctx context.Context, userID string) (bool, error) {
	profile, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile.Connected(), nil
}
