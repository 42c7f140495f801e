package repository

import (
	"context"
	"sync"
	"time"

	"github.com/jobreach/jobreach/internal/model"
)

// MemoryProfileStore is an in-memory ProfileStore. It backs tests and
// database-less development runs. Records are deep-copied on the way in and
// out so callers never observe a partially written profile.
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*model.UserProfile
}

// NewMemoryProfileStore creates an empty MemoryProfileStore
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{
		profiles: make(map[string]*model.UserProfile),
	}
}

// Get retrieves a profile by user ID
func (s *MemoryProfileStore) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

// Put upserts a profile, overwriting any existing record for the user
func (s *MemoryProfileStore) Put(ctx context.Context, profile *model.UserProfile) error {
	if profile == nil || profile.UserID == "" {
		return ErrInvalidInput
	}

	now := time.Now()
	cp := profile.Clone()
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[cp.UserID] = cp
	return nil
}
