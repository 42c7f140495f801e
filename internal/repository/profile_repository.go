package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jobreach/jobreach/internal/database"
	"github.com/jobreach/jobreach/internal/model"
)

// ProfileStore is the durable mapping from user ID to profile record.
// Put overwrites the whole record; implementations must guarantee that a Put
// is atomic with respect to concurrent Gets (no torn records) and that a Get
// following a Put observes it.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*model.UserProfile, error)
	Put(ctx context.Context, profile *model.UserProfile) error
}

// ProfileRepository persists profiles in PostgreSQL, one row per user.
// The authorization record is stored as a jsonb column and the whole row is
// upserted in a single statement, which gives the atomic-overwrite guarantee.
type ProfileRepository struct {
	db *database.Postgres
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *database.Postgres) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get retrieves a profile by user ID
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	query := `
		SELECT user_id, name, email, linkedin, phone, target_role, location,
		       google_authorization, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	var (
		p        model.UserProfile
		authJSON []byte
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.Name,
		&p.Email,
		&p.LinkedIn,
		&p.Phone,
		&p.TargetRole,
		&p.Location,
		&authJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if len(authJSON) > 0 {
		var auth model.GoogleAuthorization
		if err := json.Unmarshal(authJSON, &auth); err != nil {
			return nil, fmt.Errorf("failed to decode authorization: %w", err)
		}
		p.Authorization = &auth
	}

	return &p, nil
}

// Put upserts a profile, overwriting any existing row for the user
func (r *ProfileRepository) Put(ctx context.Context, profile *model.UserProfile) error {
	if profile == nil || profile.UserID == "" {
		return ErrInvalidInput
	}

	var authJSON []byte
	if profile.Authorization != nil {
		data, err := json.Marshal(profile.Authorization)
		if err != nil {
			return fmt.Errorf("failed to encode authorization: %w", err)
		}
		authJSON = data
	}

	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	query := `
		INSERT INTO profiles (user_id, name, email, linkedin, phone, target_role, location,
		                      google_authorization, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			linkedin = EXCLUDED.linkedin,
			phone = EXCLUDED.phone,
			target_role = EXCLUDED.target_role,
			location = EXCLUDED.location,
			google_authorization = EXCLUDED.google_authorization,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.UserID,
		profile.Name,
		profile.Email,
		profile.LinkedIn,
		profile.Phone,
		profile.TargetRole,
		profile.Location,
		authJSON,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
