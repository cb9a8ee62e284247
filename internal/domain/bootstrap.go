package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BootstrapRepository performs the admin-ensure plus orphan backfill in a
// single transaction, so a partially migrated state is never observable.
type BootstrapRepository interface {
	// EnsureAdmin inserts the admin account, or updates only its password
	// hash when it already exists. Orphaned sessions and workouts (rows
	// with a NULL user_id) are assigned to the admin only on creation.
	EnsureAdmin(ctx context.Context, admin User) (BootstrapResult, error)
}

// BootstrapResult reports what the bootstrap changed.
type BootstrapResult struct {
	AdminID          string
	Created          bool
	OrphanedSessions int64
	OrphanedWorkouts int64
}

// BootstrapService creates or refreshes the admin account and claims any
// legacy rows that predate authentication. Idempotent: with no orphans left
// a re-run only rewrites the password hash.
type BootstrapService struct {
	repo   BootstrapRepository
	hasher PasswordHasher
	now    func() time.Time
}

// NewBootstrapService constructs a BootstrapService.
func NewBootstrapService(repo BootstrapRepository, hasher PasswordHasher) *BootstrapService {
	return &BootstrapService{repo: repo, hasher: hasher, now: time.Now}
}

// EnsureAdmin validates the password, then runs the transactional
// ensure-and-backfill. A weak password fails before any row is touched.
func (s *BootstrapService) EnsureAdmin(ctx context.Context, username, email, password string) (BootstrapResult, error) {
	if len(password) < MinPasswordLength {
		return BootstrapResult{}, ErrWeakPassword
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return BootstrapResult{}, err
	}

	return s.repo.EnsureAdmin(ctx, User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: digest,
		Admin:        true,
		CreatedAt:    s.now().UTC(),
	})
}
