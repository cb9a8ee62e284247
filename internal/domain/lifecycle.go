package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"example.com/workoutlog/internal/observability"
)

// LifecycleService drives the per-user session state machine: a user is
// either between sessions or inside exactly one open session.
type LifecycleService struct {
	sessions SessionRepository
	now      func() time.Time
}

// NewLifecycleService constructs a LifecycleService.
func NewLifecycleService(sessions SessionRepository) *LifecycleService {
	return &LifecycleService{sessions: sessions, now: time.Now}
}

// StartSession opens a new gym session for the actor. Fails with
// ErrSessionAlreadyOpen when one is already open; the repository's
// check-and-set is atomic, so a double-click cannot open two.
func (s *LifecycleService) StartSession(ctx context.Context, actor Actor) (*GymSession, error) {
	session := GymSession{
		ID:        uuid.NewString(),
		UserID:    actor.UserID,
		StartedAt: s.now().UTC(),
	}
	if err := s.sessions.OpenSession(ctx, session); err != nil {
		return nil, err
	}
	observability.RecordSessionOpened()
	return &session, nil
}

// EndSession closes the actor's open session and stores the computed
// duration in minutes. Fails with ErrNoSessionToEnd when nothing is open.
func (s *LifecycleService) EndSession(ctx context.Context, actor Actor) (*GymSession, error) {
	open, err := s.sessions.OpenSessionFor(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, ErrNoSessionToEnd
	}

	endedAt := s.now().UTC()
	durationMin := endedAt.Sub(open.StartedAt).Minutes()
	if err := s.sessions.CloseSession(ctx, open.ID, endedAt, durationMin); err != nil {
		return nil, err
	}
	observability.RecordSessionClosed(durationMin)

	open.EndedAt = &endedAt
	open.DurationMin = &durationMin
	return open, nil
}

// CurrentSession returns the actor's open session, or nil when there is none.
func (s *LifecycleService) CurrentSession(ctx context.Context, actor Actor) (*GymSession, error) {
	return s.sessions.OpenSessionFor(ctx, actor.UserID)
}

// ListSessions returns the actor's sessions, or any user's for an admin
// supplying a target.
func (s *LifecycleService) ListSessions(ctx context.Context, actor Actor, targetUserID string) ([]GymSession, error) {
	userID, err := resolveTarget(actor, targetUserID)
	if err != nil {
		return nil, err
	}
	return s.sessions.ListSessions(ctx, userID)
}

// resolveTarget applies the ownership rule shared by the read paths: a
// non-admin actor may only name themselves, an admin may name anyone.
func resolveTarget(actor Actor, targetUserID string) (string, error) {
	if targetUserID == "" || targetUserID == actor.UserID {
		return actor.UserID, nil
	}
	if !actor.Admin {
		return "", ErrForbidden
	}
	return targetUserID, nil
}
