// Package domain defines the business logic for the workout log service.
package domain

import (
	"context"
	"time"
)

// Layouts for the date/time strings carried on workouts. Lexicographic
// order on these formats equals chronological order, which the list,
// export and stats queries rely on.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Actor is the authenticated identity an operation executes on behalf of.
// It is transient and never persisted.
type Actor struct {
	UserID string
	Admin  bool
}

// User is an account. PasswordHash is an opaque digest.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Admin        bool
	CreatedAt    time.Time
}

// GymSession is a visit to the gym. A session with no EndedAt is open;
// a user has at most one open session at a time.
type GymSession struct {
	ID          string
	UserID      string
	StartedAt   time.Time
	EndedAt     *time.Time
	DurationMin *float64
}

// Open reports whether the session has not been ended yet.
func (s GymSession) Open() bool {
	return s.EndedAt == nil
}

// Workout is one exercise performed during a session. SessionID is nil for
// legacy rows and rows whose session was removed by an admin adjustment.
type Workout struct {
	ID          string
	UserID      string
	SessionID   *string
	Date        string
	Time        string
	MuscleGroup string
	Exercise    string
	Sets        []WorkoutSet
}

// WorkoutSet is a single set within a workout. SetNumber values are
// contiguous starting at 1 within their workout.
type WorkoutSet struct {
	ID        string
	WorkoutID string
	SetNumber int
	Reps      int
	WeightKG  float64
}

// Cursor is the keyset pagination token for workout listings, keyed on the
// (date, time, workout_id) ordering tuple.
type Cursor struct {
	Date string
	Time string
	ID   string
}

// ExportRow is one CSV line: a (workout, set) pair. Set fields are nil for
// workouts that have no sets so the exporter can emit empty columns.
type ExportRow struct {
	Username    string
	Date        string
	Time        string
	MuscleGroup string
	Exercise    string
	SetNumber   *int
	Reps        *int
	WeightKG    *float64
}

// UserRepository persists accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	UserByID(ctx context.Context, userID string) (*User, error)
	UserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// SessionRepository persists gym sessions. OpenSession must fail with
// ErrSessionAlreadyOpen when the user already has an open session, even
// under concurrent submits.
type SessionRepository interface {
	OpenSession(ctx context.Context, session GymSession) error
	OpenSessionFor(ctx context.Context, userID string) (*GymSession, error)
	CloseSession(ctx context.Context, sessionID string, endedAt time.Time, durationMin float64) error
	ListSessions(ctx context.Context, userID string) ([]GymSession, error)
}

// WorkoutRepository persists workouts. CreateWorkout inserts the workout
// and all of its sets in a single transaction.
type WorkoutRepository interface {
	CreateWorkout(ctx context.Context, workout Workout) error
	ListWorkouts(ctx context.Context, userID string, cursor *Cursor, limit int) ([]Workout, *Cursor, error)
	ListAllWorkouts(ctx context.Context, cursor *Cursor, limit int) ([]Workout, *Cursor, error)
	ExportRows(ctx context.Context, userID string) ([]ExportRow, error)
}

// StatsRepository serves the read-only aggregation queries.
type StatsRepository interface {
	UserStats(ctx context.Context, userID string) (UserStats, error)
	GlobalStats(ctx context.Context, topN int) (GlobalStats, error)
}
