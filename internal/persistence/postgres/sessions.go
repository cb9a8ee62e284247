package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"example.com/workoutlog/internal/domain"
)

const sessionColumns = `session_id, user_id, started_at, ended_at, duration_min`

// OpenSession inserts a new open session. The partial unique index on open
// sessions serialises the one-open-session check-and-set, so a concurrent
// duplicate submit surfaces as ErrSessionAlreadyOpen instead of a second row.
func (r *Repository) OpenSession(ctx context.Context, session domain.GymSession) error {
	const stmt = `INSERT INTO gym_sessions (session_id, user_id, started_at)
        VALUES ($1,$2,$3)`

	_, err := r.pool.Exec(ctx, stmt, session.ID, session.UserID, session.StartedAt)
	if violatesUnique(err, "gym_sessions_open_per_user") {
		return domain.ErrSessionAlreadyOpen
	}
	return err
}

// OpenSessionFor returns the user's open session, or nil when none is open.
func (r *Repository) OpenSessionFor(ctx context.Context, userID string) (*domain.GymSession, error) {
	const query = `SELECT ` + sessionColumns + `
        FROM gym_sessions WHERE user_id=$1 AND ended_at IS NULL`

	var session domain.GymSession
	row := r.pool.QueryRow(ctx, query, userID)
	if err := row.Scan(&session.ID, &session.UserID, &session.StartedAt, &session.EndedAt, &session.DurationMin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// CloseSession stamps the end time and duration on a still-open session.
// The ended_at IS NULL predicate makes a double-submit lose cleanly.
func (r *Repository) CloseSession(ctx context.Context, sessionID string, endedAt time.Time, durationMin float64) error {
	const stmt = `UPDATE gym_sessions SET ended_at=$2, duration_min=$3
        WHERE session_id=$1 AND ended_at IS NULL`

	tag, err := r.pool.Exec(ctx, stmt, sessionID, endedAt, durationMin)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoSessionToEnd
	}
	return nil
}

// ListSessions returns the user's sessions, newest first.
func (r *Repository) ListSessions(ctx context.Context, userID string) ([]domain.GymSession, error) {
	const query = `SELECT ` + sessionColumns + `
        FROM gym_sessions WHERE user_id=$1 ORDER BY started_at DESC, session_id DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.GymSession
	for rows.Next() {
		var session domain.GymSession
		if err := rows.Scan(&session.ID, &session.UserID, &session.StartedAt, &session.EndedAt, &session.DurationMin); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}
