package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"example.com/workoutlog/internal/domain"
)

// EnsureAdmin creates the admin account and claims orphaned rows, or
// refreshes the password hash of an existing admin, all in one transaction.
// Concurrent bootstraps serialise on the row lock, so a partially migrated
// state is never observable.
func (r *Repository) EnsureAdmin(ctx context.Context, admin domain.User) (domain.BootstrapResult, error) {
	var result domain.BootstrapResult

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return result, err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	var existingID string
	err = tx.QueryRow(ctx, `SELECT user_id FROM users WHERE username=$1 FOR UPDATE`, admin.Username).Scan(&existingID)
	switch {
	case err == nil:
		// Admin already exists: only the password hash changes. Row
		// ownership stays as it is.
		if _, err = tx.Exec(ctx, `UPDATE users SET password_hash=$2 WHERE user_id=$1`, existingID, admin.PasswordHash); err != nil {
			return result, err
		}
		result.AdminID = existingID

	case errors.Is(err, pgx.ErrNoRows):
		const insert = `INSERT INTO users (user_id, username, email, password_hash, is_admin, created_at)
            VALUES ($1,$2,$3,$4,TRUE,$5)`
		if _, err = tx.Exec(ctx, insert, admin.ID, admin.Username, admin.Email, admin.PasswordHash, admin.CreatedAt); err != nil {
			return result, err
		}
		result.AdminID = admin.ID
		result.Created = true

		var tag pgconn.CommandTag
		if tag, err = tx.Exec(ctx, `UPDATE gym_sessions SET user_id=$1 WHERE user_id IS NULL`, admin.ID); err != nil {
			return result, err
		}
		result.OrphanedSessions = tag.RowsAffected()

		if tag, err = tx.Exec(ctx, `UPDATE workouts SET user_id=$1 WHERE user_id IS NULL`, admin.ID); err != nil {
			return result, err
		}
		result.OrphanedWorkouts = tag.RowsAffected()

	default:
		return result, err
	}

	err = tx.Commit(ctx)
	return result, err
}
