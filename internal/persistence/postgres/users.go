package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"example.com/workoutlog/internal/domain"
)

const userColumns = `user_id, username, email, password_hash, is_admin, created_at`

// CreateUser inserts an account, mapping uniqueness violations onto the
// domain error taxonomy.
func (r *Repository) CreateUser(ctx context.Context, user domain.User) error {
	const stmt = `INSERT INTO users (user_id, username, email, password_hash, is_admin, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)`

	_, err := r.pool.Exec(ctx, stmt,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Admin,
		user.CreatedAt,
	)
	switch {
	case err == nil:
		return nil
	case violatesUnique(err, "users_username_key"):
		return domain.ErrUsernameTaken
	case violatesUnique(err, "users_email_key"):
		return domain.ErrEmailTaken
	default:
		return err
	}
}

// UserByID fetches an account by ID. Returns nil when absent.
func (r *Repository) UserByID(ctx context.Context, userID string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE user_id=$1`
	return r.scanUser(r.pool.QueryRow(ctx, query, userID))
}

// UserByUsername fetches an account by username. Returns nil when absent.
func (r *Repository) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username=$1`
	return r.scanUser(r.pool.QueryRow(ctx, query, username))
}

func (r *Repository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Admin, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every account, oldest first.
func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at, user_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Admin, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// DeleteUser removes an account. Sessions, workouts and sets go with it via
// ON DELETE CASCADE.
func (r *Repository) DeleteUser(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE user_id=$1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
