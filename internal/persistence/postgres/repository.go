// Package postgres provides pgx-backed persistence for the workout log.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides Postgres-backed persistence for users, sessions,
// workouts and the aggregation queries. Row visibility policy lives in the
// domain services; every query here is scoped by the user_id it is given.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const uniqueViolation = "23505"

// violatesUnique reports whether err is a unique-constraint violation on
// the named constraint.
func violatesUnique(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolation && pgErr.ConstraintName == constraint
}
