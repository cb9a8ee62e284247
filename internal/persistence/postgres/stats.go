package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"example.com/workoutlog/internal/domain"
)

// UserStats aggregates one user's training history.
func (r *Repository) UserStats(ctx context.Context, userID string) (domain.UserStats, error) {
	var stats domain.UserStats

	const totals = `SELECT COUNT(DISTINCT w.workout_id), COUNT(s.set_id)
        FROM workouts w
        LEFT JOIN workout_sets s ON s.workout_id = w.workout_id
        WHERE w.user_id=$1`
	if err := r.pool.QueryRow(ctx, totals, userID).Scan(&stats.TotalWorkouts, &stats.TotalSets); err != nil {
		return domain.UserStats{}, err
	}

	// Muscle-group ties break alphabetically so the answer is stable.
	const topGroup = `SELECT muscle_group FROM workouts WHERE user_id=$1
        GROUP BY muscle_group ORDER BY COUNT(*) DESC, muscle_group LIMIT 1`
	if err := r.pool.QueryRow(ctx, topGroup, userID).Scan(&stats.TopMuscleGroup); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return domain.UserStats{}, err
	}

	const byDate = `SELECT workout_date, COUNT(*) FROM workouts
        WHERE user_id=$1 GROUP BY workout_date ORDER BY workout_date`
	counts, err := r.queryDateCounts(ctx, byDate, userID)
	if err != nil {
		return domain.UserStats{}, err
	}
	stats.WorkoutsByDate = counts

	return stats, nil
}

// GlobalStats aggregates the whole installation. The most-active ranking
// orders by workout count descending with ties broken by the smallest
// user_id.
func (r *Repository) GlobalStats(ctx context.Context, topN int) (domain.GlobalStats, error) {
	var stats domain.GlobalStats

	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&stats.TotalUsers); err != nil {
		return domain.GlobalStats{}, err
	}
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM workouts`).Scan(&stats.TotalWorkouts); err != nil {
		return domain.GlobalStats{}, err
	}

	const mostActive = `SELECT w.user_id, u.username, COUNT(*) AS workouts
        FROM workouts w
        JOIN users u ON u.user_id = w.user_id
        GROUP BY w.user_id, u.username
        ORDER BY workouts DESC, w.user_id
        LIMIT $1`
	rows, err := r.pool.Query(ctx, mostActive, topN)
	if err != nil {
		return domain.GlobalStats{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry domain.UserActivity
		if err := rows.Scan(&entry.UserID, &entry.Username, &entry.Workouts); err != nil {
			return domain.GlobalStats{}, err
		}
		stats.MostActive = append(stats.MostActive, entry)
	}
	if err := rows.Err(); err != nil {
		return domain.GlobalStats{}, err
	}

	const byDay = `SELECT workout_date, COUNT(*) FROM workouts
        GROUP BY workout_date ORDER BY workout_date`
	counts, err := r.queryDateCounts(ctx, byDay)
	if err != nil {
		return domain.GlobalStats{}, err
	}
	stats.WorkoutsByDay = counts

	return stats, nil
}

func (r *Repository) queryDateCounts(ctx context.Context, query string, args ...interface{}) ([]domain.DateCount, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.DateCount
	for rows.Next() {
		var count domain.DateCount
		if err := rows.Scan(&count.Date, &count.Count); err != nil {
			return nil, err
		}
		counts = append(counts, count)
	}
	return counts, rows.Err()
}
