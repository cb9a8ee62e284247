package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"example.com/workoutlog/internal/domain"
)

// CreateWorkout persists the workout and all of its sets in a single
// transaction, so a crash can never leave a workout with a partial set list.
func (r *Repository) CreateWorkout(ctx context.Context, workout domain.Workout) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const insertWorkout = `INSERT INTO workouts (workout_id, user_id, session_id, workout_date, workout_time, muscle_group, exercise)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err = tx.Exec(ctx, insertWorkout,
		workout.ID,
		workout.UserID,
		workout.SessionID,
		workout.Date,
		workout.Time,
		workout.MuscleGroup,
		workout.Exercise,
	)
	if err != nil {
		return err
	}

	const insertSet = `INSERT INTO workout_sets (set_id, workout_id, set_number, reps, weight_kg)
        VALUES ($1,$2,$3,$4,$5)`

	for _, set := range workout.Sets {
		if _, err = tx.Exec(ctx, insertSet, set.ID, set.WorkoutID, set.SetNumber, set.Reps, set.WeightKG); err != nil {
			return err
		}
	}

	err = tx.Commit(ctx)
	return err
}

// ListWorkouts returns one user's workouts with sets, newest first.
func (r *Repository) ListWorkouts(ctx context.Context, userID string, cursor *domain.Cursor, limit int) ([]domain.Workout, *domain.Cursor, error) {
	return r.listWorkouts(ctx, userID, cursor, limit)
}

// ListAllWorkouts returns every user's workouts with sets, newest first.
func (r *Repository) ListAllWorkouts(ctx context.Context, cursor *domain.Cursor, limit int) ([]domain.Workout, *domain.Cursor, error) {
	return r.listWorkouts(ctx, "", cursor, limit)
}

func (r *Repository) listWorkouts(ctx context.Context, userID string, cursor *domain.Cursor, limit int) ([]domain.Workout, *domain.Cursor, error) {
	query := `SELECT workout_id, COALESCE(user_id, ''), session_id, workout_date, workout_time, muscle_group, exercise
        FROM workouts`

	var args []interface{}
	if userID != "" {
		query += ` WHERE user_id=$1`
		args = []interface{}{userID, limit}
		if cursor != nil {
			query += ` AND (workout_date, workout_time, workout_id) < ($3, $4, $5)`
			args = append(args, cursor.Date, cursor.Time, cursor.ID)
		}
		query += ` ORDER BY workout_date DESC, workout_time DESC, workout_id DESC LIMIT $2`
	} else {
		args = []interface{}{limit}
		if cursor != nil {
			query += ` WHERE (workout_date, workout_time, workout_id) < ($2, $3, $4)`
			args = append(args, cursor.Date, cursor.Time, cursor.ID)
		}
		query += ` ORDER BY workout_date DESC, workout_time DESC, workout_id DESC LIMIT $1`
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	workouts := make([]domain.Workout, 0, limit)
	ids := make([]string, 0, limit)
	for rows.Next() {
		var workout domain.Workout
		if err := rows.Scan(&workout.ID, &workout.UserID, &workout.SessionID, &workout.Date, &workout.Time, &workout.MuscleGroup, &workout.Exercise); err != nil {
			return nil, nil, err
		}
		workouts = append(workouts, workout)
		ids = append(ids, workout.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	if err := r.attachSets(ctx, workouts, ids); err != nil {
		return nil, nil, err
	}

	var nextCursor *domain.Cursor
	if len(workouts) == limit && limit > 0 {
		last := workouts[len(workouts)-1]
		nextCursor = &domain.Cursor{Date: last.Date, Time: last.Time, ID: last.ID}
	}
	return workouts, nextCursor, nil
}

// attachSets loads the sets for the listed workouts in one query.
func (r *Repository) attachSets(ctx context.Context, workouts []domain.Workout, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	const query = `SELECT set_id, workout_id, set_number, reps, weight_kg
        FROM workout_sets WHERE workout_id = ANY($1) ORDER BY set_number`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	byWorkout := make(map[string][]domain.WorkoutSet, len(ids))
	for rows.Next() {
		var set domain.WorkoutSet
		if err := rows.Scan(&set.ID, &set.WorkoutID, &set.SetNumber, &set.Reps, &set.WeightKG); err != nil {
			return err
		}
		byWorkout[set.WorkoutID] = append(byWorkout[set.WorkoutID], set)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range workouts {
		workouts[i].Sets = byWorkout[workouts[i].ID]
	}
	return nil
}

// ExportRows returns the flattened (workout, set) pairs for CSV export,
// ordered by date and time ascending then set number. An empty userID
// selects every user's rows and fills in usernames.
func (r *Repository) ExportRows(ctx context.Context, userID string) ([]domain.ExportRow, error) {
	query := `SELECT COALESCE(u.username, ''), w.workout_date, w.workout_time, w.muscle_group, w.exercise,
            s.set_number, s.reps, s.weight_kg
        FROM workouts w
        LEFT JOIN users u ON u.user_id = w.user_id
        LEFT JOIN workout_sets s ON s.workout_id = w.workout_id`
	args := []interface{}{}
	if userID != "" {
		query += ` WHERE w.user_id=$1`
		args = append(args, userID)
	}
	query += ` ORDER BY w.workout_date, w.workout_time, w.workout_id, s.set_number`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ExportRow
	for rows.Next() {
		var row domain.ExportRow
		if err := rows.Scan(&row.Username, &row.Date, &row.Time, &row.MuscleGroup, &row.Exercise, &row.SetNumber, &row.Reps, &row.WeightKG); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
