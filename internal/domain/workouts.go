package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"example.com/workoutlog/internal/observability"
)

// WorkoutService mediates workout reads and writes for an Actor.
type WorkoutService struct {
	workouts WorkoutRepository
	sessions SessionRepository
	now      func() time.Time
}

// NewWorkoutService constructs a WorkoutService.
func NewWorkoutService(workouts WorkoutRepository, sessions SessionRepository) *WorkoutService {
	return &WorkoutService{workouts: workouts, sessions: sessions, now: time.Now}
}

// SetInput is one set of the workout being logged.
type SetInput struct {
	Reps     int
	WeightKG float64
}

// CreateWorkoutInput captures the payload for logging a workout.
type CreateWorkoutInput struct {
	MuscleGroup string
	Exercise    string
	Sets        []SetInput
}

func (in CreateWorkoutInput) validate() error {
	var fields []FieldError
	if strings.TrimSpace(in.MuscleGroup) == "" {
		fields = append(fields, FieldError{Field: "muscle_group", Message: "is required"})
	} else if _, ok := ExercisesFor(in.MuscleGroup); !ok {
		fields = append(fields, FieldError{Field: "muscle_group", Message: "is not a known muscle group"})
	} else if strings.TrimSpace(in.Exercise) == "" {
		fields = append(fields, FieldError{Field: "exercise", Message: "is required"})
	} else if !ValidExercise(in.MuscleGroup, in.Exercise) {
		fields = append(fields, FieldError{Field: "exercise", Message: "is not a known exercise for " + in.MuscleGroup})
	}
	if len(in.Sets) == 0 {
		fields = append(fields, FieldError{Field: "sets", Message: "at least one set is required"})
	}
	for _, set := range in.Sets {
		if set.Reps < 1 {
			fields = append(fields, FieldError{Field: "sets", Message: "reps must be at least 1"})
			break
		}
	}
	for _, set := range in.Sets {
		if set.WeightKG < 0 {
			fields = append(fields, FieldError{Field: "sets", Message: "weight_kg must not be negative"})
			break
		}
	}
	if len(fields) > 0 {
		return NewValidationError(fields...)
	}
	return nil
}

// CreateWorkout logs a workout with its sets for the actor. The actor must
// have an open session; the workout and every set are inserted atomically.
// Set numbers are assigned contiguously starting at 1.
func (s *WorkoutService) CreateWorkout(ctx context.Context, actor Actor, input CreateWorkoutInput) (*Workout, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	open, err := s.sessions.OpenSessionFor(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, ErrNoOpenSession
	}

	now := s.now()
	workout := Workout{
		ID:          uuid.NewString(),
		UserID:      actor.UserID,
		SessionID:   &open.ID,
		Date:        now.Format(DateLayout),
		Time:        now.Format(TimeLayout),
		MuscleGroup: input.MuscleGroup,
		Exercise:    input.Exercise,
		Sets:        make([]WorkoutSet, 0, len(input.Sets)),
	}
	for i, set := range input.Sets {
		workout.Sets = append(workout.Sets, WorkoutSet{
			ID:        uuid.NewString(),
			WorkoutID: workout.ID,
			SetNumber: i + 1,
			Reps:      set.Reps,
			WeightKG:  set.WeightKG,
		})
	}

	if err := s.workouts.CreateWorkout(ctx, workout); err != nil {
		return nil, err
	}
	observability.RecordWorkoutLogged(len(workout.Sets))
	return &workout, nil
}

// ListWorkouts returns workouts newest-first with their sets. A non-admin
// actor only ever sees their own rows; an admin may target any user, or
// pass no target to list everyone's.
func (s *WorkoutService) ListWorkouts(ctx context.Context, actor Actor, targetUserID string, cursor *Cursor, limit int) ([]Workout, *Cursor, error) {
	if actor.Admin && targetUserID == "" {
		return s.workouts.ListAllWorkouts(ctx, cursor, limit)
	}
	userID, err := resolveTarget(actor, targetUserID)
	if err != nil {
		return nil, nil, err
	}
	return s.workouts.ListWorkouts(ctx, userID, cursor, limit)
}
