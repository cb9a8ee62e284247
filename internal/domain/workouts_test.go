package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validWorkoutInput() CreateWorkoutInput {
	return CreateWorkoutInput{
		MuscleGroup: "Legs",
		Exercise:    "Squats",
		Sets: []SetInput{
			{Reps: 5, WeightKG: 60},
			{Reps: 5, WeightKG: 60},
			{Reps: 5, WeightKG: 60},
		},
	}
}

func TestCreateWorkoutRequiresOpenSession(t *testing.T) {
	repo := newFakeRepo()
	service := NewWorkoutService(repo, repo)

	_, err := service.CreateWorkout(context.Background(), Actor{UserID: "alice"}, validWorkoutInput())
	require.ErrorIs(t, err, ErrNoOpenSession)
	require.Empty(t, repo.workouts)
}

func TestCreateWorkoutAssignsContiguousSetNumbers(t *testing.T) {
	repo := newFakeRepo()
	lifecycle := NewLifecycleService(repo)
	service := NewWorkoutService(repo, repo)
	actor := Actor{UserID: "alice"}

	session, err := lifecycle.StartSession(context.Background(), actor)
	require.NoError(t, err)

	now := time.Date(2025, time.November, 3, 10, 15, 30, 0, time.UTC)
	service.now = func() time.Time { return now }

	workout, err := service.CreateWorkout(context.Background(), actor, validWorkoutInput())
	require.NoError(t, err)
	require.Equal(t, "2025-11-03", workout.Date)
	require.Equal(t, "10:15:30", workout.Time)
	require.NotNil(t, workout.SessionID)
	require.Equal(t, session.ID, *workout.SessionID)
	require.Len(t, workout.Sets, 3)
	for i, set := range workout.Sets {
		require.Equal(t, i+1, set.SetNumber)
		require.Equal(t, workout.ID, set.WorkoutID)
	}
}

func TestCreateWorkoutValidation(t *testing.T) {
	repo := newFakeRepo()
	lifecycle := NewLifecycleService(repo)
	service := NewWorkoutService(repo, repo)
	actor := Actor{UserID: "alice"}

	_, err := lifecycle.StartSession(context.Background(), actor)
	require.NoError(t, err)

	cases := map[string]CreateWorkoutInput{
		"unknown muscle group":   {MuscleGroup: "Wings", Exercise: "Squats", Sets: []SetInput{{Reps: 5}}},
		"exercise outside group": {MuscleGroup: "Legs", Exercise: "Bench Press", Sets: []SetInput{{Reps: 5}}},
		"no sets":                {MuscleGroup: "Legs", Exercise: "Squats"},
		"zero reps":              {MuscleGroup: "Legs", Exercise: "Squats", Sets: []SetInput{{Reps: 0}}},
		"negative weight":        {MuscleGroup: "Legs", Exercise: "Squats", Sets: []SetInput{{Reps: 5, WeightKG: -1}}},
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := service.CreateWorkout(context.Background(), actor, input)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.NotEmpty(t, validationErr.Fields)
		})
	}
	require.Empty(t, repo.workouts)
}

func TestListWorkoutsOwnership(t *testing.T) {
	repo := newFakeRepo()
	lifecycle := NewLifecycleService(repo)
	service := NewWorkoutService(repo, repo)

	for _, user := range []string{"alice", "bob"} {
		actor := Actor{UserID: user}
		_, err := lifecycle.StartSession(context.Background(), actor)
		require.NoError(t, err)
		_, err = service.CreateWorkout(context.Background(), actor, validWorkoutInput())
		require.NoError(t, err)
	}

	// A non-admin cannot read another user's workouts.
	_, _, err := service.ListWorkouts(context.Background(), Actor{UserID: "bob"}, "alice", nil, 10)
	require.ErrorIs(t, err, ErrForbidden)

	// A stray target naming themselves is fine.
	own, _, err := service.ListWorkouts(context.Background(), Actor{UserID: "bob"}, "bob", nil, 10)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, "bob", own[0].UserID)

	// Admin may target anyone, or list everything.
	admin := Actor{UserID: "admin", Admin: true}
	theirs, _, err := service.ListWorkouts(context.Background(), admin, "alice", nil, 10)
	require.NoError(t, err)
	require.Len(t, theirs, 1)

	all, _, err := service.ListWorkouts(context.Background(), admin, "", nil, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
