package api

import (
	"time"

	"example.com/workoutlog/internal/domain"
)

// RegisterRequest is the payload for POST /v1/auth/register.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// LoginRequest is the payload for POST /v1/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token and the authenticated account.
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// SetPayload is one set within a workout being logged.
type SetPayload struct {
	Reps     int     `json:"reps" validate:"required,min=1"`
	WeightKG float64 `json:"weight_kg" validate:"min=0"`
}

// CreateWorkoutRequest is the payload for POST /v1/workouts.
type CreateWorkoutRequest struct {
	MuscleGroup string       `json:"muscle_group" validate:"required"`
	Exercise    string       `json:"exercise" validate:"required"`
	Sets        []SetPayload `json:"sets" validate:"required,min=1,dive"`
}

// UserView exposes account details without the password hash.
type UserView struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionView exposes a gym session.
type SessionView struct {
	SessionID   string     `json:"session_id"`
	UserID      string     `json:"user_id"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	DurationMin *float64   `json:"duration_min,omitempty"`
}

// SetView exposes one workout set.
type SetView struct {
	SetNumber int     `json:"set_number"`
	Reps      int     `json:"reps"`
	WeightKG  float64 `json:"weight_kg"`
}

// WorkoutView exposes a workout with its sets.
type WorkoutView struct {
	WorkoutID   string    `json:"workout_id"`
	UserID      string    `json:"user_id,omitempty"`
	SessionID   *string   `json:"session_id,omitempty"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	MuscleGroup string    `json:"muscle_group"`
	Exercise    string    `json:"exercise"`
	Sets        []SetView `json:"sets"`
}

// ExercisesResponse lists the exercises of one muscle group.
type ExercisesResponse struct {
	MuscleGroup string   `json:"muscle_group"`
	Exercises   []string `json:"exercises"`
}

// ListSessionsResponse packages session list results.
type ListSessionsResponse struct {
	Items []SessionView `json:"items"`
}

// ListWorkoutsResponse packages workout list results.
type ListWorkoutsResponse struct {
	Items      []WorkoutView `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// ListUsersResponse packages the admin account listing.
type ListUsersResponse struct {
	Items []UserView `json:"items"`
}

// DateCountView is a per-day workout count.
type DateCountView struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// UserStatsView summarises one user's history.
type UserStatsView struct {
	TotalWorkouts  int             `json:"total_workouts"`
	TotalSets      int             `json:"total_sets"`
	TopMuscleGroup string          `json:"top_muscle_group,omitempty"`
	WorkoutsByDate []DateCountView `json:"workouts_by_date"`
}

// UserActivityView ranks one user by workout count.
type UserActivityView struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Workouts int    `json:"workouts"`
}

// GlobalStatsView summarises the whole installation.
type GlobalStatsView struct {
	TotalUsers    int                `json:"total_users"`
	TotalWorkouts int                `json:"total_workouts"`
	MostActive    []UserActivityView `json:"most_active"`
	WorkoutsByDay []DateCountView    `json:"workouts_by_day"`
}

// FieldErrorView pins a validation message to an input field.
type FieldErrorView struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse is the 400 body for malformed input.
type ValidationErrorResponse struct {
	Type   string           `json:"type"`
	Detail string           `json:"detail"`
	Fields []FieldErrorView `json:"fields"`
}

func toUserView(user domain.User) UserView {
	return UserView{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsAdmin:   user.Admin,
		CreatedAt: user.CreatedAt,
	}
}

func toSessionView(session domain.GymSession) SessionView {
	return SessionView{
		SessionID:   session.ID,
		UserID:      session.UserID,
		StartedAt:   session.StartedAt,
		EndedAt:     session.EndedAt,
		DurationMin: session.DurationMin,
	}
}

func toWorkoutView(workout domain.Workout) WorkoutView {
	view := WorkoutView{
		WorkoutID:   workout.ID,
		UserID:      workout.UserID,
		SessionID:   workout.SessionID,
		Date:        workout.Date,
		Time:        workout.Time,
		MuscleGroup: workout.MuscleGroup,
		Exercise:    workout.Exercise,
		Sets:        make([]SetView, 0, len(workout.Sets)),
	}
	for _, set := range workout.Sets {
		view.Sets = append(view.Sets, SetView{SetNumber: set.SetNumber, Reps: set.Reps, WeightKG: set.WeightKG})
	}
	return view
}

func toUserStatsView(stats domain.UserStats) UserStatsView {
	return UserStatsView{
		TotalWorkouts:  stats.TotalWorkouts,
		TotalSets:      stats.TotalSets,
		TopMuscleGroup: stats.TopMuscleGroup,
		WorkoutsByDate: toDateCountViews(stats.WorkoutsByDate),
	}
}

func toGlobalStatsView(stats domain.GlobalStats) GlobalStatsView {
	view := GlobalStatsView{
		TotalUsers:    stats.TotalUsers,
		TotalWorkouts: stats.TotalWorkouts,
		MostActive:    make([]UserActivityView, 0, len(stats.MostActive)),
		WorkoutsByDay: toDateCountViews(stats.WorkoutsByDay),
	}
	for _, entry := range stats.MostActive {
		view.MostActive = append(view.MostActive, UserActivityView{UserID: entry.UserID, Username: entry.Username, Workouts: entry.Workouts})
	}
	return view
}

func toDateCountViews(counts []domain.DateCount) []DateCountView {
	out := make([]DateCountView, 0, len(counts))
	for _, count := range counts {
		out = append(out, DateCountView{Date: count.Date, Count: count.Count})
	}
	return out
}
