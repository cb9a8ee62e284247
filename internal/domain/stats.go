package domain

import "context"

// DateCount is a workout count bucketed on one calendar day.
type DateCount struct {
	Date  string
	Count int
}

// UserStats summarises a single user's training history.
type UserStats struct {
	TotalWorkouts  int
	TotalSets      int
	TopMuscleGroup string
	WorkoutsByDate []DateCount
}

// UserActivity ranks a user by workout count.
type UserActivity struct {
	UserID   string
	Username string
	Workouts int
}

// GlobalStats summarises the whole installation. Admin only.
type GlobalStats struct {
	TotalUsers    int
	TotalWorkouts int
	MostActive    []UserActivity
	WorkoutsByDay []DateCount
}

// DefaultTopN bounds the most-active ranking when the caller does not ask
// for a specific size.
const DefaultTopN = 5

// StatsService serves the read-only aggregates.
type StatsService struct {
	stats StatsRepository
}

// NewStatsService constructs a StatsService.
func NewStatsService(stats StatsRepository) *StatsService {
	return &StatsService{stats: stats}
}

// UserStats returns per-user aggregates. Regular users are limited to their
// own; admins may target anyone.
func (s *StatsService) UserStats(ctx context.Context, actor Actor, targetUserID string) (UserStats, error) {
	userID, err := resolveTarget(actor, targetUserID)
	if err != nil {
		return UserStats{}, err
	}
	return s.stats.UserStats(ctx, userID)
}

// GlobalStats returns installation-wide aggregates. Ties in the most-active
// ranking break toward the lexicographically smallest user ID so the result
// is deterministic.
func (s *StatsService) GlobalStats(ctx context.Context, actor Actor, topN int) (GlobalStats, error) {
	if !actor.Admin {
		return GlobalStats{}, ErrForbidden
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	return s.stats.GlobalStats(ctx, topN)
}
