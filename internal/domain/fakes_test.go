package domain

import (
	"context"
	"slices"
	"strings"
	"time"
)

// fakeRepo is an in-memory implementation of the repository interfaces used
// by the service tests.
type fakeRepo struct {
	users    map[string]User
	sessions map[string]GymSession
	workouts []Workout
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    make(map[string]User),
		sessions: make(map[string]GymSession),
	}
}

func (f *fakeRepo) CreateUser(ctx context.Context, user User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return ErrUsernameTaken
		}
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeRepo) UserByID(ctx context.Context, userID string) (*User, error) {
	if user, ok := f.users[userID]; ok {
		return &user, nil
	}
	return nil, nil
}

func (f *fakeRepo) UserByUsername(ctx context.Context, username string) (*User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListUsers(ctx context.Context) ([]User, error) {
	out := make([]User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, user)
	}
	slices.SortFunc(out, func(a, b User) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func (f *fakeRepo) DeleteUser(ctx context.Context, userID string) error {
	if _, ok := f.users[userID]; !ok {
		return ErrUserNotFound
	}
	delete(f.users, userID)
	for id, session := range f.sessions {
		if session.UserID == userID {
			delete(f.sessions, id)
		}
	}
	f.workouts = slices.DeleteFunc(f.workouts, func(w Workout) bool { return w.UserID == userID })
	return nil
}

func (f *fakeRepo) OpenSession(ctx context.Context, session GymSession) error {
	for _, existing := range f.sessions {
		if existing.UserID == session.UserID && existing.Open() {
			return ErrSessionAlreadyOpen
		}
	}
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeRepo) OpenSessionFor(ctx context.Context, userID string) (*GymSession, error) {
	for _, session := range f.sessions {
		if session.UserID == userID && session.Open() {
			return &session, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) CloseSession(ctx context.Context, sessionID string, endedAt time.Time, durationMin float64) error {
	session, ok := f.sessions[sessionID]
	if !ok || !session.Open() {
		return ErrNoSessionToEnd
	}
	session.EndedAt = &endedAt
	session.DurationMin = &durationMin
	f.sessions[sessionID] = session
	return nil
}

func (f *fakeRepo) ListSessions(ctx context.Context, userID string) ([]GymSession, error) {
	var out []GymSession
	for _, session := range f.sessions {
		if session.UserID == userID {
			out = append(out, session)
		}
	}
	slices.SortFunc(out, func(a, b GymSession) int { return b.StartedAt.Compare(a.StartedAt) })
	return out, nil
}

func (f *fakeRepo) CreateWorkout(ctx context.Context, workout Workout) error {
	f.workouts = append(f.workouts, workout)
	return nil
}

func (f *fakeRepo) sorted(desc bool) []Workout {
	out := slices.Clone(f.workouts)
	slices.SortFunc(out, func(a, b Workout) int {
		cmp := strings.Compare(a.Date+a.Time+a.ID, b.Date+b.Time+b.ID)
		if desc {
			return -cmp
		}
		return cmp
	})
	return out
}

func (f *fakeRepo) ListWorkouts(ctx context.Context, userID string, cursor *Cursor, limit int) ([]Workout, *Cursor, error) {
	var out []Workout
	for _, workout := range f.sorted(true) {
		if workout.UserID == userID {
			out = append(out, workout)
		}
	}
	return clip(out, limit), nil, nil
}

func (f *fakeRepo) ListAllWorkouts(ctx context.Context, cursor *Cursor, limit int) ([]Workout, *Cursor, error) {
	return clip(f.sorted(true), limit), nil, nil
}

func (f *fakeRepo) ExportRows(ctx context.Context, userID string) ([]ExportRow, error) {
	var out []ExportRow
	for _, workout := range f.sorted(false) {
		if userID != "" && workout.UserID != userID {
			continue
		}
		username := ""
		if user, ok := f.users[workout.UserID]; ok {
			username = user.Username
		}
		if len(workout.Sets) == 0 {
			out = append(out, ExportRow{
				Username:    username,
				Date:        workout.Date,
				Time:        workout.Time,
				MuscleGroup: workout.MuscleGroup,
				Exercise:    workout.Exercise,
			})
			continue
		}
		for _, set := range workout.Sets {
			setNumber, reps, weight := set.SetNumber, set.Reps, set.WeightKG
			out = append(out, ExportRow{
				Username:    username,
				Date:        workout.Date,
				Time:        workout.Time,
				MuscleGroup: workout.MuscleGroup,
				Exercise:    workout.Exercise,
				SetNumber:   &setNumber,
				Reps:        &reps,
				WeightKG:    &weight,
			})
		}
	}
	return out, nil
}

func (f *fakeRepo) UserStats(ctx context.Context, userID string) (UserStats, error) {
	stats := UserStats{}
	groups := map[string]int{}
	byDate := map[string]int{}
	for _, workout := range f.workouts {
		if workout.UserID != userID {
			continue
		}
		stats.TotalWorkouts++
		stats.TotalSets += len(workout.Sets)
		groups[workout.MuscleGroup]++
		byDate[workout.Date]++
	}
	for group, count := range groups {
		best := groups[stats.TopMuscleGroup]
		if count > best || (count == best && (stats.TopMuscleGroup == "" || group < stats.TopMuscleGroup)) {
			stats.TopMuscleGroup = group
		}
	}
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	slices.Sort(dates)
	for _, date := range dates {
		stats.WorkoutsByDate = append(stats.WorkoutsByDate, DateCount{Date: date, Count: byDate[date]})
	}
	return stats, nil
}

func (f *fakeRepo) GlobalStats(ctx context.Context, topN int) (GlobalStats, error) {
	stats := GlobalStats{TotalUsers: len(f.users), TotalWorkouts: len(f.workouts)}
	counts := map[string]int{}
	byDay := map[string]int{}
	for _, workout := range f.workouts {
		counts[workout.UserID]++
		byDay[workout.Date]++
	}
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		return strings.Compare(a, b)
	})
	for _, id := range clip(ids, topN) {
		entry := UserActivity{UserID: id, Workouts: counts[id]}
		if user, ok := f.users[id]; ok {
			entry.Username = user.Username
		}
		stats.MostActive = append(stats.MostActive, entry)
	}
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	slices.Sort(days)
	for _, day := range days {
		stats.WorkoutsByDay = append(stats.WorkoutsByDay, DateCount{Date: day, Count: byDay[day]})
	}
	return stats, nil
}

func clip[T any](values []T, limit int) []T {
	if limit > 0 && len(values) > limit {
		return values[:limit]
	}
	return values
}

// plainHasher is a transparent stand-in for the bcrypt hasher.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (plainHasher) Verify(password, digest string) bool { return digest == "hash:"+password }
