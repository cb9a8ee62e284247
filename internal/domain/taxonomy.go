package domain

import "slices"

// exerciseCatalog maps each muscle group to its recognized exercises.
var exerciseCatalog = map[string][]string{
	"Chest":     {"Bench Press", "Incline Bench Press", "Decline Bench Press", "Dumbbell Flyes", "Push-ups", "Cable Crossover"},
	"Back":      {"Deadlift", "Pull-ups", "Barbell Row", "Lat Pulldown", "T-Bar Row", "Cable Row"},
	"Shoulders": {"Overhead Press", "Lateral Raises", "Front Raises", "Rear Delt Flyes", "Shrugs", "Arnold Press"},
	"Arms":      {"Bicep Curls", "Tricep Dips", "Hammer Curls", "Tricep Extensions", "Preacher Curls", "Close Grip Bench Press"},
	"Legs":      {"Squats", "Leg Press", "Lunges", "Leg Curls", "Leg Extensions", "Calf Raises"},
	"Core":      {"Plank", "Crunches", "Russian Twists", "Leg Raises", "Mountain Climbers", "Bicycle Crunches"},
}

// MuscleGroups returns the known muscle groups in sorted order.
func MuscleGroups() []string {
	out := make([]string, 0, len(exerciseCatalog))
	for group := range exerciseCatalog {
		out = append(out, group)
	}
	slices.Sort(out)
	return out
}

// ExercisesFor returns the exercises for a muscle group. The second return
// value reports whether the group is known.
func ExercisesFor(muscleGroup string) ([]string, bool) {
	exercises, ok := exerciseCatalog[muscleGroup]
	if !ok {
		return nil, false
	}
	return slices.Clone(exercises), true
}

// ValidExercise reports whether the exercise belongs to the muscle group.
func ValidExercise(muscleGroup, exercise string) bool {
	exercises, ok := exerciseCatalog[muscleGroup]
	return ok && slices.Contains(exercises, exercise)
}
