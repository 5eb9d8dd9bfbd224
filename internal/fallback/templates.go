package fallback

import "alcyxob/fitness-ai/internal/domain"

type templateExercise struct {
	name         string
	kind         string
	muscles      []string
	sets         int
	reps         int
	restSeconds  int
	instructions string
}

// Template is a named, fixed workout used when the model output is unusable.
type Template struct {
	Name        string
	Description string
	exercises   []templateExercise
}

var templates = []Template{
	{
		Name:        "Quick HIIT Blast",
		Description: "A fast bodyweight interval session that works the whole body.",
		exercises: []templateExercise{
			{"Jumping Jacks", "Cardio", []string{"Full Body"}, 3, 30, 30, "Jump while raising your arms overhead for 30 seconds."},
			{"Push-ups", "Strength", []string{"Chest", "Triceps", "Shoulders"}, 3, 10, 60, "Lower your chest to the floor with a rigid body."},
			{"Squats", "Strength", []string{"Legs", "Glutes"}, 3, 15, 60, "Sit back and down, keep the chest up."},
			{"Plank", "Strength", []string{"Core"}, 3, 30, 45, "Hold a straight line on your forearms for 30 seconds."},
			{"Burpees", "Cardio", []string{"Full Body"}, 3, 8, 60, "Drop to a plank, jump the feet in and jump up."},
		},
	},
	{
		Name:        "Strength Circuit",
		Description: "A bodyweight strength circuit for legs, shoulders and core.",
		exercises: []templateExercise{
			{"Lunges", "Strength", []string{"Legs", "Glutes"}, 3, 12, 60, "Alternate legs and keep the front knee over the ankle."},
			{"Pike Push-ups", "Strength", []string{"Shoulders", "Triceps"}, 3, 8, 60, "Hips high, lower the head toward the floor."},
			{"Glute Bridges", "Strength", []string{"Glutes", "Hamstrings"}, 3, 15, 45, "Drive through the heels and squeeze at the top."},
			{"Mountain Climbers", "Cardio", []string{"Core", "Shoulders"}, 3, 20, 45, "Drive the knees toward the chest at a steady pace."},
			{"Dead Bug", "Strength", []string{"Core"}, 3, 10, 45, "Keep the lower back pressed down while extending opposite limbs."},
		},
	},
	{
		Name:        "Cardio Flow",
		Description: "A steady cardio flow mixing holds with dynamic moves.",
		exercises: []templateExercise{
			{"High Knees", "Cardio", []string{"Legs", "Full Body"}, 3, 30, 30, "Run in place bringing the knees to hip height for 30 seconds."},
			{"Wall Sit", "Strength", []string{"Legs"}, 3, 45, 45, "Hold thighs parallel to the floor against a wall for 45 seconds."},
			{"Tricep Dips", "Strength", []string{"Arms", "Triceps"}, 3, 12, 60, "Lower until the elbows reach 90 degrees."},
			{"Russian Twists", "Strength", []string{"Core"}, 3, 20, 45, "Lean back slightly and rotate side to side."},
			{"Jump Squats", "Cardio", []string{"Legs", "Glutes"}, 3, 10, 60, "Squat down and explode upward, land softly."},
		},
	},
}

func (te templateExercise) workoutExercise() domain.WorkoutExercise {
	return domain.WorkoutExercise{
		Name:         te.name,
		Type:         te.kind,
		MuscleGroups: append([]string(nil), te.muscles...),
		Instructions: te.instructions,
		Sets:         repeatSet(te.sets, te.reps),
		RestSeconds:  te.restSeconds,
	}
}

func repeatSet(count, reps int) []domain.Set {
	sets := make([]domain.Set, count)
	for i := range sets {
		sets[i] = domain.Set{Reps: reps, Weight: 0}
	}
	return sets
}
