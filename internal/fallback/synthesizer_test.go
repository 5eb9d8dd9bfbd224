package fallback_test

import (
	"testing"

	"alcyxob/fitness-ai/internal/domain"
	"alcyxob/fitness-ai/internal/fallback"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var everyName = []string{
	"Push-ups", "Incline Push-ups", "Bodyweight Rows", "Superman", "Bodyweight Squats", "Lunges",
	"Pike Push-ups", "Plank", "Mountain Climbers", "Tricep Dips", "Burpees",
	"Jumping Jacks", "Squats", "Glute Bridges", "Dead Bug", "High Knees", "Wall Sit", "Russian Twists", "Jump Squats",
}

func TestSynthesizer_NeverEmpty(t *testing.T) {
	s := fallback.NewSynthesizer()
	targets := [][]string{nil, {}, {""}, {"Chest"}, {"Nonexistent"}, {"Legs", "Core"}}
	excludes := [][]string{nil, everyName}
	equipment := [][]string{nil, {"Dumbbells"}}
	durations := []int{0, -5, 20, 45, 90}

	for _, tg := range targets {
		for _, ex := range excludes {
			for _, eq := range equipment {
				for _, d := range durations {
					ctx := fallback.Context{TargetMuscleGroups: tg, ExcludeNames: ex, AvailableEquipment: eq, RequestedDurationMinutes: d}
					assert.NotEmpty(t, s.Exercises(ctx))

					alts := s.Alternatives(ctx)
					assert.NotEmpty(t, alts)
					assert.LessOrEqual(t, len(alts), fallback.MaxAlternatives)

					w := s.Workout(ctx)
					assert.NotEmpty(t, w.Exercises)
					assert.NotEmpty(t, w.TargetMuscleGroups)
					assert.Positive(t, w.EstimatedDuration)
					for _, we := range w.Exercises {
						assert.NotEmpty(t, we.Sets)
						assert.NotEmpty(t, we.MuscleGroups)
					}
				}
			}
		}
	}
}

func TestSynthesizer_Exercises(t *testing.T) {
	s := fallback.NewSynthesizer()

	chest := s.Exercises(fallback.Context{TargetMuscleGroups: []string{"chest"}})
	require.NotEmpty(t, chest)
	assert.Equal(t, "Push-ups", chest[0].Name)

	excluded := s.Exercises(fallback.Context{TargetMuscleGroups: []string{"Chest"}, ExcludeNames: []string{"Push-ups"}})
	assert.Equal(t, "Incline Push-ups", excluded[0].Name)

	unknown := s.Exercises(fallback.Context{TargetMuscleGroups: []string{"Nonexistent"}})
	require.Len(t, unknown, 1)
	assert.Equal(t, "Burpees", unknown[0].Name)
	assert.Equal(t, domain.MuscleGroupFullBody, unknown[0].MuscleGroup)

	all := s.Exercises(fallback.Context{})
	assert.Len(t, all, fallback.MaxExercises)

	noBench := s.Exercises(fallback.Context{TargetMuscleGroups: []string{"Triceps"}, AvailableEquipment: []string{"Dumbbells"}})
	for _, ex := range noBench {
		assert.NotEqual(t, "Tricep Dips", ex.Name)
	}
}

func TestSynthesizer_ResultsAreCopies(t *testing.T) {
	s := fallback.NewSynthesizer()
	first := s.Exercises(fallback.Context{TargetMuscleGroups: []string{"Chest"}})
	first[0].PrimaryMuscles[0] = "Mutated"

	second := s.Exercises(fallback.Context{TargetMuscleGroups: []string{"Chest"}})
	assert.Equal(t, "Chest", second[0].PrimaryMuscles[0])
}

func TestSelectTemplate(t *testing.T) {
	assert.Equal(t, "Quick HIIT Blast", fallback.SelectTemplate(nil).Name)
	assert.Equal(t, "Quick HIIT Blast", fallback.SelectTemplate([]string{"", "  "}).Name)
	assert.Equal(t, "Strength Circuit", fallback.SelectTemplate([]string{"Quick morning burn"}).Name)
	assert.Equal(t, "Cardio Flow", fallback.SelectTemplate([]string{"Quick HIIT Blast", "Upper Strength"}).Name)
	assert.Equal(t, "Quick HIIT Blast", fallback.SelectTemplate([]string{"Quick", "Strength", "Cardio"}).Name)
}

func TestExerciseCountFor(t *testing.T) {
	assert.Equal(t, 3, fallback.ExerciseCountFor(20))
	assert.Equal(t, 3, fallback.ExerciseCountFor(30))
	assert.Equal(t, 4, fallback.ExerciseCountFor(45))
	assert.Equal(t, 5, fallback.ExerciseCountFor(60))
}

func TestSynthesizer_Workout(t *testing.T) {
	s := fallback.NewSynthesizer()

	w := s.Workout(fallback.Context{TargetMuscleGroups: []string{"Chest"}, RequestedDurationMinutes: 60})
	assert.Equal(t, "Quick HIIT Blast", w.Name)
	assert.Len(t, w.Exercises, 5)
	assert.Equal(t, 60, w.EstimatedDuration)
	assert.Equal(t, []string{"Chest"}, w.TargetMuscleGroups)

	// Strength Circuit has no chest work in its first three exercises.
	w = s.Workout(fallback.Context{TargetMuscleGroups: []string{"Chest"}, RecentWorkoutNames: []string{"Quick HIIT Blast"}})
	assert.Equal(t, "Strength Circuit", w.Name)
	require.Len(t, w.Exercises, 3)
	assert.Equal(t, "Push-ups", w.Exercises[2].Name)
	assert.Equal(t, domain.DefaultWorkoutDuration, w.EstimatedDuration)

	// Excluded template exercises are skipped before trimming.
	w = s.Workout(fallback.Context{ExcludeNames: []string{"Jumping Jacks"}})
	assert.Equal(t, "Push-ups", w.Exercises[0].Name)
	assert.Equal(t, []string{"Chest", "Triceps", "Shoulders", "Legs", "Glutes", "Core"}, w.TargetMuscleGroups)
}

func TestGroupFor(t *testing.T) {
	assert.Equal(t, domain.MuscleGroupArms, fallback.GroupFor([]string{"Triceps"}))
	assert.Equal(t, domain.MuscleGroupLegs, fallback.GroupFor([]string{"legs"}))
	assert.Equal(t, domain.MuscleGroupCore, fallback.GroupFor([]string{"Unknown", "Abs"}))
	assert.Equal(t, domain.MuscleGroupFullBody, fallback.GroupFor([]string{"Sprinting"}))
	assert.Equal(t, domain.MuscleGroupFullBody, fallback.GroupFor(nil))
}
