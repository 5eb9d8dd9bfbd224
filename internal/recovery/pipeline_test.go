package recovery_test

import (
	"errors"
	"testing"

	"alcyxob/fitness-ai/internal/domain"
	"alcyxob/fitness-ai/internal/recovery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_RecoverExercise(t *testing.T) {
	p := recovery.NewPipeline()

	t.Run("fenced squat with empty equipment", func(t *testing.T) {
		raw := "```json\n{\"name\":\"Squat\",\"category\":\"Strength\",\"equipment\":[],\"primaryMuscles\":[\"Legs\"],\"difficulty\":\"Beginner\",\"muscleGroup\":\"Legs\"}\n```"
		res, err := p.RecoverExercise(raw)
		require.NoError(t, err)
		assert.False(t, res.NotFound)
		assert.Equal(t, recovery.StrategyFenced, res.Strategy)
		assert.Equal(t, []string{"Bodyweight"}, res.Exercise.Equipment)
		assert.True(t, p.Validator().Exercise(recovery.ExerciseFields(res.Exercise)).Valid)
	})

	t.Run("prose reply is not found", func(t *testing.T) {
		res, err := p.RecoverExercise("I cannot find this exercise.")
		require.NoError(t, err)
		assert.True(t, res.NotFound)
	})

	t.Run("explicit not found", func(t *testing.T) {
		res, err := p.RecoverExercise(`{"error": "not_found"}`)
		require.NoError(t, err)
		assert.True(t, res.NotFound)
	})

	t.Run("unrecoverable output", func(t *testing.T) {
		_, err := p.RecoverExercise(`{"name":"X","category":"Weights"}`)
		var failure *recovery.ValidationFailure
		require.True(t, errors.As(err, &failure))
		assert.Contains(t, failure.Errors, "Exercise name must be at least 2 characters long")
		assert.Contains(t, failure.Errors, "Category must be one of: Strength, Cardio, Flexibility, Sports, Functional")
		assert.Contains(t, failure.Errors, "Missing required field: difficulty")
	})

	t.Run("empty output", func(t *testing.T) {
		_, err := p.RecoverExercise(" ")
		var upstream *recovery.UpstreamFailure
		require.True(t, errors.As(err, &upstream))
		assert.ErrorIs(t, err, recovery.ErrEmptyOutput)
	})
}

func TestPipeline_RecoverExerciseList(t *testing.T) {
	p := recovery.NewPipeline()
	exercises, strategy, err := p.RecoverExerciseList(`Variations: [
		{"name":"Wide Push-ups","category":"Strength","primaryMuscles":["Chest"],"difficulty":"Beginner","muscleGroup":"Chest"},
		{"name":"Diamond Push-ups","category":"strength","equipment":["Bodyweight"],"primaryMuscles":["Triceps"],"difficulty":"Intermediate","muscleGroup":"Arms"}
	]`)
	require.NoError(t, err)
	assert.Equal(t, recovery.StrategyOuterSpan, strategy)
	require.Len(t, exercises, 2)
	assert.Equal(t, []string{"Bodyweight"}, exercises[0].Equipment)
	assert.Equal(t, domain.CategoryStrength, exercises[1].Category)

	_, _, err = p.RecoverExerciseList(`[{"name":"Wide Push-ups","category":"Strength","difficulty":"Beginner","muscleGroup":"Chest"},{"name":"Lunge"}]`)
	var failure *recovery.ValidationFailure
	require.True(t, errors.As(err, &failure))
	assert.Contains(t, failure.Errors, "Exercise 2: Missing required field: category")

	_, _, err = p.RecoverExerciseList("no idea")
	var extraction *recovery.ExtractionFailure
	assert.True(t, errors.As(err, &extraction))
}

func TestPipeline_RecoverAlternatives(t *testing.T) {
	p := recovery.NewPipeline()
	ctx := recovery.Context{TargetMuscleGroups: []string{"Chest"}, ExcludeNames: []string{"Bench Press"}}

	t.Run("truncated array", func(t *testing.T) {
		raw := `[{"name":"Bench Press"},{"name":"Dumbbell Flyes","primaryMuscles":["Chest"]},{"name":"Cable Crossover","primaryMuscles":["Chest"],"sets":[{"reps":12`
		res := p.RecoverAlternatives(raw, ctx)
		assert.False(t, res.FallbackUsed)
		assert.Equal(t, recovery.StrategyBracketRepair, res.Strategy)
		require.Len(t, res.Alternatives, 2)
		assert.Equal(t, "Dumbbell Flyes", res.Alternatives[0].Name)
		assert.Equal(t, domain.MuscleGroupChest, res.Alternatives[0].MuscleGroup)
		assert.Equal(t, domain.CategoryStrength, res.Alternatives[0].Category)
	})

	t.Run("lone object is wrapped", func(t *testing.T) {
		res := p.RecoverAlternatives(`{"name":"Svend Press","primaryMuscles":["Chest"]}`, ctx)
		assert.False(t, res.FallbackUsed)
		require.Len(t, res.Alternatives, 1)
	})

	t.Run("caps at three", func(t *testing.T) {
		res := p.RecoverAlternatives(`[{"name":"One A"},{"name":"Two B"},{"name":"Three C"},{"name":"Four D"}]`, ctx)
		assert.Len(t, res.Alternatives, 3)
	})

	t.Run("garbage falls back", func(t *testing.T) {
		res := p.RecoverAlternatives("Unfortunately I cannot help with that.", ctx)
		assert.True(t, res.FallbackUsed)
		assert.True(t, res.ParseError)
		assert.Equal(t, "Unfortunately I cannot help with that.", res.RawText)
		require.NotEmpty(t, res.Alternatives)
		assert.LessOrEqual(t, len(res.Alternatives), 3)
		assert.Equal(t, "Push-ups", res.Alternatives[0].Name)
	})

	t.Run("only invalid suggestions fall back", func(t *testing.T) {
		res := p.RecoverAlternatives(`[{"name":"X"},{"name":"Bench Press"}]`, ctx)
		assert.True(t, res.FallbackUsed)
		assert.False(t, res.ParseError)
		assert.Contains(t, res.Rejected, "Exercise name must be at least 2 characters long")
	})
}

func TestPipeline_RecoverWorkout(t *testing.T) {
	p := recovery.NewPipeline()

	t.Run("empty output uses a fallback with chest work", func(t *testing.T) {
		res := p.RecoverWorkout("", recovery.Context{TargetMuscleGroups: []string{"Chest"}})
		assert.True(t, res.FallbackUsed)
		assert.False(t, res.ParseError)
		require.NotEmpty(t, res.Workout.Exercises)

		var names []string
		for _, ex := range res.Workout.Exercises {
			names = append(names, ex.Name)
		}
		assert.Contains(t, names, "Push-ups")
	})

	t.Run("unparseable output keeps the raw text", func(t *testing.T) {
		res := p.RecoverWorkout("Sorry, I can't help with that.", recovery.Context{})
		assert.True(t, res.FallbackUsed)
		assert.True(t, res.ParseError)
		assert.Equal(t, "Sorry, I can't help with that.", res.RawText)
		assert.True(t, p.Validator().Workout(recovery.WorkoutFields(res.Workout)).Valid)
	})

	t.Run("bad sets are repaired", func(t *testing.T) {
		raw := `{"name":"Push Day","description":"Chest work","estimatedDuration":30,"targetMuscleGroups":["Chest"],
			"exercises":[{"name":"Push-ups","type":"Strength","muscleGroups":["Chest"],"instructions":"Go.","sets":[{"reps":"twelve","weight":-5}]}]}`
		res := p.RecoverWorkout(raw, recovery.Context{})
		assert.False(t, res.FallbackUsed)
		assert.Equal(t, recovery.StrategyOuterSpan, res.Strategy)
		require.Len(t, res.Workout.Exercises, 1)
		assert.Equal(t, []domain.Set{{Reps: 12, Weight: 0}}, res.Workout.Exercises[0].Sets)
	})

	t.Run("out of range numbers are repaired", func(t *testing.T) {
		raw := `{"exercises":[{"name":"Squat","sets":1e20,"reps":10}]}`
		var res recovery.WorkoutResult
		require.NotPanics(t, func() { res = p.RecoverWorkout(raw, recovery.Context{}) })
		require.NotEmpty(t, res.Workout.Exercises)
		assert.Equal(t, []domain.Set{{Reps: 10}}, res.Workout.Exercises[0].Sets)
	})

	t.Run("numbered list becomes a workout", func(t *testing.T) {
		raw := "Here is your plan:\n1. Goblet Squats - 3 sets\n2. Push-ups: 10 reps\n3. Plank"
		res := p.RecoverWorkout(raw, recovery.Context{Goal: "strength", RequestedDurationMinutes: 20})
		assert.False(t, res.FallbackUsed)
		assert.Equal(t, recovery.StrategyStructuredText, res.Strategy)
		require.Len(t, res.Workout.Exercises, 3)
		assert.Equal(t, "Strength Workout (20min)", res.Workout.Name)
	})

	t.Run("all warm-up content falls back", func(t *testing.T) {
		raw := `{"name":"Loosen","sections":[{"name":"Warm-up","exercises":[{"name":"Arm Circles"}]}]}`
		res := p.RecoverWorkout(raw, recovery.Context{})
		assert.True(t, res.FallbackUsed)
		assert.Contains(t, res.ValidationErrors, "Exercises must be a non-empty array")
	})

	t.Run("warm-up policy can be disabled", func(t *testing.T) {
		raw := `{"name":"Loosen","sections":[{"name":"Warm-up","exercises":[{"name":"Arm Circles"}]}]}`
		res := recovery.NewPipeline(recovery.WithWarmupPolicy(recovery.WarmupPolicy{})).RecoverWorkout(raw, recovery.Context{})
		assert.False(t, res.FallbackUsed)
		assert.Equal(t, "Arm Circles", res.Workout.Exercises[0].Name)
	})
}
