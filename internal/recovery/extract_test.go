package recovery_test

import (
	"errors"
	"testing"

	"alcyxob/fitness-ai/internal/recovery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		shape        recovery.Shape
		wantStrategy recovery.Strategy
		wantName     string
	}{
		{
			name:         "fenced block wins over a second object outside the fence",
			raw:          "Here you go:\n```json\n{\"name\":\"Squat\"}\n```\nOr maybe {\"name\":\"Lunge\"}",
			shape:        recovery.ShapeExercise,
			wantStrategy: recovery.StrategyFenced,
			wantName:     "Squat",
		},
		{
			name:         "fence without language tag",
			raw:          "```\n{\"name\":\"Deadlift\"}\n```",
			shape:        recovery.ShapeExercise,
			wantStrategy: recovery.StrategyFenced,
			wantName:     "Deadlift",
		},
		{
			name:         "object surrounded by prose",
			raw:          "Sure! {\"name\":\"Plank\",\"category\":\"Strength\"} Hope this helps.",
			shape:        recovery.ShapeExercise,
			wantStrategy: recovery.StrategyOuterSpan,
			wantName:     "Plank",
		},
		{
			name:         "trailing commentary with braces",
			raw:          "{\"name\":\"Row\", \"note\":\"keep {form}\"}\nRemember: use {light} weights",
			shape:        recovery.ShapeExercise,
			wantStrategy: recovery.StrategyBraceScan,
			wantName:     "Row",
		},
		{
			name:         "numbered list in prose",
			raw:          "I would suggest:\n1. Push-ups: 3 sets of 12\n2. Bodyweight Squats - 15 reps",
			shape:        recovery.ShapeExercise,
			wantStrategy: recovery.StrategyStructuredText,
			wantName:     "Push-ups",
		},
	}

	ex := recovery.NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ex.Extract(tt.raw, tt.shape)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStrategy, parsed.Strategy)
			obj, ok := parsed.Value.(map[string]any)
			require.True(t, ok, "expected an object, got %T", parsed.Value)
			assert.Equal(t, tt.wantName, obj["name"])
		})
	}
}

func TestExtractor_BracketRepair(t *testing.T) {
	ex := recovery.NewExtractor()

	t.Run("closes nested brackets in order", func(t *testing.T) {
		raw := `[{"name":"Push-ups"},{"name":"Dips","sets":[{"reps":10`
		parsed, err := ex.Extract(raw, recovery.ShapeExerciseList)
		require.NoError(t, err)
		assert.Equal(t, recovery.StrategyBracketRepair, parsed.Strategy)
		items, ok := parsed.Value.([]any)
		require.True(t, ok)
		assert.Len(t, items, 2)
	})

	t.Run("cuts back to the last complete element", func(t *testing.T) {
		raw := "```json\n[{\"name\":\"Push-ups\"},{\"name\":"
		parsed, err := ex.Extract(raw, recovery.ShapeExerciseList)
		require.NoError(t, err)
		assert.Equal(t, recovery.StrategyBracketRepair, parsed.Strategy)
		items, ok := parsed.Value.([]any)
		require.True(t, ok)
		require.Len(t, items, 1)
		assert.Equal(t, "Push-ups", items[0].(map[string]any)["name"])
	})

	t.Run("not applied to object shapes", func(t *testing.T) {
		_, err := ex.Extract(`[{"name":"Push-ups"`, recovery.ShapeWorkout)
		var failure *recovery.ExtractionFailure
		assert.True(t, errors.As(err, &failure))
	})
}

func TestExtractor_StructuredTextForWorkout(t *testing.T) {
	raw := "Try these:\n1. Push-ups: 3 sets of 12\n2. Bodyweight Squats - 15 reps\n3. Stand with feet apart and breathe"
	parsed, err := recovery.NewExtractor().Extract(raw, recovery.ShapeWorkout)
	require.NoError(t, err)
	assert.Equal(t, recovery.StrategyStructuredText, parsed.Strategy)

	obj := parsed.Value.(map[string]any)
	items := obj["exercises"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "Push-ups", items[0].(map[string]any)["name"])
	assert.Equal(t, "Bodyweight Squats", items[1].(map[string]any)["name"])
}

func TestExtractor_NoStructure(t *testing.T) {
	ex := recovery.NewExtractor()
	for _, raw := range []string{"I cannot find this exercise.", "", "   \n"} {
		parsed, err := ex.Extract(raw, recovery.ShapeExercise)
		require.Error(t, err)
		assert.Nil(t, parsed.Value)

		var failure *recovery.ExtractionFailure
		require.True(t, errors.As(err, &failure))
		assert.Equal(t, recovery.ReasonNoStructuredContent, failure.Reason)
		assert.Equal(t, raw, failure.RawTextSample)
	}
}

func TestExtractor_SampleIsBounded(t *testing.T) {
	raw := ""
	for len(raw) < 500 {
		raw += "no json here "
	}
	_, err := recovery.NewExtractor().Extract(raw, recovery.ShapeExercise)
	var failure *recovery.ExtractionFailure
	require.True(t, errors.As(err, &failure))
	assert.Len(t, failure.RawTextSample, 200)
}
