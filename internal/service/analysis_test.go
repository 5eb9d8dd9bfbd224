package service

import (
	"testing"

	"alcyxob/fitness-ai/internal/domain"

	"github.com/stretchr/testify/assert"
)

func session(name string, muscles ...[]string) domain.WorkoutSession {
	s := domain.WorkoutSession{WorkoutName: name}
	for i, m := range muscles {
		s.Exercises = append(s.Exercises, domain.SessionExercise{Name: name + " exercise " + string(rune('A'+i)), MuscleGroups: m})
	}
	return s
}

func TestAnalyzeMuscleBalance(t *testing.T) {
	t.Run("no history is balanced", func(t *testing.T) {
		b := AnalyzeMuscleBalance(nil)
		assert.True(t, b.Balanced)
		assert.Equal(t, "Well balanced training - continue current rotation", b.Recommendation)
	})

	t.Run("counts a muscle once per session", func(t *testing.T) {
		sessions := []domain.WorkoutSession{
			session("Mon", []string{"Chest", "Triceps"}, []string{"chest"}),
			session("Tue", []string{"Chest"}),
			session("Wed", []string{"Chest", "Legs"}),
			session("Thu", []string{"Legs"}),
		}
		b := AnalyzeMuscleBalance(sessions)
		assert.Equal(t, 3, b.Counts["Chest"])
		assert.Equal(t, []string{"Chest"}, b.Overworked)
		assert.Equal(t, []string{"Triceps"}, b.Underworked)
		assert.False(t, b.Balanced)
		assert.Equal(t, "Focus on Triceps - underworked in past 4 days", b.Recommendation)
	})

	t.Run("overworked only", func(t *testing.T) {
		sessions := []domain.WorkoutSession{
			session("A", []string{"Back"}),
			session("B", []string{"Back"}),
			session("C", []string{"Back"}),
		}
		b := AnalyzeMuscleBalance(sessions)
		assert.Empty(t, b.Underworked)
		assert.Equal(t, "Consider rest for Back - trained frequently", b.Recommendation)
	})

	t.Run("two sessions each is balanced", func(t *testing.T) {
		sessions := []domain.WorkoutSession{
			session("A", []string{"Back", "Legs"}),
			session("B", []string{"Back", "Legs"}),
		}
		assert.True(t, AnalyzeMuscleBalance(sessions).Balanced)
	})
}

func TestInjuryTips(t *testing.T) {
	assert.Equal(t, "Start with bodyweight exercises before adding weights", InjuryTips("")[0])
	assert.Equal(t, "Start with bodyweight exercises before adding weights", InjuryTips("couch potato")[0])
	assert.Equal(t, "Include proper warm-up and cool-down routines", InjuryTips("Moderate")[0])
	assert.Equal(t, "Consider deload weeks every 4-6 weeks", InjuryTips("advanced")[3])

	tips := InjuryTips("beginner")
	tips[0] = "changed"
	assert.NotEqual(t, "changed", InjuryTips("beginner")[0])
}

func TestRecentNames(t *testing.T) {
	sessions := []domain.WorkoutSession{
		{WorkoutName: "Quick HIIT Blast", Exercises: []domain.SessionExercise{{Name: "Burpees"}, {Name: "Jumping Jacks"}}},
		{WorkoutName: "quick hiit blast", Exercises: []domain.SessionExercise{{Name: "burpees"}, {Name: " "}}},
	}
	assert.Equal(t, []string{"Burpees", "Jumping Jacks"}, RecentExerciseNames(sessions))
	assert.Equal(t, []string{"Quick HIIT Blast"}, RecentWorkoutNames(sessions))
}
