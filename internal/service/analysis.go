package service

import (
	"fmt"
	"slices"
	"strings"

	"alcyxob/fitness-ai/internal/domain"
)

// Thresholds, in sessions, over the history window.
const (
	overworkedSessions  = 3
	underworkedSessions = 1
)

const balancedRecommendation = "Well balanced training - continue current rotation"

// MuscleBalance summarises how often each muscle was trained recently.
type MuscleBalance struct {
	Counts         map[string]int `json:"counts"`
	Overworked     []string       `json:"overworked"`
	Underworked    []string       `json:"underworked"`
	Balanced       bool           `json:"balanced"`
	Recommendation string         `json:"recommendation"`
}

var injuryTips = map[string][]string{
	"beginner": {
		"Start with bodyweight exercises before adding weights",
		"Focus on form over intensity",
		"Allow 48 hours rest between training same muscle groups",
		"Progress gradually - increase weight by 5-10% weekly",
	},
	"intermediate": {
		"Include proper warm-up and cool-down routines",
		"Listen to your body and rest when needed",
		"Vary your training to prevent overuse injuries",
		"Consider working with a trainer for form checks",
	},
	"advanced": {
		"Periodize your training to prevent overtraining",
		"Include mobility and recovery work",
		"Monitor fatigue and adjust intensity accordingly",
		"Consider deload weeks every 4-6 weeks",
	},
}

// AnalyzeMuscleBalance counts each muscle at most once per session.
func AnalyzeMuscleBalance(sessions []domain.WorkoutSession) MuscleBalance {
	counts := map[string]int{}
	display := map[string]string{} // first spelling seen wins
	for _, s := range sessions {
		seen := map[string]bool{}
		for _, e := range s.Exercises {
			for _, m := range e.MuscleGroups {
				m = strings.TrimSpace(m)
				key := strings.ToLower(m)
				if m == "" || seen[key] {
					continue
				}
				seen[key] = true
				if _, ok := display[key]; !ok {
					display[key] = m
				}
				counts[display[key]]++
			}
		}
	}

	b := MuscleBalance{Counts: counts}
	for m, n := range counts {
		switch {
		case n >= overworkedSessions:
			b.Overworked = append(b.Overworked, m)
		case n <= underworkedSessions:
			b.Underworked = append(b.Underworked, m)
		}
	}
	slices.Sort(b.Overworked)
	slices.Sort(b.Underworked)

	switch {
	case len(b.Underworked) > 0:
		b.Recommendation = fmt.Sprintf("Focus on %s - underworked in past %d days", strings.Join(b.Underworked, ", "), historyDays)
	case len(b.Overworked) > 0:
		b.Recommendation = fmt.Sprintf("Consider rest for %s - trained frequently", strings.Join(b.Overworked, ", "))
	default:
		b.Balanced = true
		b.Recommendation = balancedRecommendation
	}
	return b
}

// InjuryTips returns the prevention tips for level. Unknown levels get the
// beginner tips.
func InjuryTips(level string) []string {
	tips, ok := injuryTips[NormalizeFitnessLevel(level)]
	if !ok {
		tips = injuryTips["beginner"]
	}
	return slices.Clone(tips)
}

// NormalizeFitnessLevel maps free-form levels onto beginner, intermediate or
// advanced. Anything unrecognised is beginner.
func NormalizeFitnessLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "intermediate", "moderate":
		return "intermediate"
	case "advanced", "expert":
		return "advanced"
	}
	return "beginner"
}

// RecentExerciseNames lists each exercise name once, newest session first.
func RecentExerciseNames(sessions []domain.WorkoutSession) []string {
	var names []string
	for _, s := range sessions {
		for _, e := range s.Exercises {
			if n := strings.TrimSpace(e.Name); n != "" && !containsFold(names, n) {
				names = append(names, n)
			}
		}
	}
	return names
}

func RecentWorkoutNames(sessions []domain.WorkoutSession) []string {
	var names []string
	for _, s := range sessions {
		if n := strings.TrimSpace(s.WorkoutName); n != "" && !containsFold(names, n) {
			names = append(names, n)
		}
	}
	return names
}
