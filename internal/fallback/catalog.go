package fallback

import "alcyxob/fitness-ai/internal/domain"

// entry is an archetype exercise together with the prescription used when it
// is suggested as an alternative or inserted into a template workout.
type entry struct {
	exercise     domain.Exercise
	sets         int
	reps         int
	restSeconds  int
	instructions string
}

func archetype(name string, category domain.Category, difficulty domain.Difficulty, group domain.MuscleGroup,
	primary, secondary, region, equipment []string) domain.Exercise {
	return domain.Exercise{
		Name:             name,
		Category:         category,
		Equipment:        equipment,
		PrimaryMuscles:   primary,
		SecondaryMuscles: secondary,
		TargetRegion:     region,
		Difficulty:       difficulty,
		MovementType:     domain.MovementCompound,
		MuscleGroup:      group,
		GripType:         domain.DefaultGripType,
		RangeOfMotion:    domain.DefaultRangeOfMotion,
		Tempo:            domain.DefaultTempo,
		MovementPattern:  domain.DefaultMovementPattern,
	}
}

var bodyweight = []string{"Bodyweight"}

// catalog is read-only after package initialisation.
var catalog = []entry{
	{archetype("Push-ups", domain.CategoryStrength, domain.DifficultyBeginner, domain.MuscleGroupChest,
		[]string{"Chest", "Triceps", "Shoulders"}, []string{"Core"}, []string{"Upper Body"}, bodyweight),
		3, 12, 60, "Keep a straight line from head to heels and lower your chest to the floor."},
	{archetype("Incline Push-ups", domain.CategoryStrength, domain.DifficultyBeginner, domain.MuscleGroupChest,
		[]string{"Chest", "Triceps"}, []string{"Shoulders"}, []string{"Upper Body"}, bodyweight),
		3, 12, 60, "Hands on a raised surface, lower your chest to the edge and press back up."},
	{archetype("Bodyweight Rows", domain.CategoryStrength, domain.DifficultyIntermediate, domain.MuscleGroupBack,
		[]string{"Back", "Biceps"}, []string{"Rear Delts"}, []string{"Upper Body"}, bodyweight),
		3, 10, 60, "Hang under a sturdy table and pull your chest to the edge."},
	{archetype("Superman", domain.CategoryStrength, domain.DifficultyBeginner, domain.MuscleGroupBack,
		[]string{"Back", "Glutes"}, []string{"Hamstrings"}, []string{"Upper Body", "Core"}, bodyweight),
		3, 12, 45, "Lie face down and lift arms and legs together, pausing at the top."},
	{archetype("Bodyweight Squats", domain.CategoryStrength, domain.DifficultyBeginner, domain.MuscleGroupLegs,
		[]string{"Legs", "Glutes", "Quadriceps"}, []string{"Hamstrings"}, []string{"Lower Body"}, bodyweight),
		3, 15, 60, "Sit back until thighs are parallel to the floor, then drive through your heels."},
	{archetype("Lunges", domain.CategoryStrength, domain.DifficultyBeginner, domain.MuscleGroupLegs,
		[]string{"Legs", "Glutes", "Quadriceps"}, []string{"Hamstrings", "Calves"}, []string{"Lower Body"}, bodyweight),
		3, 12, 60, "Step forward and lower the back knee toward the floor, alternating legs."},
	{archetype("Pike Push-ups", domain.CategoryStrength, domain.DifficultyIntermediate, domain.MuscleGroupShoulders,
		[]string{"Shoulders", "Triceps"}, []string{"Upper Chest"}, []string{"Upper Body"}, bodyweight),
		3, 8, 60, "Hips high in an inverted V, bend the elbows to bring your head toward the floor."},
	{archetype("Plank", domain.CategoryStrength, domain.DifficultyBeginner, domain.MuscleGroupCore,
		[]string{"Core", "Abs"}, []string{"Shoulders"}, []string{"Core"}, bodyweight),
		3, 30, 45, "Hold a straight line on your forearms for the prescribed seconds."},
	{archetype("Mountain Climbers", domain.CategoryCardio, domain.DifficultyIntermediate, domain.MuscleGroupCore,
		[]string{"Core", "Shoulders", "Cardio"}, []string{"Legs"}, []string{"Core", "Full Body"}, bodyweight),
		3, 20, 45, "From a high plank drive the knees toward the chest one at a time."},
	{archetype("Tricep Dips", domain.CategoryStrength, domain.DifficultyIntermediate, domain.MuscleGroupArms,
		[]string{"Arms", "Triceps"}, []string{"Shoulders", "Chest"}, []string{"Upper Body"}, []string{"Bench"}),
		3, 12, 60, "Hands on a bench behind you, lower until the elbows reach 90 degrees."},
}

// generic is returned when nothing in the catalog survives filtering.
var generic = entry{
	archetype("Burpees", domain.CategoryFunctional, domain.DifficultyIntermediate, domain.MuscleGroupFullBody,
		[]string{"Full Body"}, []string{"Chest", "Legs", "Core"}, []string{"Full Body"}, bodyweight),
	3, 5, 90, "Squat, kick back to a plank, do a push-up, jump the feet in and jump up.",
}

// groupAliases maps common muscle names onto the coarse muscle groups.
var groupAliases = map[string]domain.MuscleGroup{
	"pectorals":  domain.MuscleGroupChest,
	"pecs":       domain.MuscleGroupChest,
	"lats":       domain.MuscleGroupBack,
	"traps":      domain.MuscleGroupBack,
	"deltoids":   domain.MuscleGroupShoulders,
	"delts":      domain.MuscleGroupShoulders,
	"biceps":     domain.MuscleGroupArms,
	"triceps":    domain.MuscleGroupArms,
	"forearms":   domain.MuscleGroupArms,
	"quadriceps": domain.MuscleGroupLegs,
	"quads":      domain.MuscleGroupLegs,
	"hamstrings": domain.MuscleGroupLegs,
	"glutes":     domain.MuscleGroupLegs,
	"calves":     domain.MuscleGroupLegs,
	"abs":        domain.MuscleGroupCore,
	"obliques":   domain.MuscleGroupCore,
}
