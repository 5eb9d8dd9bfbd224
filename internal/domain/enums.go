package domain

import (
	"slices"
	"strings"
)

// Category classifies an exercise by training modality.
type Category string

const (
	CategoryStrength    Category = "Strength"
	CategoryCardio      Category = "Cardio"
	CategoryFlexibility Category = "Flexibility"
	CategorySports      Category = "Sports"
	CategoryFunctional  Category = "Functional"
)

// Categories is the closed set of permitted categories, in display order.
var Categories = []Category{CategoryStrength, CategoryCardio, CategoryFlexibility, CategorySports, CategoryFunctional}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

var Difficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

type MovementType string

const (
	MovementCompound  MovementType = "Compound"
	MovementIsolation MovementType = "Isolation"
)

var MovementTypes = []MovementType{MovementCompound, MovementIsolation}

// MuscleGroup is the coarse body area an exercise is filed under.
type MuscleGroup string

const (
	MuscleGroupChest     MuscleGroup = "Chest"
	MuscleGroupBack      MuscleGroup = "Back"
	MuscleGroupShoulders MuscleGroup = "Shoulders"
	MuscleGroupArms      MuscleGroup = "Arms"
	MuscleGroupLegs      MuscleGroup = "Legs"
	MuscleGroupCore      MuscleGroup = "Core"
	MuscleGroupFullBody  MuscleGroup = "Full Body"
)

var MuscleGroups = []MuscleGroup{
	MuscleGroupChest, MuscleGroupBack, MuscleGroupShoulders, MuscleGroupArms,
	MuscleGroupLegs, MuscleGroupCore, MuscleGroupFullBody,
}

func (c Category) Valid() bool     { return slices.Contains(Categories, c) }
func (d Difficulty) Valid() bool   { return slices.Contains(Difficulties, d) }
func (m MovementType) Valid() bool { return slices.Contains(MovementTypes, m) }
func (g MuscleGroup) Valid() bool  { return slices.Contains(MuscleGroups, g) }

// ParseCategory matches s case-insensitively against the permitted categories.
func ParseCategory(s string) (Category, bool) { return canonical(Categories, s) }

func ParseDifficulty(s string) (Difficulty, bool) { return canonical(Difficulties, s) }

func ParseMovementType(s string) (MovementType, bool) { return canonical(MovementTypes, s) }

func ParseMuscleGroup(s string) (MuscleGroup, bool) { return canonical(MuscleGroups, s) }

// JoinValues renders a closed set the way error messages list it.
func JoinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func canonical[T ~string](values []T, s string) (T, bool) {
	s = strings.TrimSpace(s)
	for _, v := range values {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	var zero T
	return zero, false
}
