// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel values for the optional descriptive attributes.
const (
	DefaultGripType        = "Standard"
	DefaultRangeOfMotion   = "Full"
	DefaultTempo           = "Moderate"
	DefaultMovementPattern = "Push"
)

// Fallback singletons for collections that must never be empty.
var (
	DefaultEquipment      = []string{"Bodyweight"}
	DefaultPrimaryMuscles = []string{"Unknown"}
	DefaultTargetRegion   = []string{"Full Body"}
)

// Exercise is a single unit of training content, as recovered from model
// output or taken from the exercise library.
type Exercise struct {
	Name             string       `bson:"name" json:"name,omitempty"`
	Category         Category     `bson:"category" json:"category,omitempty"`
	Equipment        []string     `bson:"equipment" json:"equipment"`
	PrimaryMuscles   []string     `bson:"primaryMuscles" json:"primaryMuscles"`
	SecondaryMuscles []string     `bson:"secondaryMuscles" json:"secondaryMuscles"`
	TargetRegion     []string     `bson:"targetRegion" json:"targetRegion"`
	Difficulty       Difficulty   `bson:"difficulty" json:"difficulty,omitempty"`
	MovementType     MovementType `bson:"movementType" json:"movementType,omitempty"`
	MuscleGroup      MuscleGroup  `bson:"muscleGroup" json:"muscleGroup,omitempty"`

	GripType        string `bson:"gripType,omitempty" json:"gripType,omitempty"`
	RangeOfMotion   string `bson:"rangeOfMotion,omitempty" json:"rangeOfMotion,omitempty"`
	Tempo           string `bson:"tempo,omitempty" json:"tempo,omitempty"`
	MovementPattern string `bson:"movementPattern,omitempty" json:"movementPattern,omitempty"`
	Description     string `bson:"description,omitempty" json:"description,omitempty"`
}

// Alternative is a replacement suggestion for an exercise inside a workout.
type Alternative struct {
	Exercise    `bson:",inline"`
	Sets        []Set `bson:"sets" json:"sets"`
	RestSeconds int   `bson:"restSeconds" json:"restSeconds"`
}

// LibraryExercise is an exercise stored in the curated library collection.
type LibraryExercise struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Exercise     `bson:",inline"`
	FitnessLevel string    `bson:"fitnessLevel,omitempty" json:"fitnessLevel,omitempty"` // e.g. "beginner", "moderate", "expert"
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// GeneratedExercise is an exercise the model produced for a user's search.
type GeneratedExercise struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Query     string             `bson:"query" json:"query"`
	Exercise  `bson:",inline"`
	Strategy  string    `bson:"strategy" json:"strategy"` // extraction strategy that recovered it
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
