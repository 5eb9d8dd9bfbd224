package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultExerciseName         = "Unknown Exercise"
	DefaultExerciseType         = "Strength"
	DefaultExerciseInstructions = "Perform the exercise with proper form."
	DefaultRestSeconds          = 60
	DefaultReps                 = 12
	DefaultWorkoutDuration      = 30
)

var DefaultMuscleGroups = []string{"Full Body"}

// Set is one prescribed set of an exercise.
type Set struct {
	Reps   int     `bson:"reps" json:"reps"`
	Weight float64 `bson:"weight" json:"weight"`
}

// DefaultSet is used wherever a set is absent or malformed.
func DefaultSet() Set { return Set{Reps: DefaultReps, Weight: 0} }

// WorkoutExercise is an exercise as prescribed inside a workout.
type WorkoutExercise struct {
	Name         string   `bson:"name" json:"name"`
	Type         string   `bson:"type" json:"type"`
	MuscleGroups []string `bson:"muscleGroups" json:"muscleGroups"`
	Instructions string   `bson:"instructions" json:"instructions"`
	Sets         []Set    `bson:"sets" json:"sets"`
	RestSeconds  int      `bson:"restSeconds" json:"restSeconds"`
	Equipment    []string `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Notes        string   `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Workout is a generated training session.
type Workout struct {
	Name               string            `bson:"name" json:"name"`
	Description        string            `bson:"description" json:"description"`
	EstimatedDuration  int               `bson:"estimatedDuration" json:"estimatedDuration"` // minutes
	TargetMuscleGroups []string          `bson:"targetMuscleGroups" json:"targetMuscleGroups"`
	Difficulty         string            `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Exercises          []WorkoutExercise `bson:"exercises" json:"exercises"`
}

// GeneratedWorkout is the stored record of a workout handed to a user.
type GeneratedWorkout struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	Goal           string             `bson:"goal,omitempty" json:"goal,omitempty"`
	Workout        `bson:",inline"`
	FallbackUsed   bool      `bson:"fallbackUsed" json:"fallbackUsed"`
	ParseError     bool      `bson:"parseError" json:"parseError"`
	RawResponseKey string    `bson:"rawResponseKey,omitempty" json:"-"` // object key of the archived model reply
	RawResponse    string    `bson:"rawResponse,omitempty" json:"rawResponse,omitempty"` // kept inline when no archive holds it
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// WorkoutSession is a workout a user reported as completed.
type WorkoutSession struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	WorkoutName     string             `bson:"workoutName" json:"workoutName"`
	Exercises       []SessionExercise  `bson:"exercises" json:"exercises"`
	DurationMinutes int                `bson:"durationMinutes" json:"durationMinutes"`
	CompletedAt     time.Time          `bson:"completedAt" json:"completedAt"`
}

type SessionExercise struct {
	Name         string   `bson:"name" json:"name"`
	MuscleGroups []string `bson:"muscleGroups" json:"muscleGroups"`
}
