package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UsageKind names a metered AI feature.
type UsageKind string

const (
	UsageExerciseSearch UsageKind = "exerciseSearch"
	UsageWorkout        UsageKind = "workout"
)

// DailyUsage counts calls of one kind on one UTC day ("2006-01-02").
type DailyUsage struct {
	Date  string `bson:"date" json:"date"`
	Count int    `bson:"count" json:"count"`
}

// User represents an account of the system.
type User struct {
	ID           primitive.ObjectID       `bson:"_id,omitempty" json:"id"`
	Name         string                   `bson:"name" json:"name"`
	Email        string                   `bson:"email" json:"email"`    // Should be unique
	PasswordHash string                   `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role                     `bson:"role" json:"role"`
	FitnessLevel string                   `bson:"fitnessLevel,omitempty" json:"fitnessLevel,omitempty"`
	Usage        map[UsageKind]DailyUsage `bson:"usage,omitempty" json:"-"`
	CreatedAt    time.Time                `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time                `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
