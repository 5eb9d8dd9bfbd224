package repository

import (
	"context"
	"time"

	"alcyxob/fitness-ai/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound       = RepositoryError("not found")
	ErrDuplicate      = RepositoryError("already exists")
	ErrQuotaExhausted = RepositoryError("daily quota exhausted")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// ConsumeDailyQuota atomically counts one call of kind for day when the
	// user is still below limit. It returns the new count, or
	// ErrQuotaExhausted without counting.
	ConsumeDailyQuota(ctx context.Context, userID primitive.ObjectID, kind domain.UsageKind, day string, limit int) (int, error)
}

// ExerciseFilter narrows a library query. Empty fields do not filter.
type ExerciseFilter struct {
	PrimaryMuscles []string
	Equipment      []string
	FitnessLevel   string
	Limit          int64
}

// ExerciseLibraryRepository reads and maintains the curated exercise library.
type ExerciseLibraryRepository interface {
	Create(ctx context.Context, exercise *domain.LibraryExercise) (primitive.ObjectID, error)
	List(ctx context.Context, filter ExerciseFilter) ([]domain.LibraryExercise, error)
	Count(ctx context.Context) (int64, error)
}

// GeneratedExerciseRepository stores exercises recovered from model output.
type GeneratedExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.GeneratedExercise) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.GeneratedExercise, error)
}

// GeneratedWorkoutRepository stores workouts handed to users.
type GeneratedWorkoutRepository interface {
	Create(ctx context.Context, workout *domain.GeneratedWorkout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.GeneratedWorkout, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.GeneratedWorkout, error)
}

// WorkoutSessionRepository records completed workouts.
type WorkoutSessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	// GetSince returns the user's sessions completed at or after since, newest first.
	GetSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.WorkoutSession, error)
}
