package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/fitness-ai/internal/domain"
	"alcyxob/fitness-ai/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseLibraryRepository.
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseLibraryRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Create inserts a new library exercise.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.LibraryExercise) (primitive.ObjectID, error) {
	if exercise.Name == "" {
		return primitive.NilObjectID, errors.New("exercise name is required")
	}

	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, exercise)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

// List returns library exercises matching filter, sorted by name.
func (r *mongoExerciseRepository) List(ctx context.Context, filter repository.ExerciseFilter) ([]domain.LibraryExercise, error) {
	query := bson.M{}
	if len(filter.PrimaryMuscles) > 0 {
		query["primaryMuscles"] = bson.M{"$in": filter.PrimaryMuscles}
	}
	if len(filter.Equipment) > 0 {
		query["equipment"] = bson.M{"$in": filter.Equipment}
	}
	if filter.FitnessLevel != "" {
		query["fitnessLevel"] = filter.FitnessLevel
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if filter.Limit > 0 {
		findOptions.SetLimit(filter.Limit)
	}

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exercises := []domain.LibraryExercise{}
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// Count reports the library size from collection metadata.
func (r *mongoExerciseRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.EstimatedDocumentCount(ctx)
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "primaryMuscles", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "fitnessLevel", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
