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

const (
	generatedExerciseCollectionName = "ai_generated_exercises"
	generatedWorkoutCollectionName  = "generated_workouts"
)

type mongoGeneratedExerciseRepository struct {
	collection *mongo.Collection
}

func NewMongoGeneratedExerciseRepository(db *mongo.Database) repository.GeneratedExerciseRepository {
	return &mongoGeneratedExerciseRepository{
		collection: db.Collection(generatedExerciseCollectionName),
	}
}

func (r *mongoGeneratedExerciseRepository) Create(ctx context.Context, exercise *domain.GeneratedExercise) (primitive.ObjectID, error) {
	if exercise.UserID == primitive.NilObjectID || exercise.Name == "" {
		return primitive.NilObjectID, errors.New("generated exercise requires userId and name")
	}
	exercise.ID = primitive.NewObjectID()
	exercise.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, exercise)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

func (r *mongoGeneratedExerciseRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.GeneratedExercise, error) {
	exercises := []domain.GeneratedExercise{}
	if err := findNewest(ctx, r.collection, bson.M{"userId": userID}, limit, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

type mongoGeneratedWorkoutRepository struct {
	collection *mongo.Collection
}

func NewMongoGeneratedWorkoutRepository(db *mongo.Database) repository.GeneratedWorkoutRepository {
	return &mongoGeneratedWorkoutRepository{
		collection: db.Collection(generatedWorkoutCollectionName),
	}
}

func (r *mongoGeneratedWorkoutRepository) Create(ctx context.Context, workout *domain.GeneratedWorkout) (primitive.ObjectID, error) {
	if workout.UserID == primitive.NilObjectID || workout.Name == "" {
		return primitive.NilObjectID, errors.New("generated workout requires userId and name")
	}
	workout.ID = primitive.NewObjectID()
	workout.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

func (r *mongoGeneratedWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.GeneratedWorkout, error) {
	var workout domain.GeneratedWorkout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

func (r *mongoGeneratedWorkoutRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.GeneratedWorkout, error) {
	workouts := []domain.GeneratedWorkout{}
	if err := findNewest(ctx, r.collection, bson.M{"userId": userID}, limit, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// findNewest decodes documents matching filter into out, newest first.
func findNewest(ctx context.Context, collection *mongo.Collection, filter bson.M, limit int64, out any) error {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, out)
}

func EnsureGeneratedExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

func EnsureGeneratedWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}
