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

const sessionCollectionName = "workout_sessions"

type mongoSessionRepository struct {
	collection *mongo.Collection
}

func NewMongoSessionRepository(db *mongo.Database) repository.WorkoutSessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(sessionCollectionName),
	}
}

func (r *mongoSessionRepository) Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	if session.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("workout session requires userId")
	}
	session.ID = primitive.NewObjectID()
	if session.CompletedAt.IsZero() {
		session.CompletedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

func (r *mongoSessionRepository) GetSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.WorkoutSession, error) {
	filter := bson.M{
		"userId":      userID,
		"completedAt": bson.M{"$gte": since.UTC()},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sessions := []domain.WorkoutSession{}
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "completedAt", Value: -1}},
		Options: options.Index().SetName("user_completed_at"),
	})
	return err
}
