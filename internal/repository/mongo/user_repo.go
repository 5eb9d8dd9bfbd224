package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/fitness-ai/internal/domain"
	"alcyxob/fitness-ai/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userCollectionName = "users"

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Create inserts a new user into the database.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Email == "" || user.PasswordHash == "" || user.Role == "" {
		return primitive.NilObjectID, errors.New("user email, password hash, and role are required")
	}

	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	return insertedObjectID(result)
}

// GetByEmail retrieves a user by their email address.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByID retrieves a user by their MongoDB ObjectID.
func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ConsumeDailyQuota increments usage.<kind>.count for day in a single
// FindOneAndUpdate. The filter only matches while the stored counter is below
// limit (or belongs to an older day), so concurrent requests cannot overshoot.
func (r *mongoUserRepository) ConsumeDailyQuota(ctx context.Context, userID primitive.ObjectID, kind domain.UsageKind, day string, limit int) (int, error) {
	dateField := fmt.Sprintf("usage.%s.date", kind)
	countField := fmt.Sprintf("usage.%s.count", kind)

	filter := bson.M{
		"_id": userID,
		"$or": bson.A{
			bson.M{dateField: bson.M{"$ne": day}},
			bson.M{countField: bson.M{"$lt": limit}},
		},
	}
	// Pipeline update so a new day resets the counter to 1.
	sameDay := bson.M{"$eq": bson.A{"$" + dateField, day}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: countField, Value: bson.M{"$cond": bson.A{
				sameDay,
				bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$" + countField, 0}}, 1}},
				1,
			}}},
			{Key: dateField, Value: day},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user domain.User
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Either the user is gone or the filter rejected the increment.
			if _, getErr := r.GetByID(ctx, userID); getErr != nil {
				return 0, getErr
			}
			return 0, repository.ErrQuotaExhausted
		}
		return 0, err
	}
	return user.Usage[kind].Count, nil
}

// EnsureUserIndexes creates necessary indexes for the users collection.
// Call this once during application startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
