package mongo

import (
	"context"
	"errors"
	"time"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutLogCollectionName = "workout_logs"

// mongoWorkoutLogRepository implements repository.WorkoutLogRepository
type mongoWorkoutLogRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutLogRepository creates a new WorkoutLog repository.
func NewMongoWorkoutLogRepository(db *mongo.Database) repository.WorkoutLogRepository {
	return &mongoWorkoutLogRepository{
		collection: db.Collection(workoutLogCollectionName),
	}
}

// Create inserts a new history entry.
func (r *mongoWorkoutLogRepository) Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	if log.UserID == primitive.NilObjectID || log.Name == "" {
		return primitive.NilObjectID, repository.ErrInvalidRecord
	}
	log.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if log.CreatedAt.IsZero() {
		log.CreatedAt = now
	}
	log.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout log ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single history entry.
func (r *mongoWorkoutLogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	var log domain.WorkoutLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// GetByUserID retrieves the user's history, newest first.
func (r *mongoWorkoutLogRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, f repository.WorkoutLogFilter) ([]domain.WorkoutLog, error) {
	logs := []domain.WorkoutLog{}
	filter := bson.M{"userId": userID}
	created := bson.M{}
	if !f.From.IsZero() {
		created["$gte"] = f.From
	}
	if !f.To.IsZero() {
		created["$lt"] = f.To
	}
	if len(created) > 0 {
		filter["createdAt"] = created
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// Update rewrites the editable fields of an entry owned by log.UserID.
func (r *mongoWorkoutLogRepository) Update(ctx context.Context, log *domain.WorkoutLog) error {
	if log.ID == primitive.NilObjectID {
		return repository.ErrInvalidRecord
	}

	// UserID, Category and CreatedAt are fixed once logged.
	filter := bson.M{"_id": log.ID, "userId": log.UserID}
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":           log.Name,
			"durationHours":  log.DurationHours,
			"caloriesBurned": log.CaloriesBurned,
			"distanceKm":     log.DistanceKm,
			"sets":           log.Sets,
			"reps":           log.Reps,
			"notes":          log.Notes,
			"updatedAt":      now,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	log.UpdatedAt = now
	return nil
}

// Delete removes an entry, ensuring it belongs to userID.
func (r *mongoWorkoutLogRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutLogIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutLogIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
