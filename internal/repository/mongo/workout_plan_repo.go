// internal/repository/mongo/workout_plan_repo.go
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

const workoutPlanCollectionName = "workout_plans"

// mongoWorkoutPlanRepository implements repository.WorkoutPlanRepository
type mongoWorkoutPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutPlanRepository creates a new WorkoutPlan repository.
func NewMongoWorkoutPlanRepository(db *mongo.Database) repository.WorkoutPlanRepository {
	return &mongoWorkoutPlanRepository{
		collection: db.Collection(workoutPlanCollectionName),
	}
}

// Create inserts a new plan at revision 1.
func (r *mongoWorkoutPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	if plan.OwnerID == primitive.NilObjectID || plan.Name == "" {
		return primitive.NilObjectID, repository.ErrInvalidRecord
	}
	plan.ID = primitive.NewObjectID()
	plan.Revision = 1
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single plan by its ID.
func (r *mongoWorkoutPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetByOwnerID retrieves every plan created by ownerID, newest first.
func (r *mongoWorkoutPlanRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	return r.find(ctx, bson.M{"ownerId": ownerID})
}

// GetByPrivacy retrieves every plan with the given privacy across all owners, newest first.
func (r *mongoWorkoutPlanRepository) GetByPrivacy(ctx context.Context, privacy domain.Privacy) ([]domain.WorkoutPlan, error) {
	return r.find(ctx, bson.M{"privacy": privacy})
}

func (r *mongoWorkoutPlanRepository) find(ctx context.Context, filter bson.M) ([]domain.WorkoutPlan, error) {
	plans := []domain.WorkoutPlan{}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

// Update replaces the fields set in upd when the plan is still at
// expectedRevision, and bumps the revision.
func (r *mongoWorkoutPlanRepository) Update(ctx context.Context, id, ownerID primitive.ObjectID, expectedRevision int64, upd repository.PlanUpdate) (*domain.WorkoutPlan, error) {
	if id == primitive.NilObjectID || ownerID == primitive.NilObjectID {
		return nil, repository.ErrInvalidRecord
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Privacy != nil {
		set["privacy"] = *upd.Privacy
	}
	if upd.Days != nil {
		// Whole-map replacement; there is no per-day $push.
		set["days"] = upd.Days
	}

	filter := bson.M{
		"_id":      id,
		"ownerId":  ownerID,
		"revision": expectedRevision,
	}
	update := bson.M{
		"$set": set,
		"$inc": bson.M{"revision": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var plan domain.WorkoutPlan
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&plan)
	if err == nil {
		return &plan, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// Nothing matched: tell a missing plan apart from a stale revision.
	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, repository.ErrNotFound
	}
	return nil, repository.ErrConflict
}

// Delete removes a plan, ensuring it belongs to ownerID.
func (r *mongoWorkoutPlanRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	if id == primitive.NilObjectID || ownerID == primitive.NilObjectID {
		return repository.ErrInvalidRecord
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		// Either the plan never existed or it belongs to someone else.
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutPlanIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutPlanIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// "My plans" listing
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			// Community listing of public plans
			Keys:    bson.D{{Key: "privacy", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
