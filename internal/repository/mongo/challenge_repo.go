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

const challengeCollectionName = "challenges"

// mongoChallengeRepository implements repository.ChallengeRepository
type mongoChallengeRepository struct {
	collection *mongo.Collection
}

// NewMongoChallengeRepository creates a new Challenge repository.
func NewMongoChallengeRepository(db *mongo.Database) repository.ChallengeRepository {
	return &mongoChallengeRepository{
		collection: db.Collection(challengeCollectionName),
	}
}

// Create inserts a new challenge with no participants.
func (r *mongoChallengeRepository) Create(ctx context.Context, challenge *domain.Challenge) (primitive.ObjectID, error) {
	if challenge.Name == "" || challenge.CreatorID == primitive.NilObjectID {
		return primitive.NilObjectID, repository.ErrInvalidRecord
	}
	challenge.ID = primitive.NewObjectID()
	if challenge.Participants == nil {
		challenge.Participants = []domain.Participant{}
	}
	now := time.Now().UTC()
	challenge.CreatedAt = now
	challenge.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, challenge)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted challenge ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single challenge with its participants.
func (r *mongoChallengeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Challenge, error) {
	var challenge domain.Challenge
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&challenge)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &challenge, nil
}

// GetAll retrieves every challenge, newest first.
func (r *mongoChallengeRepository) GetAll(ctx context.Context) ([]domain.Challenge, error) {
	challenges := []domain.Challenge{}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &challenges); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return challenges, nil
}

// AddParticipant pushes p onto the challenge unless the user already joined.
// The membership check and the push happen in one update.
func (r *mongoChallengeRepository) AddParticipant(ctx context.Context, challengeID primitive.ObjectID, p domain.Participant) error {
	filter := bson.M{
		"_id":                 challengeID,
		"participants.userId": bson.M{"$ne": p.UserID},
	}
	update := bson.M{
		"$push": bson.M{"participants": p},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}

	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": challengeID})
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return repository.ErrDuplicateKey
}

// EnsureChallengeIndexes creates necessary indexes. Call during startup.
func EnsureChallengeIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "participants.userId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
