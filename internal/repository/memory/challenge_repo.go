package memory

import (
	"context"
	"time"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type challengeRepository struct {
	s *Store
}

// NewChallengeRepository returns a challenge repository backed by s.
func NewChallengeRepository(s *Store) repository.ChallengeRepository {
	return &challengeRepository{s: s}
}

func cloneChallenge(c domain.Challenge) domain.Challenge {
	c.Participants = append([]domain.Participant{}, c.Participants...)
	return c
}

func (r *challengeRepository) Create(_ context.Context, challenge *domain.Challenge) (primitive.ObjectID, error) {
	if challenge.Name == "" || challenge.CreatorID == primitive.NilObjectID {
		return primitive.NilObjectID, repository.ErrInvalidRecord
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	challenge.ID = primitive.NewObjectID()
	if challenge.Participants == nil {
		challenge.Participants = []domain.Participant{}
	}
	now := r.s.now()
	challenge.CreatedAt = now
	challenge.UpdatedAt = now
	r.s.challenges[challenge.ID] = &record[domain.Challenge]{seq: r.s.next(), val: cloneChallenge(*challenge)}
	return challenge.ID, nil
}

func (r *challengeRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Challenge, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.challenges[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := cloneChallenge(rec.val)
	return &c, nil
}

func (r *challengeRepository) GetAll(_ context.Context) ([]domain.Challenge, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]*record[domain.Challenge], 0, len(r.s.challenges))
	for _, rec := range r.s.challenges {
		rows = append(rows, rec)
	}
	newestFirst(rows, func(c domain.Challenge) time.Time { return c.CreatedAt })

	challenges := make([]domain.Challenge, 0, len(rows))
	for _, rec := range rows {
		challenges = append(challenges, cloneChallenge(rec.val))
	}
	return challenges, nil
}

func (r *challengeRepository) AddParticipant(_ context.Context, challengeID primitive.ObjectID, p domain.Participant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.challenges[challengeID]
	if !ok {
		return repository.ErrNotFound
	}
	if rec.val.HasParticipant(p.UserID) {
		return repository.ErrDuplicateKey
	}
	rec.val.Participants = append(rec.val.Participants, p)
	rec.val.UpdatedAt = r.s.now()
	return nil
}
