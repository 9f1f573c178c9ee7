package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/repository"
	"fittrack/fitness-app/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ChallengeService interface {
	ListChallenges(ctx context.Context) ([]domain.Challenge, error)
	CreateChallenge(ctx context.Context, name, description string, startsAt, endsAt *time.Time) (*domain.Challenge, error)
	// JoinChallenge adds the current user. Joining twice returns
	// ErrAlreadyJoined.
	JoinChallenge(ctx context.Context, challengeID primitive.ObjectID) (*domain.Challenge, error)
}

type challengeService struct {
	challengeRepo repository.ChallengeRepository
	userRepo      repository.UserRepository
	fileStorage   storage.FileStorage // optional, used for participant avatars
	log           *zap.Logger
}

func NewChallengeService(challengeRepo repository.ChallengeRepository, userRepo repository.UserRepository, fileStorage storage.FileStorage, log *zap.Logger) ChallengeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &challengeService{
		challengeRepo: challengeRepo,
		userRepo:      userRepo,
		fileStorage:   fileStorage,
		log:           log.Named("challenges"),
	}
}

func (s *challengeService) ListChallenges(ctx context.Context) ([]domain.Challenge, error) {
	challenges, err := s.challengeRepo.GetAll(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list_challenges", Err: err}
	}
	for i := range challenges {
		s.presignAvatars(ctx, &challenges[i])
	}
	return challenges, nil
}

func (s *challengeService) CreateChallenge(ctx context.Context, name, description string, startsAt, endsAt *time.Time) (*domain.Challenge, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "must not be empty")
	}
	if startsAt != nil && endsAt != nil && !endsAt.After(*startsAt) {
		return nil, invalid("endsAt", "must be after startsAt")
	}
	creatorID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	challenge := &domain.Challenge{
		CreatorID:    creatorID,
		Name:         name,
		Description:  strings.TrimSpace(description),
		StartsAt:     startsAt,
		EndsAt:       endsAt,
		Participants: []domain.Participant{},
	}
	if _, err := s.challengeRepo.Create(ctx, challenge); err != nil {
		return nil, &PersistenceError{Op: "create_challenge", Err: err}
	}
	s.log.Info("challenge created", zap.String("challenge_id", challenge.ID.Hex()))
	return challenge, nil
}

func (s *challengeService) JoinChallenge(ctx context.Context, challengeID primitive.ObjectID) (*domain.Challenge, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("user", userID)
		}
		return nil, &PersistenceError{Op: "get_user", Err: err}
	}

	p := domain.Participant{
		UserID:    userID,
		FullName:  user.FullName,
		AvatarKey: user.AvatarKey,
		JoinedAt:  time.Now().UTC(),
	}
	if err := s.challengeRepo.AddParticipant(ctx, challengeID, p); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, notFound("challenge", challengeID)
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrAlreadyJoined
		}
		return nil, &PersistenceError{Op: "join_challenge", Err: err}
	}

	challenge, err := s.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, &PersistenceError{Op: "get_challenge", Err: err}
	}
	s.presignAvatars(ctx, challenge)
	return challenge, nil
}

// presignAvatars fills participant avatar URLs. Failures leave the URL empty.
func (s *challengeService) presignAvatars(ctx context.Context, c *domain.Challenge) {
	if s.fileStorage == nil {
		return
	}
	for i := range c.Participants {
		p := &c.Participants[i]
		if p.AvatarKey == "" {
			continue
		}
		u, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, p.AvatarKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			s.log.Warn("presign participant avatar", zap.String("key", p.AvatarKey), zap.Error(err))
			continue
		}
		p.AvatarURL = u
	}
}
