package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/repository"
	"fittrack/fitness-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AvatarUpload tells the client where to PUT a new avatar image.
type AvatarUpload struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ProfileService reads and edits the current user's profile.
type ProfileService interface {
	GetProfile(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, fullName string) (*domain.User, error)
	// RequestAvatarUpload reserves an object key and presigns an upload for
	// it. The avatar only changes once ConfirmAvatar is called with the key.
	RequestAvatarUpload(ctx context.Context, contentType string) (*AvatarUpload, error)
	ConfirmAvatar(ctx context.Context, objectKey string) (*domain.User, error)
	GetAvatarURL(ctx context.Context) (string, error)
}

type profileService struct {
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage // nil when object storage is not configured
	log         *zap.Logger
}

func NewProfileService(userRepo repository.UserRepository, fileStorage storage.FileStorage, log *zap.Logger) ProfileService {
	if log == nil {
		log = zap.NewNop()
	}
	return &profileService{userRepo: userRepo, fileStorage: fileStorage, log: log.Named("profile")}
}

func avatarPrefix(userID primitive.ObjectID) string {
	return fmt.Sprintf("avatars/%s/", userID.Hex())
}

func (s *profileService) GetProfile(ctx context.Context) (*domain.User, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, userID)
}

func (s *profileService) UpdateProfile(ctx context.Context, fullName string) (*domain.User, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, invalid("fullName", "must not be empty")
	}
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateProfile(ctx, userID, fullName); err != nil {
		return nil, s.userErr("update_profile", userID, err)
	}
	return s.load(ctx, userID)
}

func (s *profileService) RequestAvatarUpload(ctx context.Context, contentType string) (*AvatarUpload, error) {
	ext, ok := storage.ImageExtension(contentType)
	if !ok {
		return nil, invalid("contentType", "must be image/jpeg, image/png, image/webp or image/gif")
	}
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if s.fileStorage == nil {
		return nil, ErrStorageUnavailable
	}

	key := avatarPrefix(userID) + uuid.NewString() + ext
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, &PersistenceError{Op: "presign_avatar_upload", Err: err}
	}
	return &AvatarUpload{
		UploadURL: uploadURL,
		ObjectKey: key,
		ExpiresAt: time.Now().Add(storage.DefaultPresignedURLExpiry),
	}, nil
}

// ConfirmAvatar points the profile at an uploaded object. Only keys issued
// to the same user are accepted. The previous image is removed best effort.
func (s *profileService) ConfirmAvatar(ctx context.Context, objectKey string) (*domain.User, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(objectKey, avatarPrefix(userID)) || strings.Contains(objectKey, "..") {
		return nil, invalid("objectKey", "was not issued for this user")
	}
	if s.fileStorage == nil {
		return nil, ErrStorageUnavailable
	}

	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	previous := user.AvatarKey
	if err := s.userRepo.SetAvatarKey(ctx, userID, objectKey); err != nil {
		return nil, s.userErr("set_avatar", userID, err)
	}
	if previous != "" && previous != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, previous); err != nil {
			s.log.Warn("old avatar not removed", zap.String("key", previous), zap.Error(err))
		}
	}
	return s.load(ctx, userID)
}

func (s *profileService) GetAvatarURL(ctx context.Context) (string, error) {
	user, err := s.GetProfile(ctx)
	if err != nil {
		return "", err
	}
	if !user.HasAvatar() {
		return "", &NotFoundError{Resource: "avatar", ID: user.ID.Hex()}
	}
	if s.fileStorage == nil {
		return "", ErrStorageUnavailable
	}
	u, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, user.AvatarKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", &PersistenceError{Op: "presign_avatar_download", Err: err}
	}
	return u, nil
}

func (s *profileService) load(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, s.userErr("get_user", userID, err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *profileService) userErr(op string, userID primitive.ObjectID, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("user", userID)
	}
	return &PersistenceError{Op: op, Err: err}
}
