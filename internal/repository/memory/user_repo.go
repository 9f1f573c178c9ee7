package memory

import (
	"context"
	"strings"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRepository struct {
	s *Store
}

// NewUserRepository returns a user repository backed by s.
func NewUserRepository(s *Store) repository.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Email == "" || user.PasswordHash == "" {
		return primitive.NilObjectID, repository.ErrInvalidRecord
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email := strings.ToLower(user.Email)
	for _, rec := range r.s.users {
		if rec.val.Email == email {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	user.ID = primitive.NewObjectID()
	user.Email = email
	now := r.s.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = &record[domain.User]{seq: r.s.next(), val: *user}
	return user.ID, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	email = strings.ToLower(email)
	for _, rec := range r.s.users {
		if rec.val.Email == email {
			u := rec.val
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := rec.val
	return &u, nil
}

func (r *userRepository) UpdateProfile(_ context.Context, id primitive.ObjectID, fullName string) error {
	return r.modify(id, func(u *domain.User) { u.FullName = fullName })
}

func (r *userRepository) SetAvatarKey(_ context.Context, id primitive.ObjectID, key string) error {
	return r.modify(id, func(u *domain.User) { u.AvatarKey = key })
}

func (r *userRepository) modify(id primitive.ObjectID, fn func(*domain.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&rec.val)
	rec.val.UpdatedAt = r.s.now()
	return nil
}
