package memory

import (
	"context"
	"strings"

	"golang.org/x/exp/slog"

	"swimlog/internal/domain/user"
)

type UserRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewUserRepository(db *Storage, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log.With("component", "user_repository"),
	}
}

func (r *UserRepository) Create(_ context.Context, u *user.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrEmailTaken
		}
	}

	r.db.lastUserID++
	u.ID = r.db.lastUserID
	r.db.users[u.ID] = *u

	r.log.Debug("user created", "user_id", u.ID)
	return nil
}

func (r *UserRepository) Update(_ context.Context, u *user.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[u.ID]; !ok {
		return user.ErrNotFound
	}
	for id, existing := range r.db.users {
		if id != u.ID && strings.EqualFold(existing.Email, u.Email) {
			return user.ErrEmailTaken
		}
	}
	r.db.users[u.ID] = *u
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id int) (user.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) FindByUUID(_ context.Context, uuid string) (user.User, error) {
	return r.find(func(u user.User) bool { return u.UUID == uuid })
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (user.User, error) {
	return r.find(func(u user.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepository) find(match func(user.User) bool) (user.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if match(u) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}
