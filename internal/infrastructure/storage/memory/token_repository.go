package memory

import (
	"context"

	"golang.org/x/exp/slog"

	"swimlog/internal/domain/user"
)

// TokenRepository хранит хэши токенов: одноразовые для подтверждения почты и сессионные.
type TokenRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewTokenRepository(db *Storage, log *slog.Logger) *TokenRepository {
	return &TokenRepository{
		db:  db,
		log: log.With("component", "token_repository"),
	}
}

func (r *TokenRepository) SaveVerification(_ context.Context, tokenHash string, userID int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.verifications[tokenHash] = userID
	return nil
}

// ConsumeVerification возвращает владельца токена и удаляет токен.
func (r *TokenRepository) ConsumeVerification(_ context.Context, tokenHash string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	userID, ok := r.db.verifications[tokenHash]
	if !ok {
		return 0, user.ErrInvalidToken
	}
	delete(r.db.verifications, tokenHash)
	return userID, nil
}

func (r *TokenRepository) SaveSession(_ context.Context, tokenHash string, userID int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.sessions[tokenHash] = userID
	return nil
}

func (r *TokenRepository) FindSession(_ context.Context, tokenHash string) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	userID, ok := r.db.sessions[tokenHash]
	if !ok {
		return 0, user.ErrInvalidToken
	}
	return userID, nil
}

func (r *TokenRepository) DeleteSession(_ context.Context, tokenHash string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.sessions[tokenHash]; !ok {
		r.log.Debug("logout with unknown session")
	}
	delete(r.db.sessions, tokenHash)
	return nil
}
