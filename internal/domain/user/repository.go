package user

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int) (User, error)
	FindByUUID(ctx context.Context, uuid string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}

// TokenRepository хранит хэши одноразовых токенов подтверждения почты и токенов сессий.
type TokenRepository interface {
	SaveVerification(ctx context.Context, tokenHash string, userID int) error
	ConsumeVerification(ctx context.Context, tokenHash string) (int, error)
	SaveSession(ctx context.Context, tokenHash string, userID int) error
	FindSession(ctx context.Context, tokenHash string) (int, error)
	DeleteSession(ctx context.Context, tokenHash string) error
}
