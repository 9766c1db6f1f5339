package session

import (
	"context"
	"errors"

	"swimlog/internal/domain/user"
)

// ErrEmpty возвращается репозиторием, когда сохранённой сессии нет.
var ErrEmpty = errors.New("session cache is empty")

// Repository - локальное постоянное хранилище закэшированного пользователя.
type Repository interface {
	Load(ctx context.Context) (user.User, error)
	Save(ctx context.Context, u user.User) error
	Clear(ctx context.Context) error
}
