// Package session хранит текущего пользователя клиента между запусками.
// Наличие записи в кэше означает, что пользователь вошёл.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"swimlog/internal/domain/user"
)

var ErrNotAuthenticated = errors.New("not authenticated: run `swimlog auth login` first")

type Servicer interface {
	Init(ctx context.Context) error
	Start(ctx context.Context, u user.User) error
	Update(ctx context.Context, u user.User) error
	End(ctx context.Context) error
	Current() (user.User, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger

	mu      sync.RWMutex
	current *user.User
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Init поднимает пользователя из кэша. Пустой кэш ошибкой не считается.
func (s *Service) Init(ctx context.Context) error {
	u, err := s.repo.Load(ctx)
	if errors.Is(err, ErrEmpty) {
		s.set(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	s.set(&u)
	s.log.Debug("session restored", "user_id", u.ID)
	return nil
}

// Start сохраняет пользователя после входа.
func (s *Service) Start(ctx context.Context, u user.User) error {
	if err := s.repo.Save(ctx, u); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.set(&u)
	return nil
}

// Update обновляет кэш после изменения профиля, токен сессии сохраняется.
func (s *Service) Update(ctx context.Context, u user.User) error {
	cur, err := s.Current()
	if err != nil {
		return err
	}
	if u.Token == "" {
		u.Token = cur.Token
	}
	return s.Start(ctx, u)
}

// End очищает кэш при выходе.
func (s *Service) End(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.set(nil)
	return nil
}

func (s *Service) Current() (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return user.User{}, ErrNotAuthenticated
	}
	return *s.current, nil
}

func (s *Service) set(u *user.User) {
	s.mu.Lock()
	s.current = u
	s.mu.Unlock()
}
