package user

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// Servicer - серверная сторона учётных записей, используется dev-сервером API.
type Servicer interface {
	Register(ctx context.Context, req RegisterRequest) (User, string, error)
	Verify(ctx context.Context, token string) (User, error)
	Authenticate(ctx context.Context, req LoginRequest) (User, error)
	Logout(ctx context.Context, token string) error
	Session(ctx context.Context, token string) (int, error)
	Find(ctx context.Context, id int) (User, error)
	FindByUUID(ctx context.Context, uuid string) (User, error)
	UpdateProfile(ctx context.Context, id int, req ProfileRequest) (User, error)
}

type Service struct {
	repo            Repository
	tokens          TokenRepository
	validator       Validator
	requireVerified bool
	now             func() time.Time
	log             *slog.Logger
}

type Option func(*Service)

// WithRequireVerified запрещает вход до подтверждения почты.
func WithRequireVerified(v bool) Option {
	return func(s *Service) {
		s.requireVerified = v
	}
}

func NewService(repo Repository, tokens TokenRepository, validator Validator, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		tokens:    tokens,
		validator: validator,
		now:       time.Now,
		log:       log.With(slog.String("component", "user_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register создаёт пользователя и возвращает токен подтверждения почты.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, string, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.ValidateRegister(req); err != nil {
		s.log.Debug("validation failed", "email", req.Email, "error", err)
		return User{}, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return User{}, "", ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, "", fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", fmt.Errorf("хэш пароля: %w", err)
	}

	now := s.now()
	u := User{
		UUID:      uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Email:     req.Email,
		Password:  string(hash),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return User{}, "", fmt.Errorf("create user: %w", err)
	}

	token, hashHex, err := newToken()
	if err != nil {
		return User{}, "", err
	}
	if err := s.tokens.SaveVerification(ctx, hashHex, u.ID); err != nil {
		return User{}, "", fmt.Errorf("save verification: %w", err)
	}

	s.log.Info("user registered", "user_id", u.ID, "uuid", u.UUID)
	return u, token, nil
}

// Verify подтверждает почту по одноразовому токену.
func (s *Service) Verify(ctx context.Context, token string) (User, error) {
	if token == "" {
		return User{}, ErrInvalidToken
	}
	id, err := s.tokens.ConsumeVerification(ctx, hashToken(token))
	if err != nil {
		return User{}, ErrInvalidToken
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	u.Verified = true
	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, &u); err != nil {
		return User{}, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// Authenticate проверяет пароль и выдаёт токен сессии в поле Token.
func (s *Service) Authenticate(ctx context.Context, req LoginRequest) (User, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return User{}, ErrInvalidAuth
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return User{}, ErrInvalidAuth
	}
	if s.requireVerified && !u.Verified {
		return User{}, ErrNotVerified
	}

	token, hashHex, err := newToken()
	if err != nil {
		return User{}, err
	}
	if err := s.tokens.SaveSession(ctx, hashHex, u.ID); err != nil {
		return User{}, fmt.Errorf("save session: %w", err)
	}

	u.Token = token
	return u, nil
}

// Logout удаляет сессию, пустой токен игнорируется.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.tokens.DeleteSession(ctx, hashToken(token))
}

// Session возвращает ID пользователя по токену сессии.
func (s *Service) Session(ctx context.Context, token string) (int, error) {
	id, err := s.tokens.FindSession(ctx, hashToken(token))
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

func (s *Service) Find(ctx context.Context, id int) (User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) FindByUUID(ctx context.Context, uuid string) (User, error) {
	return s.repo.FindByUUID(ctx, uuid)
}

// UpdateProfile меняет имя и почту.
func (s *Service) UpdateProfile(ctx context.Context, id int, req ProfileRequest) (User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.ValidateProfile(req); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if req.Email != u.Email {
		other, err := s.repo.FindByEmail(ctx, req.Email)
		if err == nil && other.ID != u.ID {
			return User{}, ErrEmailTaken
		}
	}

	u.Name = strings.TrimSpace(req.Name)
	u.Email = req.Email
	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, &u); err != nil {
		return User{}, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func newToken() (string, string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", "", fmt.Errorf("generate token: %w", err)
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)
	return token, hashToken(token), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
