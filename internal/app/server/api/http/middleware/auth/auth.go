package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// SessionResolver находит пользователя по токену сессии.
type SessionResolver interface {
	Session(ctx context.Context, token string) (int, error)
}

type Auth struct {
	sessions SessionResolver
	required bool
	log      *slog.Logger
}

// New создаёт проверку токена. Если required=false, запрос без заголовка Authorization
// пропускается анонимно, а неверный токен отклоняется всегда.
func New(sessions SessionResolver, required bool, log *slog.Logger) *Auth {
	return &Auth{
		sessions: sessions,
		required: required,
		log:      log.With(slog.String("component", "auth_middleware")),
	}
}

type contextKey string

const (
	UserIDKey contextKey = "userID"
	TokenKey  contextKey = "token"
)

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")
		if header == "" {
			if a.required {
				a.unauthorized(ctx)
				return
			}
			next(ctx)
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			a.log.Debug("wrong authorization header")
			a.unauthorized(ctx)
			return
		}

		// Валидируем токен
		userID, err := a.sessions.Session(ctx.Context(), token)
		if err != nil {
			a.log.Debug("session validation failed", "error", err)
			a.unauthorized(ctx)
			return
		}

		newCtx := WithToken(WithUserID(ctx.Context(), userID), token)
		next(huma.WithContext(ctx, newCtx))
	}
}

func (a *Auth) unauthorized(ctx huma.Context) {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(http.StatusUnauthorized)

	err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"error": "Unauthorized",
	})
	if err != nil {
		a.log.Error("json encode", "error", err)
	}
}

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}

// CanAccess разрешает анонимный доступ и доступ владельца к своим данным.
func CanAccess(ctx context.Context, ownerID int) bool {
	userID, ok := GetUserID(ctx)
	return !ok || userID == ownerID
}
