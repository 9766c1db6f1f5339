package user

import (
	"context"
	"errors"
	"net/url"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"swimlog/internal/app/server/api/http/middleware/auth"
	"swimlog/internal/domain/user"
)

type Handler struct {
	service   user.Servicer
	verifyURL string
	log       *slog.Logger
	// public - цепочка для регистрации, входа и подтверждения почты
	public    huma.Middlewares
	protected huma.Middlewares
}

// NewHandler создаёт хендлеры пользователей. Письма не отправляются,
// ссылка подтверждения с адресом verifyURL пишется в лог.
func NewHandler(service user.Servicer, verifyURL string, log *slog.Logger, public, protected huma.Middlewares) *Handler {
	return &Handler{
		service:   service,
		verifyURL: verifyURL,
		log:       log.With(slog.String("component", "user_handler")),
		public:    public,
		protected: protected,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.verifyOp(), h.verify)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.findByUUIDOp(), h.findByUUID)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.updateByUUIDOp(), h.updateByUUID)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	u, token, err := h.service.Register(ctx, input.Body)
	if err != nil {
		return nil, httpError(err)
	}

	h.log.Info("verification link", "email", u.Email, "link", h.verifyURL+"?token="+url.QueryEscape(token))

	return &registerOutput{
		Body: RegisterResponse{User: u, Message: "verification email sent"},
	}, nil
}

func (h *Handler) verify(ctx context.Context, input *verifyInput) (*messageOutput, error) {
	if input.Token == "" {
		return nil, huma.Error400BadRequest("token is required")
	}
	if _, err := h.service.Verify(ctx, input.Token); err != nil {
		return nil, httpError(err)
	}
	return &messageOutput{Body: MessageResponse{Message: "email verified"}}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body)
	if err != nil {
		return nil, httpError(err)
	}

	token := u.Token
	u.Token = ""
	return &loginOutput{
		Body: LoginResponse{User: u, Token: token},
	}, nil
}

func (h *Handler) logout(ctx context.Context, _ *struct{}) (*messageOutput, error) {
	token, _ := auth.GetToken(ctx)
	if err := h.service.Logout(ctx, token); err != nil {
		return nil, httpError(err)
	}
	return &messageOutput{Body: MessageResponse{Message: "logged out"}}, nil
}

func (h *Handler) find(ctx context.Context, input *idInput) (*userOutput, error) {
	if !auth.CanAccess(ctx, input.ID) {
		return nil, huma.Error403Forbidden("access denied")
	}
	u, err := h.service.Find(ctx, input.ID)
	if err != nil {
		return nil, httpError(err)
	}
	return &userOutput{Body: u}, nil
}

func (h *Handler) findByUUID(ctx context.Context, input *uuidInput) (*userOutput, error) {
	u, err := h.service.FindByUUID(ctx, input.UUID)
	if err != nil {
		return nil, httpError(err)
	}
	if !auth.CanAccess(ctx, u.ID) {
		return nil, huma.Error403Forbidden("access denied")
	}
	return &userOutput{Body: u}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*userOutput, error) {
	if !auth.CanAccess(ctx, input.ID) {
		return nil, huma.Error403Forbidden("access denied")
	}
	u, err := h.service.UpdateProfile(ctx, input.ID, input.Body)
	if err != nil {
		return nil, httpError(err)
	}
	return &userOutput{Body: u}, nil
}

func (h *Handler) updateByUUID(ctx context.Context, input *updateByUUIDInput) (*userOutput, error) {
	u, err := h.service.FindByUUID(ctx, input.UUID)
	if err != nil {
		return nil, httpError(err)
	}
	if !auth.CanAccess(ctx, u.ID) {
		return nil, huma.Error403Forbidden("access denied")
	}
	u, err = h.service.UpdateProfile(ctx, u.ID, input.Body)
	if err != nil {
		return nil, httpError(err)
	}
	return &userOutput{Body: u}, nil
}

func httpError(err error) error {
	switch {
	case errors.Is(err, user.ErrNotFound):
		return huma.Error404NotFound("user not found")
	case errors.Is(err, user.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, user.ErrEmailTaken):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, user.ErrInvalidAuth):
		return huma.Error401Unauthorized("invalid email or password")
	case errors.Is(err, user.ErrNotVerified):
		return huma.Error403Forbidden(err.Error())
	case errors.Is(err, user.ErrInvalidToken):
		return huma.Error400BadRequest(err.Error())
	default:
		return huma.Error500InternalServerError("internal error", err)
	}
}
