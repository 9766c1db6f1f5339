package record

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"swimlog/internal/app/server/api/http/middleware/auth"
	"swimlog/internal/domain/record"
	"swimlog/internal/domain/user"
)

// UserFinder находит владельца записей.
type UserFinder interface {
	Find(ctx context.Context, id int) (user.User, error)
	FindByUUID(ctx context.Context, uuid string) (user.User, error)
}

type Handler struct {
	service    record.Servicer
	users      UserFinder
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service record.Servicer, users UserFinder, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		users:      users,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.listByUUIDOp(), h.listByUUID)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.createByUUIDOp(), h.createByUUID)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *userIDInput) (*listOutput, error) {
	u, err := h.users.Find(ctx, input.UserID)
	owner, err := h.owner(ctx, u, err)
	if err != nil {
		return nil, err
	}
	return h.listFor(ctx, owner.ID)
}

func (h *Handler) listByUUID(ctx context.Context, input *userUUIDInput) (*listOutput, error) {
	u, err := h.users.FindByUUID(ctx, input.UUID)
	owner, err := h.owner(ctx, u, err)
	if err != nil {
		return nil, err
	}
	return h.listFor(ctx, owner.ID)
}

func (h *Handler) listFor(ctx context.Context, userID int) (*listOutput, error) {
	entries, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, httpError(err)
	}
	return &listOutput{Body: entries}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*output, error) {
	u, err := h.users.Find(ctx, input.UserID)
	owner, err := h.owner(ctx, u, err)
	if err != nil {
		return nil, err
	}
	return h.createFor(ctx, owner.ID, input.Body)
}

func (h *Handler) createByUUID(ctx context.Context, input *createByUUIDInput) (*output, error) {
	u, err := h.users.FindByUUID(ctx, input.UUID)
	owner, err := h.owner(ctx, u, err)
	if err != nil {
		return nil, err
	}
	return h.createFor(ctx, owner.ID, input.Body)
}

func (h *Handler) createFor(ctx context.Context, userID int, p record.Payload) (*output, error) {
	e, err := h.service.Create(ctx, userID, p)
	if err != nil {
		return nil, httpError(err)
	}
	return &output{Body: e}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*output, error) {
	e, err := h.accessible(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &output{Body: e}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*output, error) {
	if _, err := h.accessible(ctx, input.ID); err != nil {
		return nil, err
	}
	e, err := h.service.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, httpError(err)
	}
	return &output{Body: e}, nil
}

func (h *Handler) delete(ctx context.Context, input *findInput) (*deleteOutput, error) {
	if _, err := h.accessible(ctx, input.ID); err != nil {
		return nil, err
	}
	if err := h.service.Delete(ctx, input.ID); err != nil {
		return nil, httpError(err)
	}
	return &deleteOutput{Body: response{ID: input.ID, Message: "deleted"}}, nil
}

// owner проверяет, что пользователь найден и запрос делает он сам или аноним.
func (h *Handler) owner(ctx context.Context, u user.User, err error) (user.User, error) {
	if errors.Is(err, user.ErrNotFound) {
		return user.User{}, huma.Error404NotFound("user not found")
	}
	if err != nil {
		return user.User{}, huma.Error500InternalServerError("internal error", err)
	}
	if !auth.CanAccess(ctx, u.ID) {
		return user.User{}, huma.Error403Forbidden("access denied")
	}
	return u, nil
}

// accessible возвращает запись, если она видна вызывающему.
// Чужая запись для авторизованного пользователя выглядит несуществующей.
func (h *Handler) accessible(ctx context.Context, recordID int) (record.Entry, error) {
	e, err := h.service.Find(ctx, recordID)
	if err != nil {
		return record.Entry{}, httpError(err)
	}
	if !auth.CanAccess(ctx, e.Record.UserID) {
		return record.Entry{}, huma.Error404NotFound("record not found")
	}
	return e, nil
}

func httpError(err error) error {
	switch {
	case errors.Is(err, record.ErrNotFound):
		return huma.Error404NotFound("record not found")
	case errors.Is(err, record.ErrInvalidDraft):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return huma.Error500InternalServerError("internal error", err)
	}
}
