package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID:   "user-register",
		Method:        http.MethodPost,
		Path:          "/users",
		Summary:       "Регистрация пользователя",
		Description:   "Создаёт пользователя и отправляет ссылку для подтверждения почты.",
		Tags:          []string{"users"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.public,
	}
}

func (h *Handler) verifyOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-verify-email",
		Method:      http.MethodGet,
		Path:        "/verify-email",
		Summary:     "Подтверждение почты",
		Tags:        []string{"users"},
		Middlewares: h.public,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-login",
		Method:      http.MethodPost,
		Path:        "/login",
		Summary:     "Авторизация пользователя",
		Tags:        []string{"users"},
		Middlewares: h.public,
	}
}

func (h *Handler) logoutOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-logout",
		Method:      http.MethodPost,
		Path:        "/logout",
		Summary:     "Завершение сессии",
		Tags:        []string{"users"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.protected,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-find",
		Method:      http.MethodGet,
		Path:        "/users/{id}",
		Summary:     "Получить пользователя",
		Tags:        []string{"users"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.protected,
	}
}

func (h *Handler) findByUUIDOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-find-by-uuid",
		Method:      http.MethodGet,
		Path:        "/users/uuid/{uuid}",
		Summary:     "Получить пользователя по UUID",
		Tags:        []string{"users"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.protected,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-update",
		Method:      http.MethodPut,
		Path:        "/users/{id}",
		Summary:     "Изменить профиль",
		Tags:        []string{"users"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.protected,
	}
}

func (h *Handler) updateByUUIDOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-update-by-uuid",
		Method:      http.MethodPut,
		Path:        "/users/uuid/{uuid}",
		Summary:     "Изменить профиль по UUID",
		Tags:        []string{"users"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.protected,
	}
}
