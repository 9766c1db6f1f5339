package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) statusOp() huma.Operation {
	return huma.Operation{
		OperationID: "health-status",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Состояние сервера",
		Description: "Возвращает время работы и количество пользователей и записей в памяти",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}
}
