package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// StatsProvider отдаёт размер хранилища.
type StatsProvider interface {
	Stats() (users, records int)
}

type Handler struct {
	stats      StatsProvider
	startedAt  time.Time
	now        func() time.Time
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(stats StatsProvider, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		stats:      stats,
		startedAt:  time.Now(),
		now:        time.Now,
		log:        log.With("component", "health_handler"),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.statusOp(), h.status)
}

func (h *Handler) status(_ context.Context, _ *statusInput) (*statusOutput, error) {
	users, records := h.stats.Stats()
	h.log.Debug("status requested", "users", users, "records", records)

	return &statusOutput{
		Body: Status{
			Status:    "OK",
			StartedAt: h.startedAt.UTC(),
			Uptime:    h.now().Sub(h.startedAt).Truncate(time.Second).String(),
			Users:     users,
			Records:   records,
		},
	}, nil
}
