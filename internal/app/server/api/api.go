// POST   /users                       # Регистрация (публичный)
// GET    /verify-email?token=         # Подтверждение почты (публичный)
// POST   /login                       # Вход (публичный)
// POST   /logout                      # Выход
// GET    /users/{id}, /users/uuid/{uuid}
// PUT    /users/{id}, /users/uuid/{uuid}
// GET    /records/user/{id}, /records/user/uuid/{uuid}
// POST   /records/user/{id}, /records/user/uuid/{uuid}
// GET    /records/{id}
// PUT    /records/{id}
// DELETE /records/{id}
// POST   /upload                      # Распознавание табло (multipart, поле file)
// GET    /health

package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"

	"swimlog/internal/app/server/api/http/health"
	"swimlog/internal/app/server/api/http/middleware"
	"swimlog/internal/app/server/api/http/middleware/auth"
	"swimlog/internal/app/server/api/http/middleware/logger"
	recordAPI "swimlog/internal/app/server/api/http/record"
	"swimlog/internal/app/server/api/http/upload"
	userAPI "swimlog/internal/app/server/api/http/user"
	"swimlog/internal/app/server/config"
	"swimlog/internal/domain/record"
	"swimlog/internal/domain/user"
	"swimlog/internal/infrastructure/storage/memory"
)

type Handlers struct {
	Health *health.Handler
	User   *userAPI.Handler
	Record *recordAPI.Handler
	Upload *upload.Handler
}

// New создает *chi.Mux со всеми операциями под cfg.Server.BasePath
func New(cfg *config.Config, storage *memory.Storage, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chimw.Recoverer)

	h := handlers(cfg, storage, log)
	routes := func(r chi.Router) {
		humaConfig := huma.DefaultConfig("Swimlog API", "1.0.0")
		humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
			"bearer": {Type: "http", Scheme: "bearer"},
		}
		if base := cfg.Server.BasePath; base != "" && base != "/" {
			humaConfig.Servers = []*huma.Server{{URL: base}}
		}

		API := humachi.New(r, humaConfig)
		h.Health.SetupRoutes(API)
		h.User.SetupRoutes(API)
		h.Record.SetupRoutes(API)

		r.Method(http.MethodPost, "/upload", h.Upload)
	}

	if base := cfg.Server.BasePath; base == "" || base == "/" {
		routes(mux)
	} else {
		mux.Route(base, routes)
	}

	return mux
}

func handlers(cfg *config.Config, storage *memory.Storage, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	userRepo := memory.NewUserRepository(storage, log)
	tokenRepo := memory.NewTokenRepository(storage, log)
	userService := user.NewService(userRepo, tokenRepo, user.NewValidator(), log,
		user.WithRequireVerified(cfg.Auth.RequireVerified))
	authMW := auth.New(userService, cfg.Auth.RequireToken, log)

	middlewares.Add(loggerMW.Middleware())
	healthHandler := health.NewHandler(storage, log, middlewares.GetAllAndClear())

	public := middlewares.Add(loggerMW.Middleware()).GetAllAndClear()
	protected := middlewares.Add(loggerMW.Middleware(), authMW.Middleware()).GetAllAndClear()
	userHandler := userAPI.NewHandler(userService, cfg.Auth.VerifyURL, log, public, protected)

	recordRepo := memory.NewRecordRepository(storage, log)
	recordService := record.NewService(recordRepo, log)
	middlewares.Add(loggerMW.Middleware(), authMW.Middleware())
	recordHandler := recordAPI.NewHandler(recordService, userService, log, middlewares.GetAllAndClear())

	uploadHandler := upload.NewHandler(cfg.OCR.DefaultValues, cfg.OCR.MaxUploadBytes, log)

	return &Handlers{
		Health: healthHandler,
		User:   userHandler,
		Record: recordHandler,
		Upload: uploadHandler,
	}
}
