package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"golang.org/x/exp/slog"

	"swimlog/internal/app/client/config"
	"swimlog/internal/domain/best"
	"swimlog/internal/domain/laptime"
	"swimlog/internal/domain/record"
	"swimlog/internal/domain/session"
	"swimlog/internal/domain/user"
)

// ErrBusy - предыдущая отправка формы ещё не завершилась.
var ErrBusy = errors.New("request is already in progress")

// App - фасад клиента: шлюз к API, кэш сессии и доменные вычисления.
type App struct {
	config    *config.Config
	log       *slog.Logger
	gateway   Gateway
	storage   io.Closer
	session   session.Servicer
	validator user.Validator

	profileBusy atomic.Bool
	bulkBusy    atomic.Bool
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	store, err := NewSQLiteStorage(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации локального хранилища: %w", err)
	}

	app, err := NewWithDeps(cfg, log, NewHTTPClient(cfg, log), store)
	if err != nil {
		store.Close()
		return nil, err
	}
	app.storage = store
	return app, nil
}

// NewWithDeps собирает приложение из готовых зависимостей и поднимает сессию из кэша.
func NewWithDeps(cfg *config.Config, log *slog.Logger, gw Gateway, repo session.Repository) (*App, error) {
	app := &App{
		config:    cfg,
		log:       log,
		gateway:   gw,
		session:   session.NewService(repo, log.With("component", "session")),
		validator: user.NewValidator(),
	}

	if err := app.session.Init(context.Background()); err != nil {
		return nil, fmt.Errorf("ошибка восстановления сессии: %w", err)
	}
	if u, err := app.session.Current(); err == nil && u.Token != "" {
		gw.SetToken(u.Token)
		log.Debug("Токен загружен из кэша сессии")
	}

	return app, nil
}

func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) Close() error {
	if a.storage == nil {
		return nil
	}
	return a.storage.Close()
}

// IsAuthenticated проверяет, есть ли пользователь в кэше сессии
func (a *App) IsAuthenticated() bool {
	_, err := a.session.Current()
	return err == nil
}

func (a *App) CurrentUser() (user.User, error) {
	return a.session.Current()
}

// Register регистрирует пользователя. API отправляет письмо для подтверждения почты.
func (a *App) Register(ctx context.Context, req user.RegisterRequest) error {
	if err := a.validator.ValidateRegister(req); err != nil {
		return err
	}
	if err := a.gateway.Register(ctx, req); err != nil {
		return fmt.Errorf("ошибка регистрации: %w", err)
	}
	a.log.Info("Пользователь зарегистрирован", "email", req.Email)
	return nil
}

func (a *App) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("токен подтверждения не указан")
	}
	if err := a.gateway.VerifyEmail(ctx, token); err != nil {
		return fmt.Errorf("ошибка подтверждения почты: %w", err)
	}
	return nil
}

func (a *App) Login(ctx context.Context, req user.LoginRequest) (user.User, error) {
	if err := a.validator.ValidateEmail(req.Email); err != nil {
		return user.User{}, err
	}
	if req.Password == "" {
		return user.User{}, user.ErrInvalidInput
	}

	u, err := a.gateway.Login(ctx, req)
	if err != nil {
		return user.User{}, fmt.Errorf("ошибка входа: %w", err)
	}
	if err := a.session.Start(ctx, u); err != nil {
		return user.User{}, err
	}

	a.log.Info("Вход выполнен", "user_id", u.ID)
	return u, nil
}

// Logout завершает сессию. Локальный кэш очищается даже если API недоступен.
func (a *App) Logout(ctx context.Context) error {
	if err := a.gateway.Logout(ctx); err != nil {
		a.log.Warn("Не удалось завершить сессию на сервере", "error", err)
	}
	return a.session.End(ctx)
}

// UpdateProfile сохраняет имя и почту. Пока запрос выполняется, повторный вызов возвращает ErrBusy.
func (a *App) UpdateProfile(ctx context.Context, req user.ProfileRequest) (user.User, error) {
	if !a.profileBusy.CompareAndSwap(false, true) {
		return user.User{}, ErrBusy
	}
	defer a.profileBusy.Store(false)

	current, err := a.session.Current()
	if err != nil {
		return user.User{}, err
	}
	if err := a.validator.ValidateProfile(req); err != nil {
		return user.User{}, err
	}

	if _, err := a.gateway.UpdateUserByUUID(ctx, current.UUID, req); err != nil {
		return user.User{}, fmt.Errorf("ошибка обновления профиля: %w", err)
	}

	updated := current
	updated.Name = req.Name
	updated.Email = req.Email
	if err := a.session.Update(ctx, updated); err != nil {
		return user.User{}, err
	}
	return updated, nil
}

// ListRecords возвращает все записи текущего пользователя в порядке API.
func (a *App) ListRecords(ctx context.Context) ([]record.Entry, error) {
	u, err := a.session.Current()
	if err != nil {
		return nil, err
	}
	entries, err := a.gateway.ListRecordsByUUID(ctx, u.UUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения записей: %w", err)
	}
	return entries, nil
}

func (a *App) GetRecord(ctx context.Context, id int) (record.Entry, error) {
	if _, err := a.session.Current(); err != nil {
		return record.Entry{}, err
	}
	e, err := a.gateway.GetRecord(ctx, id)
	if err != nil {
		return record.Entry{}, fmt.Errorf("ошибка получения записи %d: %w", id, err)
	}
	return e, nil
}

// CreateRecord проверяет черновик и создаёт запись от имени текущего пользователя.
func (a *App) CreateRecord(ctx context.Context, d *record.Draft) (record.Entry, error) {
	u, err := a.session.Current()
	if err != nil {
		return record.Entry{}, err
	}
	if err := d.Validate(); err != nil {
		return record.Entry{}, err
	}

	e, err := a.gateway.CreateRecordByUUID(ctx, u.UUID, d.Payload())
	if err != nil {
		return record.Entry{}, fmt.Errorf("ошибка создания записи: %w", err)
	}
	a.log.Debug("Запись создана", "record_id", e.Record.ID)
	return e, nil
}

func (a *App) UpdateRecord(ctx context.Context, id int, d *record.Draft) (record.Entry, error) {
	if _, err := a.session.Current(); err != nil {
		return record.Entry{}, err
	}
	if err := d.Validate(); err != nil {
		return record.Entry{}, err
	}

	e, err := a.gateway.UpdateRecord(ctx, id, d.Payload())
	if err != nil {
		return record.Entry{}, fmt.Errorf("ошибка обновления записи %d: %w", id, err)
	}
	// API может ответить пустым телом
	if e.Record.ID == 0 {
		return a.GetRecord(ctx, id)
	}
	return e, nil
}

func (a *App) DeleteRecord(ctx context.Context, id int) error {
	if _, err := a.session.Current(); err != nil {
		return err
	}
	if err := a.gateway.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("ошибка удаления записи %d: %w", id, err)
	}
	return nil
}

// RecognizeLaps отправляет снимок на распознавание и возвращает нормализованные времена
// вместе с количеством отброшенных токенов.
func (a *App) RecognizeLaps(ctx context.Context, filename string, image io.Reader) ([]string, int, error) {
	tokens, err := a.gateway.UploadImage(ctx, filename, image)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка распознавания: %w", err)
	}
	accepted, dropped := laptime.NormalizeOCRTokens(tokens)
	if dropped > 0 {
		a.log.Debug("OCR: отброшены токены", "dropped", dropped, "accepted", len(accepted))
	}
	return accepted, dropped, nil
}

// Bests строит таблицу лучших времён для выбранного бассейна.
func (a *App) Bests(ctx context.Context, isShortCourse bool) ([]best.Section, error) {
	entries, err := a.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	return best.Grid(entries, isShortCourse), nil
}

// Detail - запись вместе с лучшей записью той же группы.
type Detail struct {
	Entry    record.Entry
	Best     record.Entry
	HasBest  bool
	IsBest   bool
	Passings []record.Passing
}

func (a *App) RecordDetail(ctx context.Context, id int) (Detail, error) {
	e, err := a.GetRecord(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	entries, err := a.ListRecords(ctx)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{Entry: e}
	d.Best, d.HasBest = best.For(e, entries)
	d.IsBest = d.HasBest && d.Best.Record.ID == e.Record.ID
	if d.HasBest {
		d.Passings = record.PassingComparison(e.LapTimes(), d.Best.LapTimes())
	}
	return d, nil
}
