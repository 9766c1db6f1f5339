package client

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swimlog/internal/app/client/config"
	"swimlog/internal/app/server/api"
	serverConfig "swimlog/internal/app/server/config"
	"swimlog/internal/domain/record"
	"swimlog/internal/domain/session"
	"swimlog/internal/domain/user"
	"swimlog/internal/infrastructure/storage/memory"
	"swimlog/internal/utils/logger"
)

var day = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

// newTestServer поднимает dev-сервер API в памяти.
func newTestServer(t *testing.T, ocrDefaults ...string) *httptest.Server {
	t.Helper()
	cfg := &serverConfig.Config{Env: serverConfig.EnvLocal}
	cfg.Server.BasePath = "/api"
	cfg.OCR.MaxUploadBytes = 1 << 20
	cfg.OCR.DefaultValues = ocrDefaults

	srv := httptest.NewServer(api.New(cfg, memory.New(), logger.NewDiscard()))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, srv *httptest.Server) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Env:            config.EnvLocal,
		APIBaseURL:     srv.URL + "/api",
		ConfigDir:      dir,
		DataPath:       filepath.Join(dir, "session.db"),
		RequestTimeout: 5 * time.Second,
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	app, err := New(cfg, logger.NewDiscard())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

// loggedIn регистрирует пользователя и входит под ним.
func loggedIn(t *testing.T, app *App) user.User {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, app.Register(ctx, user.RegisterRequest{Name: "Анна", Email: "anna@example.com", Password: "secret1"}))
	u, err := app.Login(ctx, user.LoginRequest{Email: "anna@example.com", Password: "secret1"})
	require.NoError(t, err)
	return u
}

func draft(distance record.Distance, laps ...string) *record.Draft {
	d := record.NewDraft(day)
	d.SetDistance(distance)
	for i, l := range laps {
		_ = d.SetLap(i, l)
	}
	return d
}

func TestApp_AuthLifecycle(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)
	cfg := testConfig(t, srv)
	app := newTestApp(t, cfg)

	assert.False(t, app.IsAuthenticated())
	_, err := app.ListRecords(ctx)
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)

	// Поверхностная проверка не доходит до API
	err = app.Register(ctx, user.RegisterRequest{Name: "Анна", Email: "bad", Password: "secret1"})
	assert.Error(t, err)

	u := loggedIn(t, app)
	assert.NotEmpty(t, u.UUID)
	assert.NotEmpty(t, u.Token)
	assert.True(t, app.IsAuthenticated())

	// Повторная регистрация: сообщение API доходит до пользователя
	err = app.Register(ctx, user.RegisterRequest{Name: "Анна", Email: "anna@example.com", Password: "secret1"})
	require.Error(t, err)
	assert.True(t, IsStatus(err, 409))

	// Сессия переживает перезапуск клиента
	require.NoError(t, app.Close())
	app = newTestApp(t, cfg)
	current, err := app.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, u.ID, current.ID)

	updated, err := app.UpdateProfile(ctx, user.ProfileRequest{Name: "Анна К.", Email: "anna@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Анна К.", updated.Name)
	assert.Equal(t, u.Token, updated.Token)

	require.NoError(t, app.Logout(ctx))
	assert.False(t, app.IsAuthenticated())
}

func TestApp_LoginFailure(t *testing.T) {
	app := newTestApp(t, testConfig(t, newTestServer(t)))
	loggedIn(t, app)
	require.NoError(t, app.Logout(context.Background()))

	_, err := app.Login(context.Background(), user.LoginRequest{Email: "anna@example.com", Password: "wrong12"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email or password")
	assert.False(t, app.IsAuthenticated())
}

func TestApp_VerifyEmail(t *testing.T) {
	app := newTestApp(t, testConfig(t, newTestServer(t)))

	assert.Error(t, app.VerifyEmail(context.Background(), ""))

	err := app.VerifyEmail(context.Background(), "unknown")
	require.Error(t, err)
	assert.True(t, IsStatus(err, 400))
}

func TestApp_RecordsAndBests(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, testConfig(t, newTestServer(t)))
	loggedIn(t, app)

	a, err := app.CreateRecord(ctx, draft(record.Distance100, "00:30.00", "01:02.00"))
	require.NoError(t, err)
	b, err := app.CreateRecord(ctx, draft(record.Distance100, "00:29.50", "01:01.50"))
	require.NoError(t, err)

	// Черновик с неверным числом кругов не уходит в API
	bad := draft(record.Distance100, "00:30.00")
	bad.LapTimes = bad.LapTimes[:1]
	_, err = app.CreateRecord(ctx, bad)
	assert.ErrorIs(t, err, record.ErrInvalidDraft)

	entries, err := app.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	sections, err := app.Bests(ctx, true)
	require.NoError(t, err)
	require.NotEmpty(t, sections)
	free := sections[0]
	assert.Equal(t, record.StyleFreestyle, free.Style)
	assert.Equal(t, b.Record.ID, free.Cells[1].Entry.Record.ID)

	detail, err := app.RecordDetail(ctx, a.Record.ID)
	require.NoError(t, err)
	assert.False(t, detail.IsBest)
	assert.Equal(t, b.Record.ID, detail.Best.Record.ID)
	require.Len(t, detail.Passings, 2)
	assert.Equal(t, "+00:00.50", detail.Passings[1].DeltaString())

	edit := record.DraftFromEntry(a)
	require.NoError(t, edit.SetLap(1, "01:00.00"))
	updated, err := app.UpdateRecord(ctx, a.Record.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, "01:00.00", updated.Laps[1].LapTime)

	detail, err = app.RecordDetail(ctx, a.Record.ID)
	require.NoError(t, err)
	assert.True(t, detail.IsBest)

	require.NoError(t, app.DeleteRecord(ctx, a.Record.ID))
	_, err = app.GetRecord(ctx, a.Record.ID)
	assert.True(t, IsStatus(err, 404))
}

func TestApp_RecognizeLaps(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, testConfig(t, newTestServer(t)))

	accepted, dropped, err := app.RecognizeLaps(ctx, "board.txt", strings.NewReader("29.80\n1:02.40\nbogus\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"00:29.80", "01:02.40"}, accepted)
	assert.Equal(t, 1, dropped)

	d := record.NewDraft(day)
	assert.Equal(t, 0, d.ApplyOCR(accepted))
	assert.Equal(t, accepted, d.LapTimes)
}

func TestForm_Submit(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, testConfig(t, newTestServer(t)))
	loggedIn(t, app)

	form := app.NewForm(0, draft(record.Distance50, "00:31.00"))
	form.processing.Store(true)
	_, err := form.Submit(ctx)
	assert.ErrorIs(t, err, ErrBusy)
	form.processing.Store(false)

	e, err := form.Submit(ctx)
	require.NoError(t, err)
	assert.False(t, form.Processing())

	edit := app.NewForm(e.Record.ID, record.DraftFromEntry(e))
	edit.Draft.Memo = "после тренировки"
	e, err = edit.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "после тренировки", e.Record.Memo)
}

func TestForm_SubmitConcurrent(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, testConfig(t, newTestServer(t)))
	loggedIn(t, app)

	form := app.NewForm(0, draft(record.Distance50, "00:31.00"))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		busy int
		ok   int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := form.Submit(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if assert.ErrorIs(t, err, ErrBusy) {
				busy++
			}
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, ok, 1)
	assert.Equal(t, 8, ok+busy)

	entries, err := app.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, ok)
}

func TestApp_BulkCreateConcurrent(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, testConfig(t, newTestServer(t)))
	loggedIn(t, app)

	drafts := []*record.Draft{draft(record.Distance50, "00:31.00")}

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := app.BulkCreate(ctx, drafts, func(BulkResult) {
			close(started)
			<-release
		})
		done <- err
	}()

	<-started
	_, err := app.BulkCreate(ctx, drafts, nil)
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)

	// после завершения пакета флаг снимается
	results, err := app.BulkCreate(ctx, drafts, nil)
	require.NoError(t, err)
	assert.True(t, results.AllSucceeded())

	entries, err := app.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestApp_BulkCreate(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, testConfig(t, newTestServer(t)))
	loggedIn(t, app)

	invalid := draft(record.Distance100, "00:30.00", "bogus")
	drafts := []*record.Draft{
		draft(record.Distance50, "00:31.00"),
		invalid,
		draft(record.Distance100, "00:30.00", "01:02.00"),
	}

	var seen []int
	results, err := app.BulkCreate(ctx, drafts, func(r BulkResult) {
		seen = append(seen, r.Index)
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, seen)
	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.ErrorIs(t, results[1].Error, record.ErrInvalidDraft)
	assert.True(t, results[2].Success)
	assert.False(t, results.AllSucceeded())
	assert.Equal(t, 1, results.Failed())

	entries, err := app.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = app.BulkCreate(ctx, nil, nil)
	assert.Error(t, err)
}

func TestApp_UpdateProfileBusy(t *testing.T) {
	app := newTestApp(t, testConfig(t, newTestServer(t)))
	loggedIn(t, app)

	app.profileBusy.Store(true)
	_, err := app.UpdateProfile(context.Background(), user.ProfileRequest{Name: "x", Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrBusy)
}

func recordPayload() record.Payload {
	return draft(record.Distance50, "00:31.00").Payload()
}
