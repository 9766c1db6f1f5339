package user

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"swimlog/internal/app/server/api/http/middleware/auth"
	"swimlog/internal/domain/user"
	"swimlog/internal/utils/logger"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, req user.RegisterRequest) (user.User, string, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(user.User), args.String(1), args.Error(2)
}

func (m *MockService) Verify(ctx context.Context, token string) (user.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockService) Authenticate(ctx context.Context, req user.LoginRequest) (user.User, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockService) Session(ctx context.Context, token string) (int, error) {
	args := m.Called(ctx, token)
	return args.Int(0), args.Error(1)
}

func (m *MockService) Find(ctx context.Context, id int) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockService) FindByUUID(ctx context.Context, uuid string) (user.User, error) {
	args := m.Called(ctx, uuid)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockService) UpdateProfile(ctx context.Context, id int, req user.ProfileRequest) (user.User, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(user.User), args.Error(1)
}

func setup(t *testing.T, svc *MockService) humatest.TestAPI {
	_, api := humatest.New(t)
	mw := auth.New(svc, false, logger.NewDiscard())
	NewHandler(svc, "http://localhost/verify", logger.NewDiscard(), nil, huma.Middlewares{mw.Middleware()}).SetupRoutes(api)
	return api
}

var anna = user.User{ID: 1, UUID: "u-1", Name: "Анна", Email: "anna@example.com"}

func TestHandler_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		req := user.RegisterRequest{Name: "Анна", Email: "anna@example.com", Password: "secret1"}
		svc.On("Register", mock.Anything, req).Return(anna, "tok", nil)

		resp := setup(t, svc).Post("/users", req)

		assert.Equal(t, http.StatusCreated, resp.Code)
		assert.Contains(t, resp.Body.String(), `"uuid":"u-1"`)
		svc.AssertExpectations(t)
	})

	t.Run("Error_EmailTaken", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Register", mock.Anything, mock.Anything).Return(user.User{}, "", user.ErrEmailTaken)

		resp := setup(t, svc).Post("/users", map[string]any{"name": "a", "email": "a@b.c", "password": "123456"})

		assert.Equal(t, http.StatusConflict, resp.Code)
	})
}

func TestHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		withToken := anna
		withToken.Token = "session"
		svc.On("Authenticate", mock.Anything, user.LoginRequest{Email: "anna@example.com", Password: "secret1"}).Return(withToken, nil)

		resp := setup(t, svc).Post("/login", map[string]any{"email": "anna@example.com", "password": "secret1"})

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"token":"session"`)
		assert.Contains(t, resp.Body.String(), `"name":"Анна"`)
	})

	t.Run("Error_InvalidAuth", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Authenticate", mock.Anything, mock.Anything).Return(user.User{}, user.ErrInvalidAuth)

		resp := setup(t, svc).Post("/login", map[string]any{"email": "anna@example.com", "password": "x"})

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Contains(t, resp.Body.String(), "invalid email or password")
	})
}

func TestHandler_Verify(t *testing.T) {
	svc := new(MockService)
	svc.On("Verify", mock.Anything, "good").Return(anna, nil)
	svc.On("Verify", mock.Anything, "bad").Return(user.User{}, user.ErrInvalidToken)
	api := setup(t, svc)

	assert.Equal(t, http.StatusOK, api.Get("/verify-email?token=good").Code)
	assert.Equal(t, http.StatusBadRequest, api.Get("/verify-email?token=bad").Code)
	assert.Equal(t, http.StatusBadRequest, api.Get("/verify-email").Code)
}

func TestHandler_Logout(t *testing.T) {
	svc := new(MockService)
	svc.On("Session", mock.Anything, "session").Return(1, nil)
	svc.On("Logout", mock.Anything, "session").Return(nil)

	resp := setup(t, svc).Post("/logout", "Authorization: Bearer session")

	assert.Equal(t, http.StatusOK, resp.Code)
	svc.AssertExpectations(t)
}

func TestHandler_UpdateByUUID(t *testing.T) {
	t.Run("Owner", func(t *testing.T) {
		svc := new(MockService)
		req := user.ProfileRequest{Name: "Анна К.", Email: "anna@example.com"}
		updated := anna
		updated.Name = req.Name
		svc.On("Session", mock.Anything, "session").Return(1, nil)
		svc.On("FindByUUID", mock.Anything, "u-1").Return(anna, nil)
		svc.On("UpdateProfile", mock.Anything, 1, req).Return(updated, nil)

		resp := setup(t, svc).Put("/users/uuid/u-1", "Authorization: Bearer session", req)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "Анна К.")
	})

	t.Run("Stranger", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Session", mock.Anything, "other").Return(2, nil)
		svc.On("FindByUUID", mock.Anything, "u-1").Return(anna, nil)

		resp := setup(t, svc).Put("/users/uuid/u-1", "Authorization: Bearer other",
			user.ProfileRequest{Name: "x", Email: "x@y.z"})

		assert.Equal(t, http.StatusForbidden, resp.Code)
		svc.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Find", mock.Anything, 5).Return(user.User{}, user.ErrNotFound)

		resp := setup(t, svc).Get("/users/5")

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}
