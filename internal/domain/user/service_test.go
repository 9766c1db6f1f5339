package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id int) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByUUID(ctx context.Context, uuid string) (User, error) {
	args := m.Called(ctx, uuid)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

// MockTokens is a mock implementation of the TokenRepository interface for testing
type MockTokens struct {
	mock.Mock
}

func (m *MockTokens) SaveVerification(ctx context.Context, tokenHash string, userID int) error {
	return m.Called(ctx, tokenHash, userID).Error(0)
}

func (m *MockTokens) ConsumeVerification(ctx context.Context, tokenHash string) (int, error) {
	args := m.Called(ctx, tokenHash)
	return args.Int(0), args.Error(1)
}

func (m *MockTokens) SaveSession(ctx context.Context, tokenHash string, userID int) error {
	return m.Called(ctx, tokenHash, userID).Error(0)
}

func (m *MockTokens) FindSession(ctx context.Context, tokenHash string) (int, error) {
	args := m.Called(ctx, tokenHash)
	return args.Int(0), args.Error(1)
}

func (m *MockTokens) DeleteSession(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func newTestService(opts ...Option) (*Service, *MockRepository, *MockTokens) {
	repo := new(MockRepository)
	tokens := new(MockTokens)
	return NewService(repo, tokens, NewValidator(), slog.Default(), opts...), repo, tokens
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestService_Register(t *testing.T) {
	service, repo, tokens := newTestService()

	repo.On("FindByEmail", mock.Anything, "swimmer@example.com").Return(User{}, ErrNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *User) bool {
		return u.Name == "Анна" && u.UUID != "" && u.Password != "secret1"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*User).ID = 7
	}).Return(nil)
	tokens.On("SaveVerification", mock.Anything, mock.AnythingOfType("string"), 7).Return(nil)

	u, token, err := service.Register(context.Background(), RegisterRequest{
		Name:     " Анна ",
		Email:    " Swimmer@Example.com",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, 7, u.ID)
	assert.Equal(t, "swimmer@example.com", u.Email)
	assert.Len(t, token, 44)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret1")))

	repo.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestService_Register_Errors(t *testing.T) {
	t.Run("invalid input", func(t *testing.T) {
		service, _, _ := newTestService()

		_, _, err := service.Register(context.Background(), RegisterRequest{Name: "A", Email: "nope", Password: "secret1"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("email taken", func(t *testing.T) {
		service, repo, _ := newTestService()
		repo.On("FindByEmail", mock.Anything, "a@b.co").Return(User{ID: 1}, nil)

		_, _, err := service.Register(context.Background(), RegisterRequest{Name: "A", Email: "a@b.co", Password: "secret1"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("repository error", func(t *testing.T) {
		service, repo, _ := newTestService()
		repo.On("FindByEmail", mock.Anything, "a@b.co").Return(User{}, ErrNotFound)
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("database error"))

		_, _, err := service.Register(context.Background(), RegisterRequest{Name: "A", Email: "a@b.co", Password: "secret1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database error")
	})
}

func TestService_Authenticate(t *testing.T) {
	stored := User{ID: 5, Email: "a@b.co", Password: hashed(t, "secret1")}

	t.Run("success", func(t *testing.T) {
		service, repo, tokens := newTestService()
		repo.On("FindByEmail", mock.Anything, "a@b.co").Return(stored, nil)
		tokens.On("SaveSession", mock.Anything, mock.AnythingOfType("string"), 5).Return(nil)

		u, err := service.Authenticate(context.Background(), LoginRequest{Email: "A@B.co", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, 5, u.ID)
		assert.NotEmpty(t, u.Token)
		tokens.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		service, repo, _ := newTestService()
		repo.On("FindByEmail", mock.Anything, "a@b.co").Return(stored, nil)

		_, err := service.Authenticate(context.Background(), LoginRequest{Email: "a@b.co", Password: "wrong!!"})
		assert.ErrorIs(t, err, ErrInvalidAuth)
	})

	t.Run("unknown email", func(t *testing.T) {
		service, repo, _ := newTestService()
		repo.On("FindByEmail", mock.Anything, "x@b.co").Return(User{}, ErrNotFound)

		_, err := service.Authenticate(context.Background(), LoginRequest{Email: "x@b.co", Password: "secret1"})
		assert.ErrorIs(t, err, ErrInvalidAuth)
	})

	t.Run("verification required", func(t *testing.T) {
		service, repo, _ := newTestService(WithRequireVerified(true))
		repo.On("FindByEmail", mock.Anything, "a@b.co").Return(stored, nil)

		_, err := service.Authenticate(context.Background(), LoginRequest{Email: "a@b.co", Password: "secret1"})
		assert.ErrorIs(t, err, ErrNotVerified)
	})
}

func TestService_Verify(t *testing.T) {
	service, repo, tokens := newTestService()

	tokens.On("ConsumeVerification", mock.Anything, hashToken("tok")).Return(3, nil)
	repo.On("FindByID", mock.Anything, 3).Return(User{ID: 3}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *User) bool { return u.Verified })).Return(nil)

	u, err := service.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, u.Verified)

	_, err = service.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)

	tokens.On("ConsumeVerification", mock.Anything, hashToken("used")).Return(0, errors.New("not found"))
	_, err = service.Verify(context.Background(), "used")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_UpdateProfile(t *testing.T) {
	service, repo, _ := newTestService()

	repo.On("FindByID", mock.Anything, 1).Return(User{ID: 1, Name: "Old", Email: "old@b.co"}, nil)
	repo.On("FindByEmail", mock.Anything, "new@b.co").Return(User{}, ErrNotFound)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	u, err := service.UpdateProfile(context.Background(), 1, ProfileRequest{Name: "New", Email: "new@b.co"})
	require.NoError(t, err)
	assert.Equal(t, "New", u.Name)
	assert.Equal(t, "new@b.co", u.Email)

	repo.On("FindByEmail", mock.Anything, "taken@b.co").Return(User{ID: 2}, nil)
	_, err = service.UpdateProfile(context.Background(), 1, ProfileRequest{Name: "New", Email: "taken@b.co"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Sessions(t *testing.T) {
	service, _, tokens := newTestService()

	tokens.On("FindSession", mock.Anything, hashToken("tok")).Return(9, nil)
	tokens.On("DeleteSession", mock.Anything, hashToken("tok")).Return(nil)

	id, err := service.Session(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 9, id)

	assert.NoError(t, service.Logout(context.Background(), "tok"))
	assert.NoError(t, service.Logout(context.Background(), ""))
	tokens.AssertNumberOfCalls(t, "DeleteSession", 1)
}
