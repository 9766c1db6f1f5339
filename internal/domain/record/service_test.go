package record

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, e *Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockRepository) Get(ctx context.Context, recordID int) (Entry, error) {
	args := m.Called(ctx, recordID)
	return args.Get(0).(Entry), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, e *Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, recordID int) error {
	return m.Called(ctx, recordID).Error(0)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID int) ([]Entry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Entry), args.Error(1)
}

func validPayload() Payload {
	return Payload{
		StyleID:       StyleFreestyle,
		DistanceID:    Distance100,
		Date:          NewDate(day),
		IsShortCourse: true,
		LapTimes:      []string{"00:30.00", "01:05.20"},
	}
}

func TestService_Create(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, slog.Default())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *Entry) bool {
		return e.Record.UserID == 4 && len(e.Laps) == 2 && e.Laps[1].LapNumber == 2
	})).Run(func(args mock.Arguments) {
		e := args.Get(1).(*Entry)
		e.Record.ID = 11
		for i := range e.Laps {
			e.Laps[i].RecordID = 11
		}
	}).Return(nil)

	e, err := service.Create(context.Background(), 4, validPayload())

	require.NoError(t, err)
	assert.Equal(t, 11, e.Record.ID)
	assert.Equal(t, "01:05.20", e.Laps[1].LapTime)
	assert.False(t, e.Record.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestService_Create_Invalid(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, slog.Default())

	p := validPayload()
	p.LapTimes = []string{"00:30.00"}

	_, err := service.Create(context.Background(), 4, p)

	assert.ErrorIs(t, err, ErrInvalidDraft)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Update(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, slog.Default())

	stored := Entry{Record: Record{ID: 3, UserID: 4, StyleID: StyleBackstroke, DistanceID: Distance50}}
	repo.On("Get", mock.Anything, 3).Return(stored, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	p := validPayload()
	p.Memo = "после правки"
	e, err := service.Update(context.Background(), 3, p)

	require.NoError(t, err)
	assert.Equal(t, 4, e.Record.UserID)
	assert.Equal(t, StyleFreestyle, e.Record.StyleID)
	assert.Equal(t, "после правки", e.Record.Memo)
	require.Len(t, e.Laps, 2)
	assert.Equal(t, 3, e.Laps[0].RecordID)
}

func TestService_NotFound(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, slog.Default())

	repo.On("Get", mock.Anything, 99).Return(Entry{}, ErrNotFound)
	repo.On("Delete", mock.Anything, 99).Return(ErrNotFound)

	_, err := service.Find(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.Update(context.Background(), 99, validPayload())
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, service.Delete(context.Background(), 99), ErrNotFound)
}

func TestService_List_RepositoryError(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, slog.Default())

	repo.On("ListByUser", mock.Anything, 1).Return(nil, errors.New("database error"))

	_, err := service.List(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
}
