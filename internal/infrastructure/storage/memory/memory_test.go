package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swimlog/internal/domain/record"
	"swimlog/internal/domain/user"
	"swimlog/internal/utils/logger"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(New(), logger.NewDiscard())

	u := &user.User{UUID: "u-1", Name: "Анна", Email: "anna@example.com"}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, 1, u.ID)

	err := repo.Create(ctx, &user.User{Email: "ANNA@example.com"})
	assert.ErrorIs(t, err, user.ErrEmailTaken)

	got, err := repo.FindByEmail(ctx, "Anna@Example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = repo.FindByUUID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Анна", got.Name)

	_, err = repo.FindByID(ctx, 42)
	assert.ErrorIs(t, err, user.ErrNotFound)

	got.Name = "Анна К."
	require.NoError(t, repo.Update(ctx, &got))
	got, _ = repo.FindByID(ctx, 1)
	assert.Equal(t, "Анна К.", got.Name)

	assert.ErrorIs(t, repo.Update(ctx, &user.User{ID: 9}), user.ErrNotFound)
}

func TestTokenRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTokenRepository(New(), logger.NewDiscard())

	require.NoError(t, repo.SaveVerification(ctx, "v", 3))
	id, err := repo.ConsumeVerification(ctx, "v")
	require.NoError(t, err)
	assert.Equal(t, 3, id)

	// Токен одноразовый
	_, err = repo.ConsumeVerification(ctx, "v")
	assert.ErrorIs(t, err, user.ErrInvalidToken)

	require.NoError(t, repo.SaveSession(ctx, "s", 5))
	id, err = repo.FindSession(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 5, id)

	require.NoError(t, repo.DeleteSession(ctx, "s"))
	_, err = repo.FindSession(ctx, "s")
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}

func TestRecordRepository(t *testing.T) {
	ctx := context.Background()
	db := New()
	repo := NewRecordRepository(db, logger.NewDiscard())

	first := &record.Entry{
		Record: record.Record{UserID: 1, StyleID: record.StyleFreestyle, DistanceID: record.Distance100},
		Laps:   record.BuildLaps(0, []string{"00:30.00", "01:02.00"}),
	}
	second := &record.Entry{Record: record.Record{UserID: 2}}
	third := &record.Entry{Record: record.Record{UserID: 1}}

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, third))
	assert.Equal(t, 1, first.Record.ID)
	assert.Equal(t, 1, first.Laps[1].RecordID)

	list, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Record.ID)
	assert.Equal(t, 3, list[1].Record.ID)

	// Возвращённая копия не связана с хранилищем
	list[0].Laps[0].LapTime = "99:99.99"
	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "00:30.00", got.Laps[0].LapTime)

	got.Laps = got.Laps[:1]
	require.NoError(t, repo.Update(ctx, &got))
	got, _ = repo.Get(ctx, 1)
	assert.Len(t, got.Laps, 1)

	require.NoError(t, repo.Delete(ctx, 2))
	assert.ErrorIs(t, repo.Delete(ctx, 2), record.ErrNotFound)
	_, err = repo.Get(ctx, 2)
	assert.ErrorIs(t, err, record.ErrNotFound)

	users, records := db.Stats()
	assert.Equal(t, 0, users)
	assert.Equal(t, 2, records)

	empty, err := repo.ListByUser(ctx, 7)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
