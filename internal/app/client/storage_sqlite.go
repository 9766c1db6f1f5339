package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"swimlog/internal/domain/session"
	"swimlog/internal/domain/user"
	"swimlog/internal/infrastructure/migration"
)

// userKey - ключ, под которым в кэше лежит текущий пользователь
const userKey = "user"

// SQLiteStorage - локальный кэш сессии клиента: таблица ключ-значение в файле SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

var _ session.Repository = (*SQLiteStorage)(nil)

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Миграции открывают своё соединение и закрывают его сами
	if err := migration.NewMigration(path, nil).Up(); err != nil {
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) Load(ctx context.Context) (user.User, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, userKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, session.ErrEmpty
	}
	if err != nil {
		return user.User{}, fmt.Errorf("ошибка чтения сессии: %w", err)
	}

	var u user.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return user.User{}, fmt.Errorf("ошибка десериализации сессии: %w", err)
	}
	return u, nil
}

func (s *SQLiteStorage) Save(ctx context.Context, u user.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("ошибка сериализации сессии: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		userKey, string(raw))
	if err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, userKey); err != nil {
		return fmt.Errorf("ошибка очистки сессии: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
