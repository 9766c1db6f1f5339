// Package memory - хранилище dev-сервера API в памяти процесса.
// Данные живут до остановки сервера.
package memory

import (
	"sync"

	"swimlog/internal/domain/record"
	"swimlog/internal/domain/user"
)

type Storage struct {
	mu sync.RWMutex

	users        map[int]user.User
	lastUserID   int
	records      map[int]record.Entry
	lastRecordID int

	verifications map[string]int
	sessions      map[string]int
}

func New() *Storage {
	return &Storage{
		users:         make(map[int]user.User),
		records:       make(map[int]record.Entry),
		verifications: make(map[string]int),
		sessions:      make(map[string]int),
	}
}

// Stats возвращает количество пользователей и записей, используется проверкой здоровья.
func (s *Storage) Stats() (users, records int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), len(s.records)
}

func (s *Storage) Close() error {
	return nil
}
