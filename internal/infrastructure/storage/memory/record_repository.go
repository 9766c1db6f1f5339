package memory

import (
	"context"
	"slices"

	"golang.org/x/exp/slog"

	"swimlog/internal/domain/record"
)

type RecordRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewRecordRepository(db *Storage, log *slog.Logger) *RecordRepository {
	return &RecordRepository{
		db:  db,
		log: log.With("component", "record_repository"),
	}
}

func (r *RecordRepository) Create(_ context.Context, e *record.Entry) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.lastRecordID++
	e.Record.ID = r.db.lastRecordID
	for i := range e.Laps {
		e.Laps[i].RecordID = e.Record.ID
	}
	r.db.records[e.Record.ID] = cloneEntry(*e)

	r.log.Debug("record created", "record_id", e.Record.ID, "user_id", e.Record.UserID)
	return nil
}

func (r *RecordRepository) Get(_ context.Context, recordID int) (record.Entry, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	e, ok := r.db.records[recordID]
	if !ok {
		return record.Entry{}, record.ErrNotFound
	}
	return cloneEntry(e), nil
}

// Update целиком заменяет круги записи.
func (r *RecordRepository) Update(_ context.Context, e *record.Entry) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.records[e.Record.ID]; !ok {
		return record.ErrNotFound
	}
	for i := range e.Laps {
		e.Laps[i].RecordID = e.Record.ID
	}
	r.db.records[e.Record.ID] = cloneEntry(*e)
	return nil
}

func (r *RecordRepository) Delete(_ context.Context, recordID int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.records[recordID]; !ok {
		return record.ErrNotFound
	}
	delete(r.db.records, recordID)
	return nil
}

// ListByUser возвращает записи пользователя в порядке создания.
func (r *RecordRepository) ListByUser(_ context.Context, userID int) ([]record.Entry, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	entries := make([]record.Entry, 0)
	for _, e := range r.db.records {
		if e.Record.UserID == userID {
			entries = append(entries, cloneEntry(e))
		}
	}
	slices.SortFunc(entries, func(a, b record.Entry) int {
		return a.Record.ID - b.Record.ID
	})
	return entries, nil
}

func cloneEntry(e record.Entry) record.Entry {
	e.Laps = slices.Clone(e.Laps)
	return e
}
