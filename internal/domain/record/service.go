package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

// Servicer - серверная сторона записей, используется dev-сервером API.
type Servicer interface {
	List(ctx context.Context, userID int) ([]Entry, error)
	Create(ctx context.Context, userID int, p Payload) (Entry, error)
	Find(ctx context.Context, recordID int) (Entry, error)
	Update(ctx context.Context, recordID int, p Payload) (Entry, error)
	Delete(ctx context.Context, recordID int) error
}

type Service struct {
	repo Repository
	now  func() time.Time
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		log:  log.With("component", "record_service"),
	}
}

// List returns all records for a user
func (s *Service) List(ctx context.Context, userID int) ([]Entry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("failed to list records", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list records: %w", err)
	}
	return entries, nil
}

// Create проверяет тело запроса и сохраняет запись вместе с кругами.
func (s *Service) Create(ctx context.Context, userID int, p Payload) (Entry, error) {
	if err := DraftFromPayload(p).Validate(); err != nil {
		return Entry{}, err
	}

	now := s.now()
	e := Entry{
		Record: Record{
			UserID:        userID,
			StyleID:       p.StyleID,
			DistanceID:    p.DistanceID,
			Date:          p.Date,
			IsShortCourse: p.IsShortCourse,
			Memo:          p.Memo,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
	e.Laps = stampLaps(BuildLaps(0, p.LapTimes), now)

	if err := s.repo.Create(ctx, &e); err != nil {
		s.log.Error("failed to create record", "user_id", userID, "error", err.Error())
		return Entry{}, fmt.Errorf("create record: %w", err)
	}

	s.log.Info("record created", "record_id", e.Record.ID, "user_id", userID)
	return e, nil
}

// Find returns a specific record by ID
func (s *Service) Find(ctx context.Context, recordID int) (Entry, error) {
	e, err := s.repo.Get(ctx, recordID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("find record: %w", err)
	}
	return e, nil
}

// Update заменяет поля записи и весь список кругов.
func (s *Service) Update(ctx context.Context, recordID int, p Payload) (Entry, error) {
	if err := DraftFromPayload(p).Validate(); err != nil {
		return Entry{}, err
	}

	e, err := s.Find(ctx, recordID)
	if err != nil {
		return Entry{}, err
	}

	now := s.now()
	e.Record.StyleID = p.StyleID
	e.Record.DistanceID = p.DistanceID
	e.Record.Date = p.Date
	e.Record.IsShortCourse = p.IsShortCourse
	e.Record.Memo = p.Memo
	e.Record.UpdatedAt = now
	e.Laps = stampLaps(BuildLaps(recordID, p.LapTimes), now)

	if err := s.repo.Update(ctx, &e); err != nil {
		s.log.Error("failed to update record", "record_id", recordID, "error", err)
		return Entry{}, fmt.Errorf("update record: %w", err)
	}

	s.log.Info("record updated", "record_id", recordID)
	return e, nil
}

// Delete permanently deletes a record
func (s *Service) Delete(ctx context.Context, recordID int) error {
	if err := s.repo.Delete(ctx, recordID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to delete record", "record_id", recordID, "error", err)
		return fmt.Errorf("delete record: %w", err)
	}

	s.log.Info("record deleted", "record_id", recordID)
	return nil
}

func stampLaps(laps []Lap, now time.Time) []Lap {
	for i := range laps {
		laps[i].CreatedAt = now
		laps[i].UpdatedAt = now
	}
	return laps
}
