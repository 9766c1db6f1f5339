package record

import (
	"context"
)

// Repository - хранилище записей на стороне API.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	Get(ctx context.Context, recordID int) (Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, recordID int) error
	ListByUser(ctx context.Context, userID int) ([]Entry, error)
}
