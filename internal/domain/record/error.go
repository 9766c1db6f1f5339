package record

import (
	"errors"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidDraft = errors.New("invalid record draft")
)
