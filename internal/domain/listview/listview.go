// Package listview фильтрует и сортирует список записей.
package listview

import (
	"fmt"
	"slices"
	"strings"

	"swimlog/internal/domain/record"
)

// Filter - независимые условия отбора, nil означает "любой".
type Filter struct {
	Style       *record.Style
	Distance    *record.Distance
	ShortCourse *bool
}

// Match сообщает, что запись проходит все заданные условия.
func (f Filter) Match(e record.Entry) bool {
	if f.Style != nil && e.Record.StyleID != *f.Style {
		return false
	}
	if f.Distance != nil && e.Record.DistanceID != *f.Distance {
		return false
	}
	if f.ShortCourse != nil && e.Record.IsShortCourse != *f.ShortCourse {
		return false
	}
	return true
}

// IsZero сообщает, что фильтр пропускает всё.
func (f Filter) IsZero() bool {
	return f.Style == nil && f.Distance == nil && f.ShortCourse == nil
}

type SortKey string

const (
	ByDate SortKey = "date"
	ByTime SortKey = "time"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort - активный ключ сортировки и направление.
type Sort struct {
	Key       SortKey
	Direction Direction
}

// DefaultSort - сначала новые.
func DefaultSort() Sort {
	return Sort{Key: ByDate, Direction: Desc}
}

// Toggle повторный выбор того же ключа меняет направление,
// новый ключ начинает с возрастания.
func (s Sort) Toggle(key SortKey) Sort {
	if s.Key == key {
		if s.Direction == Asc {
			return Sort{Key: key, Direction: Desc}
		}
		return Sort{Key: key, Direction: Asc}
	}
	return Sort{Key: key, Direction: Asc}
}

// ParseSortKey разбирает значение флага.
func ParseSortKey(v string) (SortKey, error) {
	switch SortKey(strings.ToLower(v)) {
	case ByDate:
		return ByDate, nil
	case ByTime:
		return ByTime, nil
	}
	return "", fmt.Errorf("неизвестный ключ сортировки %q", v)
}

// Apply возвращает новый срез: отфильтрованный и устойчиво отсортированный.
// Записи без разборчивого времени при сортировке по времени идут в конце
// независимо от направления.
func Apply(entries []record.Entry, f Filter, s Sort) []record.Entry {
	out := make([]record.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}

	slices.SortStableFunc(out, func(a, b record.Entry) int {
		return compare(a, b, s)
	})
	return out
}

func compare(a, b record.Entry, s Sort) int {
	var c int
	switch s.Key {
	case ByTime:
		ta, okA := a.Total()
		tb, okB := b.Total()
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		c = cmpFloat(ta, tb)
	default:
		c = a.Record.Date.Compare(b.Record.Date.Time)
	}

	if s.Direction == Desc {
		return -c
	}
	return c
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
