// Package best выбирает лучшие результаты пользователя по группам
// стиль + дистанция + бассейн.
package best

import (
	"swimlog/internal/domain/record"
)

type Key = record.Key

// Map хранит лучший заплыв для каждой группы.
type Map map[Key]record.Entry

// Compute проходит записи по порядку: первая запись группы становится лучшей,
// заменить её может только запись со строго меньшим итоговым временем.
// Записи без разборчивого итогового времени в расчёте не участвуют.
func Compute(entries []record.Entry) Map {
	m := make(Map)
	totals := make(map[Key]float64)

	for _, e := range entries {
		total, ok := e.Total()
		if !ok {
			continue
		}
		key := e.Record.Key()
		if cur, seen := totals[key]; seen && total >= cur {
			continue
		}
		m[key] = e
		totals[key] = total
	}

	return m
}

// IsBest сообщает, что запись лучшая в своей группе.
func IsBest(e record.Entry, m Map) bool {
	b, ok := m[e.Record.Key()]
	return ok && b.Record.ID == e.Record.ID
}

// For возвращает лучшую запись из той же группы, что и e.
func For(e record.Entry, entries []record.Entry) (record.Entry, bool) {
	key := e.Record.Key()
	same := make([]record.Entry, 0, len(entries))
	for _, x := range entries {
		if x.Record.Key() == key {
			same = append(same, x)
		}
	}
	b, ok := Compute(same)[key]
	return b, ok
}

// StyleDistances возвращает дистанции, на которых стиль проплывается.
func StyleDistances(s record.Style) []record.Distance {
	switch s {
	case record.StyleFreestyle:
		return append([]record.Distance(nil), record.Distances...)
	case record.StyleMedley:
		return []record.Distance{record.Distance100, record.Distance200, record.Distance400}
	default:
		return []record.Distance{record.Distance50, record.Distance100, record.Distance200}
	}
}
