package best

import (
	"swimlog/internal/domain/record"
)

// Cell - одна клетка таблицы лучших результатов.
// Entry == nil означает, что результата ещё нет.
type Cell struct {
	Distance record.Distance
	Entry    *record.Entry
}

func (c Cell) HasRecord() bool {
	return c.Entry != nil
}

// Total возвращает итоговое время или --:--.--.
func (c Cell) Total() string {
	if c.Entry == nil {
		return record.TotalTimeString(nil)
	}
	return record.TotalTimeString(c.Entry.LapTimes())
}

// Section - лучшие результаты одного стиля.
type Section struct {
	Style         record.Style
	IsShortCourse bool
	Cells         []Cell
}

// Filled возвращает число клеток с результатом.
func (s Section) Filled() int {
	n := 0
	for _, c := range s.Cells {
		if c.HasRecord() {
			n++
		}
	}
	return n
}

// Grid строит полную таблицу стиль x дистанция для одного типа бассейна.
// Записи другого бассейна отбрасываются до расчёта, пустые клетки сохраняются.
func Grid(entries []record.Entry, isShortCourse bool) []Section {
	scoped := make([]record.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Record.IsShortCourse == isShortCourse {
			scoped = append(scoped, e)
		}
	}
	m := Compute(scoped)

	sections := make([]Section, 0, len(record.Styles))
	for _, s := range record.Styles {
		sec := Section{Style: s, IsShortCourse: isShortCourse}
		for _, d := range StyleDistances(s) {
			cell := Cell{Distance: d}
			if e, ok := m[Key{StyleID: s, DistanceID: d, IsShortCourse: isShortCourse}]; ok {
				cell.Entry = &e
			}
			sec.Cells = append(sec.Cells, cell)
		}
		sections = append(sections, sec)
	}
	return sections
}
