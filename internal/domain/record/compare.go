package record

import (
	"swimlog/internal/domain/laptime"
)

// Passing - сравнение времени на одной отметке дистанции с лучшим заплывом.
type Passing struct {
	LapNumber int
	Meters    int
	Current   string
	Best      string
	// Delta > 0 значит медленнее лучшего
	Delta    float64
	HasDelta bool
}

// DeltaString форматирует разницу со знаком или возвращает --:--.--.
func (p Passing) DeltaString() string {
	if !p.HasDelta {
		return laptime.Placeholder
	}
	return laptime.FormatDelta(p.Delta)
}

// PassingComparison сравнивает накопительные времена текущего заплыва
// с лучшим по каждой отметке. Отметки, которых нет у лучшего, остаются без разницы.
func PassingComparison(current, best []string) []Passing {
	out := make([]Passing, len(current))
	for i, t := range current {
		p := Passing{
			LapNumber: i + 1,
			Meters:    (i + 1) * LapLength,
			Current:   t,
			Best:      laptime.Placeholder,
		}
		if i < len(best) {
			p.Best = best[i]
			cur, b := laptime.Parse(t), laptime.Parse(best[i])
			if laptime.Valid(cur) && laptime.Valid(b) {
				p.Delta = cur - b
				p.HasDelta = true
			}
		}
		out[i] = p
	}
	return out
}
