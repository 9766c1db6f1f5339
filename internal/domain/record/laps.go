package record

import (
	"swimlog/internal/domain/laptime"
)

// LapLength - длина одного круга в метрах, к ней привязаны номера кругов.
const LapLength = 50

var expectedLaps = map[Distance]int{
	Distance50:   1,
	Distance100:  2,
	Distance200:  4,
	Distance400:  8,
	Distance800:  16,
	Distance1500: 30,
}

// ExpectedLapCount возвращает число кругов для дистанции. Для неизвестной дистанции 1.
func ExpectedLapCount(d Distance) int {
	if n, ok := expectedLaps[d]; ok {
		return n
	}
	return 1
}

// ReconcileLaps подгоняет длину списка под n: недостающие круги добавляются
// в конец нулевым временем, лишние отрезаются с конца. Исходный срез не меняется.
func ReconcileLaps(laps []string, n int) []string {
	if n < 0 {
		n = 0
	}
	out := make([]string, n)
	copied := copy(out, laps)
	for i := copied; i < n; i++ {
		out[i] = laptime.Zero
	}
	return out
}

// TotalTime возвращает итоговое время: это время последнего круга.
// false, если кругов нет или последнее время не разбирается.
func TotalTime(laps []string) (float64, bool) {
	if len(laps) == 0 {
		return 0, false
	}
	v := laptime.Parse(laps[len(laps)-1])
	if !laptime.Valid(v) {
		return 0, false
	}
	return v, true
}

// TotalTimeString форматирует итоговое время, для пустого списка --:--.--.
func TotalTimeString(laps []string) string {
	v, ok := TotalTime(laps)
	if !ok {
		return laptime.Placeholder
	}
	return laptime.Format(v)
}

// LapSplit возвращает время отдельного круга i как разницу накопительных
// времён кругов i и i-1. У первого круга отрезка нет.
func LapSplit(laps []string, i int) (string, bool) {
	if i <= 0 || i >= len(laps) {
		return "", false
	}
	return laptime.Format(laptime.Parse(laps[i]) - laptime.Parse(laps[i-1])), true
}

// GroupLaps разбивает круги на строки по size штук для вывода.
func GroupLaps[T any](laps []T, size int) [][]T {
	if size <= 0 {
		size = len(laps)
	}
	var groups [][]T
	for i := 0; i < len(laps); i += size {
		end := min(i+size, len(laps))
		groups = append(groups, laps[i:end])
	}
	return groups
}

// BuildLaps превращает список времён в круги с номерами от 1.
func BuildLaps(recordID int, times []string) []Lap {
	laps := make([]Lap, len(times))
	for i, t := range times {
		laps[i] = Lap{RecordID: recordID, LapNumber: i + 1, LapTime: t}
	}
	return laps
}
