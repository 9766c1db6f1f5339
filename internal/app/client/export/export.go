// Package export выгружает таблицу лучших времён в PDF и XLSX.
package export

import (
	"slices"
	"time"

	"swimlog/internal/domain/best"
	"swimlog/internal/domain/record"
)

// Options - подписи документа.
type Options struct {
	Title       string
	Swimmer     string
	GeneratedAt time.Time
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Personal best times"
	}
	if o.GeneratedAt.IsZero() {
		o.GeneratedAt = time.Now()
	}
	return o
}

func courseLatin(isShortCourse bool) string {
	if isShortCourse {
		return "Short course (25m)"
	}
	return "Long course (50m)"
}

// Filter оставляет секции выбранных стилей в исходном порядке.
// Без стилей возвращает все секции.
func Filter(sections []best.Section, styles ...record.Style) []best.Section {
	if len(styles) == 0 {
		return sections
	}
	out := make([]best.Section, 0, len(styles))
	for _, sec := range sections {
		if slices.Contains(styles, sec.Style) {
			out = append(out, sec)
		}
	}
	return out
}
