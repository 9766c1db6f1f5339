package record

import (
	"encoding/json"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// Record - один заплыв пользователя без кругов.
type Record struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	StyleID       Style     `json:"style_id"`
	DistanceID    Distance  `json:"distance_id"`
	Date          Date      `json:"date"`
	IsShortCourse bool      `json:"is_short_course"`
	Memo          string    `json:"memo"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Key возвращает группу, в которой запись соревнуется за лучшее время.
func (r Record) Key() Key {
	return Key{StyleID: r.StyleID, DistanceID: r.DistanceID, IsShortCourse: r.IsShortCourse}
}

// Lap - накопительное время на отметке lap_number*50 метров.
type Lap struct {
	RecordID  int       `json:"record_id"`
	LapNumber int       `json:"lap_number"`
	LapTime   string    `json:"lap_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Meters возвращает отметку дистанции, на которой снято время круга.
func (l Lap) Meters() int {
	return l.LapNumber * LapLength
}

// Entry - запись вместе с упорядоченными кругами, как её отдаёт API.
type Entry struct {
	Record Record `json:"record"`
	Laps   []Lap  `json:"laps"`
}

// LapTimes возвращает времена кругов в порядке номеров.
func (e Entry) LapTimes() []string {
	times := make([]string, len(e.Laps))
	for i, l := range e.Laps {
		times[i] = l.LapTime
	}
	return times
}

// Total возвращает итоговое время заплыва в секундах.
func (e Entry) Total() (float64, bool) {
	return TotalTime(e.LapTimes())
}

// Key - группа для лучшего времени: стиль, дистанция, бассейн.
type Key struct {
	StyleID       Style
	DistanceID    Distance
	IsShortCourse bool
}

// Payload - тело запроса на создание и изменение записи.
type Payload struct {
	StyleID       Style    `json:"style_id"`
	DistanceID    Distance `json:"distance_id"`
	Date          Date     `json:"date"`
	IsShortCourse bool     `json:"is_short_course"`
	Memo          string   `json:"memo"`
	LapTimes      []string `json:"lap_times"`
}

// Date - дата заплыва. Принимает RFC3339 и YYYY-MM-DD, отдаёт RFC3339.
type Date struct {
	time.Time
}

const DateLayout = "2006-01-02"

// NewDate отбрасывает время суток.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate разбирает дату в одном из поддерживаемых форматов.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.Time.UTC().Format(time.RFC3339)), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON перекрывает метод встроенного time.Time.
func (d Date) MarshalJSON() ([]byte, error) {
	b, _ := d.MarshalText()
	return json.Marshal(string(b))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

func (Date) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        huma.TypeString,
		Description: "Дата заплыва в RFC3339 или YYYY-MM-DD",
		Examples:    []any{"2024-05-01T00:00:00Z"},
	}
}
