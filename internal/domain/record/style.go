package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// Style - стиль плавания, идентификаторы совпадают с API.
type Style int

const (
	StyleFreestyle    Style = 1
	StyleBackstroke   Style = 2
	StyleBreaststroke Style = 3
	StyleButterfly    Style = 4
	StyleMedley       Style = 5
)

// Styles перечисляет все стили в порядке отображения.
var Styles = []Style{StyleFreestyle, StyleBackstroke, StyleBreaststroke, StyleButterfly, StyleMedley}

func (Style) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        huma.TypeInteger,
		Minimum:     bound(float64(StyleFreestyle)),
		Maximum:     bound(float64(StyleMedley)),
		Description: "Стиль: 1 вольный, 2 на спине, 3 брасс, 4 баттерфляй, 5 комплекс",
		Examples:    []any{1},
	}
}

// Validate проверяет, что стиль входит в справочник.
func (s Style) Validate() error {
	if s < StyleFreestyle || s > StyleMedley {
		return fmt.Errorf("неверный стиль: %d", int(s))
	}
	return nil
}

// DisplayName возвращает человекочитаемое название стиля.
func (s Style) DisplayName() string {
	switch s {
	case StyleFreestyle:
		return "Вольный стиль"
	case StyleBackstroke:
		return "На спине"
	case StyleBreaststroke:
		return "Брасс"
	case StyleButterfly:
		return "Баттерфляй"
	case StyleMedley:
		return "Комплекс"
	default:
		return "Неизвестный стиль"
	}
}

// LatinName - название для документов, где доступна только латиница.
func (s Style) LatinName() string {
	switch s {
	case StyleFreestyle:
		return "Freestyle"
	case StyleBackstroke:
		return "Backstroke"
	case StyleBreaststroke:
		return "Breaststroke"
	case StyleButterfly:
		return "Butterfly"
	case StyleMedley:
		return "IM"
	default:
		return "Unknown"
	}
}

func (s Style) String() string {
	return s.DisplayName()
}

// ParseStyle принимает номер стиля или его короткое имя (free, back, breast, fly, im).
func ParseStyle(v string) (Style, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "free", "freestyle", "fr":
		return StyleFreestyle, nil
	case "back", "backstroke", "ba":
		return StyleBackstroke, nil
	case "breast", "breaststroke", "br":
		return StyleBreaststroke, nil
	case "fly", "butterfly":
		return StyleButterfly, nil
	case "im", "medley":
		return StyleMedley, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("неизвестный стиль %q", v)
	}
	s := Style(n)
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return s, nil
}

// Distance - дистанция заплыва, идентификаторы совпадают с API.
type Distance int

const (
	Distance50   Distance = 1
	Distance100  Distance = 2
	Distance200  Distance = 3
	Distance400  Distance = 4
	Distance800  Distance = 5
	Distance1500 Distance = 6
)

// Distances перечисляет все дистанции по возрастанию.
var Distances = []Distance{Distance50, Distance100, Distance200, Distance400, Distance800, Distance1500}

var distanceMeters = map[Distance]int{
	Distance50:   50,
	Distance100:  100,
	Distance200:  200,
	Distance400:  400,
	Distance800:  800,
	Distance1500: 1500,
}

func bound(v float64) *float64 {
	return &v
}

func (Distance) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        huma.TypeInteger,
		Minimum:     bound(float64(Distance50)),
		Maximum:     bound(float64(Distance1500)),
		Description: "Дистанция: 1=50м, 2=100м, 3=200м, 4=400м, 5=800м, 6=1500м",
		Examples:    []any{2},
	}
}

func (d Distance) Validate() error {
	if _, ok := distanceMeters[d]; !ok {
		return fmt.Errorf("неверная дистанция: %d", int(d))
	}
	return nil
}

// Meters возвращает длину дистанции в метрах, 0 для неизвестной.
func (d Distance) Meters() int {
	return distanceMeters[d]
}

func (d Distance) DisplayName() string {
	m, ok := distanceMeters[d]
	if !ok {
		return "?"
	}
	return strconv.Itoa(m) + "m"
}

func (d Distance) String() string {
	return d.DisplayName()
}

// ParseDistance принимает длину в метрах (100, 100m) или идентификатор с решёткой (#2).
func ParseDistance(v string) (Distance, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if id, ok := strings.CutPrefix(v, "#"); ok {
		n, err := strconv.Atoi(id)
		if err != nil {
			return 0, fmt.Errorf("неизвестная дистанция %q", v)
		}
		d := Distance(n)
		return d, d.Validate()
	}

	n, err := strconv.Atoi(strings.TrimSuffix(v, "m"))
	if err != nil {
		return 0, fmt.Errorf("неизвестная дистанция %q", v)
	}
	for d, m := range distanceMeters {
		if m == n {
			return d, nil
		}
	}
	return 0, fmt.Errorf("неизвестная дистанция %q", v)
}

// CourseName возвращает название бассейна.
func CourseName(isShortCourse bool) string {
	if isShortCourse {
		return "25м"
	}
	return "50м"
}

// ParseCourse принимает short/long (или 25/50).
func ParseCourse(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "short", "sc", "25", "25m":
		return true, nil
	case "long", "lc", "50", "50m":
		return false, nil
	}
	return false, fmt.Errorf("неизвестный тип бассейна %q", v)
}
