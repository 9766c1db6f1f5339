package record

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"swimlog/internal/domain/laptime"
)

// LapPart - редактируемая часть времени круга.
type LapPart int

const (
	PartMinutes LapPart = iota
	PartSeconds
	PartHundredths
)

// Draft - состояние формы создания или редактирования записи.
type Draft struct {
	StyleID       Style
	DistanceID    Distance
	Date          Date
	IsShortCourse bool
	Memo          string
	LapTimes      []string
}

// NewDraft возвращает черновик по умолчанию: вольный стиль, 100 м, короткая вода, сегодня.
func NewDraft(now time.Time) *Draft {
	return &Draft{
		StyleID:       StyleFreestyle,
		DistanceID:    Distance100,
		Date:          NewDate(now),
		IsShortCourse: true,
		LapTimes:      ReconcileLaps(nil, ExpectedLapCount(Distance100)),
	}
}

// DraftFromEntry заполняет черновик из сохранённой записи.
// Времена кругов приводятся к MM:SS.ss, неразборчивые остаются как есть.
func DraftFromEntry(e Entry) *Draft {
	times := e.LapTimes()
	for i, t := range times {
		if c, ok := laptime.Canonicalize(t); ok {
			times[i] = c
		}
	}
	return &Draft{
		StyleID:       e.Record.StyleID,
		DistanceID:    e.Record.DistanceID,
		Date:          e.Record.Date,
		IsShortCourse: e.Record.IsShortCourse,
		Memo:          e.Record.Memo,
		LapTimes:      times,
	}
}

// DraftFromPayload нужен для пакетной загрузки из файла.
func DraftFromPayload(p Payload) *Draft {
	return &Draft{
		StyleID:       p.StyleID,
		DistanceID:    p.DistanceID,
		Date:          p.Date,
		IsShortCourse: p.IsShortCourse,
		Memo:          p.Memo,
		LapTimes:      append([]string(nil), p.LapTimes...),
	}
}

// SetDistance меняет дистанцию и подгоняет число кругов.
func (d *Draft) SetDistance(distance Distance) {
	d.DistanceID = distance
	d.LapTimes = ReconcileLaps(d.LapTimes, ExpectedLapCount(distance))
}

// SetLap задаёт время круга целиком.
func (d *Draft) SetLap(i int, value string) error {
	if i < 0 || i >= len(d.LapTimes) {
		return fmt.Errorf("круг %d вне диапазона 1..%d", i+1, len(d.LapTimes))
	}
	d.LapTimes[i] = strings.TrimSpace(value)
	return nil
}

// SetLapPart меняет минуты, секунды или сотые круга i, сохраняя остальные части.
func (d *Draft) SetLapPart(i int, part LapPart, value int) error {
	if i < 0 || i >= len(d.LapTimes) {
		return fmt.Errorf("круг %d вне диапазона 1..%d", i+1, len(d.LapTimes))
	}
	limit := 60
	if part == PartHundredths {
		limit = 100
	}
	if value < 0 || (part != PartMinutes && value >= limit) {
		return fmt.Errorf("значение %d вне допустимого диапазона", value)
	}

	total := laptime.Parse(d.LapTimes[i])
	if !laptime.Valid(total) {
		total = 0
	}
	hundredths := int(total*100 + 0.5)
	minutes, seconds, frac := hundredths/6000, hundredths%6000/100, hundredths%100

	switch part {
	case PartMinutes:
		minutes = value
	case PartSeconds:
		seconds = value
	case PartHundredths:
		frac = value
	default:
		return fmt.Errorf("неизвестная часть времени %d", part)
	}

	d.LapTimes[i] = fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, frac)
	return nil
}

// ApplyOCR заменяет все времена кругов распознанными. Это замена, а не слияние
// по номерам: старые времена теряются. Возвращает число отброшенных токенов.
func (d *Draft) ApplyOCR(tokens []string) int {
	accepted, dropped := laptime.NormalizeOCRTokens(tokens)
	d.LapTimes = accepted
	return dropped
}

// Payload собирает тело запроса.
func (d *Draft) Payload() Payload {
	return Payload{
		StyleID:       d.StyleID,
		DistanceID:    d.DistanceID,
		Date:          d.Date,
		IsShortCourse: d.IsShortCourse,
		Memo:          d.Memo,
		LapTimes:      append([]string(nil), d.LapTimes...),
	}
}

// Validate выполняет поверхностные проверки перед отправкой.
// Все найденные проблемы объединяются в одну ошибку, обёрнутую в ErrInvalidDraft.
func (d *Draft) Validate() error {
	var errs []error

	if err := d.StyleID.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := d.DistanceID.Validate(); err != nil {
		errs = append(errs, err)
	}
	if d.Date.IsZero() {
		errs = append(errs, errors.New("не указана дата"))
	}
	if want := ExpectedLapCount(d.DistanceID); len(d.LapTimes) != want {
		errs = append(errs, fmt.Errorf("ожидалось кругов: %d, указано: %d", want, len(d.LapTimes)))
	}
	for i, t := range d.LapTimes {
		if !laptime.Valid(laptime.Parse(t)) {
			errs = append(errs, fmt.Errorf("круг %d: неверное время %q", i+1, t))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDraft, errors.Join(errs...))
	}
	return nil
}
