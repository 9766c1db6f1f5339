package client

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"swimlog/internal/domain/record"
)

// BulkItem - один заплыв в файле пакетной загрузки.
// Стиль, дистанция и бассейн принимают те же значения, что флаги команд.
type BulkItem struct {
	Style    string   `yaml:"style" json:"style"`
	Distance string   `yaml:"distance" json:"distance"`
	Course   string   `yaml:"course" json:"course"`
	Date     string   `yaml:"date" json:"date"`
	Memo     string   `yaml:"memo" json:"memo"`
	Laps     []string `yaml:"laps" json:"laps"`
}

// Draft переводит элемент файла в черновик. Бассейн по умолчанию короткий.
func (it BulkItem) Draft() (*record.Draft, error) {
	style, err := record.ParseStyle(it.Style)
	if err != nil {
		return nil, err
	}
	distance, err := record.ParseDistance(it.Distance)
	if err != nil {
		return nil, err
	}
	short := true
	if it.Course != "" {
		if short, err = record.ParseCourse(it.Course); err != nil {
			return nil, err
		}
	}
	date, err := record.ParseDate(strings.TrimSpace(it.Date))
	if err != nil {
		return nil, fmt.Errorf("неверная дата %q", it.Date)
	}

	return record.DraftFromPayload(record.Payload{
		StyleID:       style,
		DistanceID:    distance,
		Date:          date,
		IsShortCourse: short,
		Memo:          it.Memo,
		LapTimes:      it.Laps,
	}), nil
}

// LoadBulkFile читает YAML или JSON со списком заплывов.
// Ошибки разбора отдельных элементов собираются вместе с их номерами.
func LoadBulkFile(r io.Reader) ([]*record.Draft, error) {
	var items []BulkItem
	if err := yaml.NewDecoder(r).Decode(&items); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("файл пуст")
		}
		return nil, fmt.Errorf("ошибка разбора файла: %w", err)
	}
	if len(items) == 0 {
		return nil, errors.New("в файле нет записей")
	}

	drafts := make([]*record.Draft, 0, len(items))
	var errs []error
	for i, it := range items {
		d, err := it.Draft()
		if err != nil {
			errs = append(errs, fmt.Errorf("запись %d: %w", i+1, err))
			continue
		}
		drafts = append(drafts, d)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return drafts, nil
}
