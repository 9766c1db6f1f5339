package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"swimlog/internal/domain/best"
	"swimlog/internal/domain/record"
)

const sheetName = "Bests"

var xlsxHeader = []string{"Стиль", "Дистанция", "Бассейн", "Время", "Дата", "Заметка"}

// XLSX пишет книгу с одним листом: строка на каждую клетку стиль x дистанция.
func XLSX(w io.Writer, sections []best.Section, opts Options) error {
	f, err := workbook(sections, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("запись XLSX: %w", err)
	}
	return nil
}

func workbook(sections []best.Section, opts Options) (*excelize.File, error) {
	opts = opts.withDefaults()
	f := excelize.NewFile()

	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, fmt.Errorf("создание листа: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("удаление листа: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1C399E"}},
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("стиль заголовка: %w", err)
	}
	emptyStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#EBEBEB"}},
	})
	if err != nil {
		return nil, fmt.Errorf("стиль пустой строки: %w", err)
	}

	set := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheetName, cell, v)
	}

	for i, h := range xlsxHeader {
		if err := set(i+1, 1, h); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(xlsxHeader), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return nil, err
	}

	row := 2
	for _, sec := range sections {
		for _, c := range sec.Cells {
			values := []any{sec.Style.DisplayName(), c.Distance.DisplayName(), record.CourseName(sec.IsShortCourse), c.Total(), "", ""}
			if c.HasRecord() {
				values[4] = c.Entry.Record.Date.String()
				values[5] = c.Entry.Record.Memo
			}
			for i, v := range values {
				if err := set(i+1, row, v); err != nil {
					return nil, err
				}
			}
			if !c.HasRecord() {
				from, _ := excelize.CoordinatesToCellName(1, row)
				to, _ := excelize.CoordinatesToCellName(len(xlsxHeader), row)
				if err := f.SetCellStyle(sheetName, from, to, emptyStyle); err != nil {
					return nil, err
				}
			}
			row++
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 18)
	_ = f.SetColWidth(sheetName, "B", "E", 12)
	_ = f.SetColWidth(sheetName, "F", "F", 40)

	if opts.Swimmer != "" {
		_ = f.SetDocProps(&excelize.DocProperties{
			Title:   opts.Title,
			Creator: opts.Swimmer,
			Created: opts.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return f, nil
}
