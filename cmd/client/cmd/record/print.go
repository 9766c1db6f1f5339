package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"

	"swimlog/cmd/client/cmd/types"
	"swimlog/internal/app/client"
	"swimlog/internal/domain/best"
	"swimlog/internal/domain/laptime"
	"swimlog/internal/domain/record"
)

const (
	formatSimple = "simple"
	formatTable  = "table"
	formatJSON   = "json"
	formatCSV    = "csv"
)

var bestMark = color.New(color.FgYellow, color.Bold).SprintFunc()

func marker(isBest bool) string {
	if !isBest {
		return ""
	}
	return bestMark("★")
}

// listItem - строка списка в JSON.
type listItem struct {
	record.Entry
	Total  string `json:"total"`
	IsBest bool   `json:"is_best"`
}

func printList(w io.Writer, entries []record.Entry, bests best.Map, format string) error {
	switch format {
	case formatJSON:
		items := make([]listItem, len(entries))
		for i, e := range entries {
			items[i] = listItem{Entry: e, Total: record.TotalTimeString(e.LapTimes()), IsBest: best.IsBest(e, bests)}
		}
		return types.PrintJSON(w, items)
	case formatTable:
		return printListTable(w, entries, bests)
	case formatCSV:
		return printListCSV(w, entries, bests)
	case formatSimple, "":
		return printListSimple(w, entries, bests)
	default:
		return fmt.Errorf("неизвестный формат вывода %q", format)
	}
}

func printListSimple(w io.Writer, entries []record.Entry, bests best.Map) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Записи не найдены")
		return nil
	}

	fmt.Fprintf(w, "Найдено записей: %d\n\n", len(entries))
	for i, e := range entries {
		r := e.Record
		fmt.Fprintf(w, "%d. %s %s, %s  %s %s\n",
			i+1,
			r.StyleID.DisplayName(),
			r.DistanceID.DisplayName(),
			record.CourseName(r.IsShortCourse),
			record.TotalTimeString(e.LapTimes()),
			marker(best.IsBest(e, bests)),
		)
		fmt.Fprintf(w, "   ID: %d | Дата: %s", r.ID, r.Date)
		if r.Memo != "" {
			fmt.Fprintf(w, " | %s", truncate(r.Memo, 40))
		}
		fmt.Fprintln(w)
	}
	return nil
}

func printListTable(w io.Writer, entries []record.Entry, bests best.Map) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Записи не найдены")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tДата\tСтиль\tДистанция\tБассейн\tВремя\tЛучшее\tЗаметка\t\n")
	fmt.Fprintf(tw, "---\t---\t---\t---\t---\t---\t---\t---\t\n")
	for _, e := range entries {
		r := e.Record
		mark := ""
		if best.IsBest(e, bests) {
			mark = "★"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.ID,
			r.Date,
			r.StyleID.DisplayName(),
			r.DistanceID.DisplayName(),
			record.CourseName(r.IsShortCourse),
			record.TotalTimeString(e.LapTimes()),
			mark,
			truncate(r.Memo, 30),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nВсего записей: %d\n", len(entries))
	return nil
}

func printListCSV(w io.Writer, entries []record.Entry, bests best.Map) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "date", "style_id", "distance_id", "is_short_course", "total", "is_best", "memo"})
	for _, e := range entries {
		r := e.Record
		_ = cw.Write([]string{
			strconv.Itoa(r.ID),
			r.Date.String(),
			strconv.Itoa(int(r.StyleID)),
			strconv.Itoa(int(r.DistanceID)),
			strconv.FormatBool(r.IsShortCourse),
			record.TotalTimeString(e.LapTimes()),
			strconv.FormatBool(best.IsBest(e, bests)),
			r.Memo,
		})
	}
	cw.Flush()
	return cw.Error()
}

// lapRow - строка таблицы кругов: отметка, накопительное время, отрезок и сравнение с лучшим.
type lapRow struct {
	Meters     int    `json:"meters"`
	Cumulative string `json:"cumulative"`
	Split      string `json:"split,omitempty"`
	Best       string `json:"best,omitempty"`
	Delta      string `json:"delta,omitempty"`
}

func lapRows(d client.Detail) []lapRow {
	laps := d.Entry.LapTimes()
	rows := make([]lapRow, len(laps))
	for i, t := range laps {
		rows[i] = lapRow{Meters: (i + 1) * record.LapLength, Cumulative: t}
		if split, ok := record.LapSplit(laps, i); ok {
			rows[i].Split = split
		}
		if d.HasBest && !d.IsBest && i < len(d.Passings) {
			rows[i].Best = d.Passings[i].Best
			rows[i].Delta = d.Passings[i].DeltaString()
		}
	}
	return rows
}

func printDetail(w io.Writer, d client.Detail, asJSON bool) error {
	if asJSON {
		out := struct {
			Entry  record.Entry `json:"entry"`
			Total  string       `json:"total"`
			IsBest bool         `json:"is_best"`
			BestID int          `json:"best_id,omitempty"`
			Laps   []lapRow     `json:"laps"`
		}{
			Entry:  d.Entry,
			Total:  record.TotalTimeString(d.Entry.LapTimes()),
			IsBest: d.IsBest,
			Laps:   lapRows(d),
		}
		if d.HasBest {
			out.BestID = d.Best.Record.ID
		}
		return types.PrintJSON(w, out)
	}

	r := d.Entry.Record
	fmt.Fprintf(w, "ID:          %d\n", r.ID)
	fmt.Fprintf(w, "Дата:        %s\n", r.Date)
	fmt.Fprintf(w, "Стиль:       %s\n", r.StyleID.DisplayName())
	fmt.Fprintf(w, "Дистанция:   %s\n", r.DistanceID.DisplayName())
	fmt.Fprintf(w, "Бассейн:     %s\n", record.CourseName(r.IsShortCourse))
	fmt.Fprintf(w, "Итог:        %s %s\n", record.TotalTimeString(d.Entry.LapTimes()), marker(d.IsBest))
	if r.Memo != "" {
		fmt.Fprintf(w, "Заметка:     %s\n", r.Memo)
	}
	switch {
	case d.IsBest:
		fmt.Fprintln(w, "Это лучший результат в группе")
	case d.HasBest:
		fmt.Fprintf(w, "Лучший:      #%d от %s, %s\n",
			d.Best.Record.ID, d.Best.Record.Date, record.TotalTimeString(d.Best.LapTimes()))
	}
	fmt.Fprintln(w)

	rows := lapRows(d)
	if len(rows) == 0 {
		fmt.Fprintln(w, "Круги не указаны")
		return nil
	}

	compare := d.HasBest && !d.IsBest
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if compare {
		fmt.Fprintf(tw, "Отметка\tВремя\tОтрезок\tЛучший\tРазница\t\n")
	} else {
		fmt.Fprintf(tw, "Отметка\tВремя\tОтрезок\t\n")
	}
	for _, row := range rows {
		split := row.Split
		if split == "" {
			split = "-"
		}
		if compare {
			fmt.Fprintf(tw, "%dm\t%s\t%s\t%s\t%s\t\n", row.Meters, row.Cumulative, split, row.Best, row.Delta)
		} else {
			fmt.Fprintf(tw, "%dm\t%s\t%s\t\n", row.Meters, row.Cumulative, split)
		}
	}
	return tw.Flush()
}

func printBests(w io.Writer, sections []best.Section, asJSON bool) error {
	if asJSON {
		type cell struct {
			Style    string `json:"style"`
			Distance string `json:"distance"`
			Time     string `json:"time"`
			RecordID int    `json:"record_id,omitempty"`
			Date     string `json:"date,omitempty"`
		}
		cells := make([]cell, 0)
		for _, sec := range sections {
			for _, c := range sec.Cells {
				item := cell{Style: sec.Style.DisplayName(), Distance: c.Distance.DisplayName(), Time: c.Total()}
				if c.HasRecord() {
					item.RecordID = c.Entry.Record.ID
					item.Date = c.Entry.Record.Date.String()
				}
				cells = append(cells, item)
			}
		}
		return types.PrintJSON(w, cells)
	}

	for i, sec := range sections {
		if i == 0 {
			fmt.Fprintf(w, "Лучшие результаты, бассейн %s\n\n", record.CourseName(sec.IsShortCourse))
		}
		fmt.Fprintf(w, "%s (%d/%d)\n", sec.Style.DisplayName(), sec.Filled(), len(sec.Cells))
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, c := range sec.Cells {
			date := ""
			if c.HasRecord() {
				date = fmt.Sprintf("%s  #%d", c.Entry.Record.Date, c.Entry.Record.ID)
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t\n", c.Distance.DisplayName(), c.Total(), date)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}

func printBulkResult(w io.Writer, r client.BulkResult) {
	if r.Success {
		fmt.Fprintf(w, "  [%d] ✓ %s\n", r.Index+1, r.Message)
		return
	}
	fmt.Fprintf(w, "  [%d] ✗ %s\n", r.Index+1, r.Message)
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}

// formatLaps выводит времена кругов строками по четыре.
func formatLaps(laps []string) string {
	var out string
	for _, group := range record.GroupLaps(laps, 4) {
		line := ""
		for _, t := range group {
			if line != "" {
				line += "  "
			}
			if laptime.Valid(laptime.Parse(t)) {
				line += t
			} else {
				line += laptime.Placeholder
			}
		}
		out += "  " + line + "\n"
	}
	return out
}
