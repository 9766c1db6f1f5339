package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"swimlog/internal/domain/best"
)

// Размеры в миллиметрах, страница A4 книжная.
const (
	pageMargin    = 10.0
	titleHeight   = 10.0
	subtitleLine  = 6.0
	headingHeight = 8.0
	headerHeight  = 7.0
	rowHeight     = 7.0
	sectionGap    = 4.0
)

var columnWidths = []float64{40, 50, 50, 50}

// PDF рисует таблицу лучших времён: по секции на стиль сверху вниз.
// Секция, которая не помещается в остаток страницы, целиком переносится на следующую.
// Встроенные шрифты PDF не содержат кириллицы, поэтому подписи латиницей.
func PDF(w io.Writer, sections []best.Section, opts Options) error {
	pdf, err := render(sections, opts)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("запись PDF: %w", err)
	}
	return nil
}

func render(sections []best.Section, opts Options) (*fpdf.Fpdf, error) {
	opts = opts.withDefaults()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.SetTitle(opts.Title, false)
	pdf.SetCreator("swimlog", false)
	pdf.SetCreationDate(opts.GeneratedAt)
	pdf.AddPage()

	_, pageHeight := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, titleHeight, latin(opts.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if len(sections) > 0 {
		pdf.CellFormat(0, subtitleLine, courseLatin(sections[0].IsShortCourse), "", 1, "L", false, 0, "")
	}
	if opts.Swimmer != "" {
		pdf.CellFormat(0, subtitleLine, "Swimmer: "+latin(opts.Swimmer), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, subtitleLine, "Generated: "+opts.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(sectionGap)

	heights := make([]float64, len(sections))
	for i, sec := range sections {
		heights[i] = sectionHeight(sec)
	}
	pages := Paginate(heights, pdf.GetY(), pageMargin, pageHeight-pageMargin)

	current := 0
	for i, sec := range sections {
		if pages[i] != current {
			pdf.AddPage()
			current = pages[i]
		}
		drawSection(pdf, sec)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("формирование PDF: %w", err)
	}
	return pdf, nil
}

// Paginate возвращает номер страницы (с нуля) для каждой секции.
// firstY - позиция первой секции на первой странице, top и bottom - границы области печати.
// Секция выше целой страницы всё равно занимает отдельную страницу.
func Paginate(heights []float64, firstY, top, bottom float64) []int {
	pages := make([]int, len(heights))
	y, page := firstY, 0
	for i, h := range heights {
		if y+h > bottom && y > top {
			page++
			y = top
		}
		pages[i] = page
		y += h
	}
	return pages
}

func sectionHeight(sec best.Section) float64 {
	return headingHeight + headerHeight + float64(len(sec.Cells))*rowHeight + sectionGap
}

func drawSection(pdf *fpdf.Fpdf, sec best.Section) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(28, 57, 158)
	pdf.CellFormat(0, headingHeight, fmt.Sprintf("%s  (%d/%d)", sec.Style.LatinName(), sec.Filled(), len(sec.Cells)),
		"", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFillColor(28, 57, 158)
	for i, title := range []string{"Distance", "Time", "Date", "Record"} {
		pdf.CellFormat(columnWidths[i], headerHeight, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, c := range sec.Cells {
		date, id := "-", "no record"
		fill := false
		if c.HasRecord() {
			date = c.Entry.Record.Date.String()
			id = fmt.Sprintf("#%d", c.Entry.Record.ID)
		} else {
			pdf.SetFillColor(235, 235, 235)
			fill = true
		}
		pdf.CellFormat(columnWidths[0], rowHeight, c.Distance.DisplayName(), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(columnWidths[1], rowHeight, c.Total(), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(columnWidths[2], rowHeight, date, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(columnWidths[3], rowHeight, id, "1", 0, "C", fill, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(sectionGap)
}

// latin заменяет символы вне ASCII: встроенные шрифты их не отображают.
func latin(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 126 {
			return '?'
		}
		return r
	}, s)
}
