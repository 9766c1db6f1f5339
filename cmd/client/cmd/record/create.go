package record

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"swimlog/cmd/client/cmd/prompt"
	"swimlog/cmd/client/cmd/types"
	"swimlog/internal/app/client"
	"swimlog/internal/domain/record"
)

// draftFlags - флаги, общие для create и edit.
type draftFlags struct {
	style    string
	distance string
	course   string
	date     string
	memo     string
	laps     []string
	ocr      string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.style, "style", "s", "", "стиль (free, back, breast, fly, im или 1-5)")
	cmd.Flags().StringVarP(&f.distance, "distance", "d", "", "дистанция в метрах (50, 100, 200, 400, 800, 1500)")
	cmd.Flags().StringVarP(&f.course, "course", "c", "", "бассейн (short, long)")
	cmd.Flags().StringVar(&f.date, "date", "", "дата заплыва YYYY-MM-DD")
	cmd.Flags().StringVarP(&f.memo, "memo", "m", "", "заметка")
	cmd.Flags().StringArrayVarP(&f.laps, "lap", "l", nil, "накопительное время круга MM:SS.ss, повторяется по числу кругов")
	cmd.Flags().StringVar(&f.ocr, "ocr", "", "снимок табло: распознать времена кругов")
	cmd.MarkFlagsMutuallyExclusive("lap", "ocr")
}

// apply переносит в черновик только явно заданные флаги.
// Дистанция применяется до кругов, чтобы --lap заменял уже подогнанный список.
func (f *draftFlags) apply(changed func(string) bool, d *record.Draft) error {
	if changed("style") {
		s, err := record.ParseStyle(f.style)
		if err != nil {
			return err
		}
		d.StyleID = s
	}
	if changed("course") {
		short, err := record.ParseCourse(f.course)
		if err != nil {
			return err
		}
		d.IsShortCourse = short
	}
	if changed("date") {
		date, err := record.ParseDate(f.date)
		if err != nil {
			return fmt.Errorf("неверная дата %q: ожидается YYYY-MM-DD", f.date)
		}
		d.Date = date
	}
	if changed("memo") {
		d.Memo = f.memo
	}
	if changed("distance") {
		dist, err := record.ParseDistance(f.distance)
		if err != nil {
			return err
		}
		d.SetDistance(dist)
	}
	if changed("lap") {
		d.LapTimes = append([]string(nil), f.laps...)
	}
	return nil
}

// askDraft спрашивает поля, не заданные флагами. Enter оставляет текущее значение.
func askDraft(p *prompt.Prompter, changed func(string) bool, d *record.Draft, askLaps bool) error {
	if !changed("style") {
		v, err := p.Line("Стиль (free, back, breast, fly, im)", strconv.Itoa(int(d.StyleID)))
		if err != nil {
			return err
		}
		if d.StyleID, err = record.ParseStyle(v); err != nil {
			return err
		}
	}
	if !changed("distance") {
		v, err := p.Line("Дистанция, м", strconv.Itoa(d.DistanceID.Meters()))
		if err != nil {
			return err
		}
		dist, err := record.ParseDistance(v)
		if err != nil {
			return err
		}
		if dist != d.DistanceID {
			d.SetDistance(dist)
		}
	}
	if !changed("course") {
		def := "long"
		if d.IsShortCourse {
			def = "short"
		}
		v, err := p.Line("Бассейн (short, long)", def)
		if err != nil {
			return err
		}
		if d.IsShortCourse, err = record.ParseCourse(v); err != nil {
			return err
		}
	}
	if !changed("date") {
		v, err := p.Line("Дата", d.Date.String())
		if err != nil {
			return err
		}
		if d.Date, err = record.ParseDate(v); err != nil {
			return fmt.Errorf("неверная дата %q: ожидается YYYY-MM-DD", v)
		}
	}
	if !changed("memo") {
		v, err := p.Line("Заметка", d.Memo)
		if err != nil {
			return err
		}
		d.Memo = v
	}

	if !askLaps {
		return nil
	}
	d.LapTimes = record.ReconcileLaps(d.LapTimes, record.ExpectedLapCount(d.DistanceID))
	for i := range d.LapTimes {
		v, err := p.Line(fmt.Sprintf("Круг %d (%dm)", i+1, (i+1)*record.LapLength), d.LapTimes[i])
		if err != nil {
			return err
		}
		if err := d.SetLap(i, v); err != nil {
			return err
		}
	}
	return nil
}

// recognize заменяет круги черновика распознанными со снимка
// и подгоняет их число под дистанцию.
func recognize(cmd *cobra.Command, app *client.App, path string, d *record.Draft) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("ошибка открытия снимка: %w", err)
	}
	defer file.Close()

	accepted, dropped, err := app.RecognizeLaps(cmd.Context(), filepath.Base(path), file)
	if err != nil {
		return err
	}

	out := cmd.ErrOrStderr()
	fmt.Fprintf(out, "Распознано времён: %d\n", len(accepted))
	if dropped > 0 {
		fmt.Fprintf(out, "Отброшено нераспознанных фрагментов: %d\n", dropped)
	}

	d.ApplyOCR(accepted)
	if want := record.ExpectedLapCount(d.DistanceID); len(d.LapTimes) != want {
		fmt.Fprintf(out, "⚠️  Для дистанции %s нужно кругов: %d, распознано: %d\n", d.DistanceID.DisplayName(), want, len(d.LapTimes))
		d.LapTimes = record.ReconcileLaps(d.LapTimes, want)
	}
	return nil
}

// runForm собирает черновик из флагов, снимка и ответов и отправляет его.
func runForm(cmd *cobra.Command, flags *draftFlags, recordID int, d *record.Draft) error {
	app, err := types.App(cmd.Context())
	if err != nil {
		return err
	}
	changed := cmd.Flags().Changed

	if err := flags.apply(changed, d); err != nil {
		return err
	}
	if flags.ocr != "" {
		if err := recognize(cmd, app, flags.ocr, d); err != nil {
			return err
		}
	}

	p := prompt.New(cmd.ErrOrStderr())
	if p.Interactive() {
		askLaps := !changed("lap")
		if err := askDraft(p, changed, d, askLaps); err != nil {
			return err
		}
	}

	if err := d.Validate(); err != nil {
		return err
	}

	e, err := app.NewForm(recordID, d).Submit(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if types.JSONOutput(cmd.Context()) {
		return types.PrintJSON(out, e)
	}
	printSaved(out, e, recordID == 0)
	return nil
}

func printSaved(w io.Writer, e record.Entry, created bool) {
	action := "обновлена"
	if created {
		action = "создана"
	}
	r := e.Record
	fmt.Fprintf(w, "✅ Запись #%d %s: %s %s, %s, %s\n",
		r.ID, action, r.StyleID.DisplayName(), r.DistanceID.DisplayName(),
		record.CourseName(r.IsShortCourse), record.TotalTimeString(e.LapTimes()))
	fmt.Fprint(w, formatLaps(e.LapTimes()))
}

var createFlags draftFlags

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Записать новый заплыв",
	Long: `Создание записи о заплыве.

Времена кругов накопительные: время от старта до отметки круга.
Их можно задать флагами --lap, распознать со снимка табло (--ocr)
или ввести по очереди. Поля, не заданные флагами, в терминале
запрашиваются с подстановкой значений по умолчанию.

Пример:
  swimlog record create -s free -d 100 -c short -l 00:31.20 -l 01:05.40`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runForm(cmd, &createFlags, 0, record.NewDraft(time.Now()))
	},
}

var editFlags draftFlags

var EditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Изменить заплыв",
	Long: `Изменение записи. Незаданные флагами поля сохраняют текущие значения,
в терминале их можно поправить в ответ на вопросы.

При смене дистанции список кругов дополняется нулевыми временами
или обрезается с конца.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := app.GetRecord(cmd.Context(), id)
		if err != nil {
			return err
		}
		return runForm(cmd, &editFlags, id, record.DraftFromEntry(e))
	},
}

func init() {
	createFlags.register(CreateCmd)
	editFlags.register(EditCmd)
}
