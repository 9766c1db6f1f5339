package record

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"swimlog/cmd/client/cmd/types"
	"swimlog/internal/app/client/export"
	"swimlog/internal/domain/best"
	"swimlog/internal/domain/record"
)

var (
	bestsLong   bool
	bestsStyles []string
	bestsPDF    string
	bestsXLSX   string
)

var BestsCmd = &cobra.Command{
	Use:   "bests",
	Short: "Лучшие результаты",
	Long: `Таблица лучших времён по стилям и дистанциям для одного типа бассейна.

Флаги --pdf и --xlsx сохраняют таблицу в файл.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		styles := make([]record.Style, 0, len(bestsStyles))
		for _, v := range bestsStyles {
			s, err := record.ParseStyle(v)
			if err != nil {
				return err
			}
			styles = append(styles, s)
		}

		sections, err := app.Bests(cmd.Context(), !bestsLong)
		if err != nil {
			return err
		}
		sections = export.Filter(sections, styles...)

		out := cmd.OutOrStdout()
		if bestsPDF == "" && bestsXLSX == "" {
			return printBests(out, sections, types.JSONOutput(cmd.Context()))
		}

		opts := export.Options{GeneratedAt: time.Now()}
		if u, err := app.CurrentUser(); err == nil {
			opts.Swimmer = u.Email
		}
		if bestsPDF != "" {
			if err := writeFile(bestsPDF, sections, opts, export.PDF); err != nil {
				return err
			}
			fmt.Fprintf(out, "PDF сохранён: %s\n", bestsPDF)
		}
		if bestsXLSX != "" {
			if err := writeFile(bestsXLSX, sections, opts, export.XLSX); err != nil {
				return err
			}
			fmt.Fprintf(out, "XLSX сохранён: %s\n", bestsXLSX)
		}
		return nil
	},
}

type renderFunc func(io.Writer, []best.Section, export.Options) error

func writeFile(path string, sections []best.Section, opts export.Options, render renderFunc) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ошибка создания файла: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("ошибка записи файла: %w", cerr)
		}
	}()
	return render(f, sections, opts)
}

func init() {
	BestsCmd.Flags().BoolVar(&bestsLong, "long", false, "длинная вода (50м) вместо короткой")
	BestsCmd.Flags().StringSliceVarP(&bestsStyles, "style", "s", nil, "только выбранные стили")
	BestsCmd.Flags().StringVar(&bestsPDF, "pdf", "", "сохранить таблицу в PDF")
	BestsCmd.Flags().StringVar(&bestsXLSX, "xlsx", "", "сохранить таблицу в XLSX")
}
