package record

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"swimlog/cmd/client/cmd/types"
	"swimlog/internal/app/client"
)

var BulkCmd = &cobra.Command{
	Use:   "bulk <file>",
	Short: "Загрузить несколько заплывов из файла",
	Long: `Пакетное создание записей из YAML или JSON файла со списком заплывов.

Записи создаются по очереди, ошибка одной не останавливает остальные.
Пример файла:

  - style: free
    distance: 100
    course: short
    date: 2024-05-01
    memo: контрольный
    laps: ["00:31.20", "01:05.40"]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("ошибка открытия файла: %w", err)
		}
		defer file.Close()

		drafts, err := client.LoadBulkFile(file)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		asJSON := types.JSONOutput(cmd.Context())
		if !asJSON {
			fmt.Fprintf(out, "Создание записей: %d\n", len(drafts))
		}

		results, err := app.BulkCreate(cmd.Context(), drafts, func(r client.BulkResult) {
			if !asJSON {
				printBulkResult(out, r)
			}
		})
		if err != nil {
			return err
		}

		if asJSON {
			type item struct {
				Index    int    `json:"index"`
				Success  bool   `json:"success"`
				Message  string `json:"message"`
				RecordID int    `json:"record_id,omitempty"`
			}
			items := make([]item, len(results))
			for i, r := range results {
				items[i] = item{Index: r.Index, Success: r.Success, Message: r.Message, RecordID: r.Entry.Record.ID}
			}
			if err := types.PrintJSON(out, items); err != nil {
				return err
			}
		}

		if !results.AllSucceeded() {
			return fmt.Errorf("не создано записей: %d из %d", results.Failed(), len(results))
		}
		if !asJSON {
			fmt.Fprintln(out, "✅ Все записи созданы")
		}
		return nil
	},
}
