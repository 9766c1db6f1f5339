package record

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"swimlog/cmd/client/cmd/types"
)

var OCRCmd = &cobra.Command{
	Use:   "ocr <image>",
	Short: "Распознать времена кругов со снимка",
	Long: `Отправляет снимок табло или секундомера на распознавание и выводит
времена в виде MM:SS.ss. Фрагменты, не похожие на время, отбрасываются.

Чтобы сразу записать заплыв, используйте: swimlog record create --ocr <image>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("ошибка открытия снимка: %w", err)
		}
		defer file.Close()

		accepted, dropped, err := app.RecognizeLaps(cmd.Context(), filepath.Base(args[0]), file)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if types.JSONOutput(cmd.Context()) {
			return types.PrintJSON(out, struct {
				Values  []string `json:"values"`
				Dropped int      `json:"dropped"`
			}{accepted, dropped})
		}

		if len(accepted) == 0 {
			fmt.Fprintln(out, "Времена не распознаны")
		}
		for i, t := range accepted {
			fmt.Fprintf(out, "%2d. %s\n", i+1, t)
		}
		if dropped > 0 {
			fmt.Fprintf(out, "Отброшено нераспознанных фрагментов: %d\n", dropped)
		}
		return nil
	},
}
