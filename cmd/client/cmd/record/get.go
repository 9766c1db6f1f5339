package record

import (
	"github.com/spf13/cobra"

	"swimlog/cmd/client/cmd/types"
)

var GetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Просмотреть заплыв",
	Long: `Просмотр заплыва с временем на каждой отметке.

Если в группе есть лучший результат, рядом с кругами выводится
его время и разница на каждой отметке.`,
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

		d, err := app.RecordDetail(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printDetail(cmd.OutOrStdout(), d, types.JSONOutput(cmd.Context()))
	},
}
