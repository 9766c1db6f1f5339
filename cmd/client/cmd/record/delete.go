package record

import (
	"fmt"

	"github.com/spf13/cobra"

	"swimlog/cmd/client/cmd/prompt"
	"swimlog/cmd/client/cmd/types"
	"swimlog/internal/domain/record"
)

var deleteYes bool

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить заплыв",
	Long:  `Удаление записи вместе с кругами. Без --yes команда спрашивает подтверждение.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if !deleteYes {
			e, err := app.GetRecord(cmd.Context(), id)
			if err != nil {
				return err
			}
			r := e.Record
			question := fmt.Sprintf("Удалить запись #%d (%s, %s %s, %s)?",
				r.ID, r.Date, r.StyleID.DisplayName(), r.DistanceID.DisplayName(), record.TotalTimeString(e.LapTimes()))

			ok, err := prompt.New(out).Confirm(question)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Отменено")
				return nil
			}
		}

		if err := app.DeleteRecord(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(out, "Запись #%d удалена\n", id)
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "не спрашивать подтверждение")
}
