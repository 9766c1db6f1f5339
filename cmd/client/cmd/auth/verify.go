package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"swimlog/cmd/client/cmd/types"
)

var VerifyCmd = &cobra.Command{
	Use:   "verify <token>",
	Short: "Подтвердить адрес почты",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}
		if err := app.VerifyEmail(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Почта подтверждена. Теперь можно войти: swimlog auth login")
		return nil
	},
}
