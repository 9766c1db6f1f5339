package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"swimlog/cmd/client/cmd/types"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из системы",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}
		if !app.IsAuthenticated() {
			fmt.Fprintln(cmd.OutOrStdout(), "Вы не вошли в систему")
			return nil
		}
		if err := app.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Сессия завершена")
		return nil
	},
}
