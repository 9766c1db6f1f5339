package auth

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"swimlog/cmd/client/cmd/types"
	"swimlog/internal/domain/user"
)

var WhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Показать текущего пользователя",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}
		u, err := app.CurrentUser()
		if err != nil {
			return err
		}
		if types.JSONOutput(cmd.Context()) {
			u.Token = ""
			return types.PrintJSON(cmd.OutOrStdout(), u)
		}
		printUser(cmd.OutOrStdout(), u)
		return nil
	},
}

func printUser(w io.Writer, u user.User) {
	verified := "нет"
	if u.Verified {
		verified = "да"
	}
	fmt.Fprintf(w, "Имя:          %s\n", u.Name)
	fmt.Fprintf(w, "Email:        %s\n", u.Email)
	fmt.Fprintf(w, "UUID:         %s\n", u.UUID)
	fmt.Fprintf(w, "Подтверждён:  %s\n", verified)
	if !u.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Создан:       %s\n", u.CreatedAt.Format("2006-01-02"))
	}
}
