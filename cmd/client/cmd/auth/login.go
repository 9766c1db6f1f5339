package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"swimlog/cmd/client/cmd/prompt"
	"swimlog/cmd/client/cmd/types"
	"swimlog/internal/domain/user"
)

var loginEmail string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в систему",
	Long: `Аутентификация в API.

После входа профиль сохраняется в локальном кэше сессии
и используется следующими командами.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		p := prompt.New(out)

		req := user.LoginRequest{Email: loginEmail}
		if req.Email == "" {
			if req.Email, err = p.Required("Email"); err != nil {
				return err
			}
		}
		if req.Password, err = p.Password("Пароль"); err != nil {
			return err
		}

		u, err := app.Login(cmd.Context(), req)
		if err != nil {
			return err
		}

		if types.JSONOutput(cmd.Context()) {
			u.Token = ""
			return types.PrintJSON(out, u)
		}
		fmt.Fprintf(out, "✅ Добро пожаловать, %s!\n", u.Name)
		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVar(&loginEmail, "email", "", "адрес почты")
}
