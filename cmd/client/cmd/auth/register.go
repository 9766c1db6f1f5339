package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"swimlog/cmd/client/cmd/prompt"
	"swimlog/cmd/client/cmd/types"
	"swimlog/internal/domain/user"
)

var (
	registerName  string
	registerEmail string
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	Long: `Регистрация нового пользователя.

После регистрации на почту придёт письмо со ссылкой подтверждения.
Токен из ссылки передайте команде: swimlog auth verify <token>`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		p := prompt.New(out)

		fmt.Fprintln(out, "=== Регистрация нового пользователя ===")
		fmt.Fprintln(out)

		req := user.RegisterRequest{Name: registerName, Email: registerEmail}
		if req.Name == "" {
			if req.Name, err = p.Required("Имя"); err != nil {
				return err
			}
		}
		if req.Email == "" {
			if req.Email, err = p.Required("Email"); err != nil {
				return err
			}
		}

		if req.Password, err = p.Password("Пароль"); err != nil {
			return err
		}
		confirm, err := p.Password("Повторите пароль")
		if err != nil {
			return err
		}
		if req.Password != confirm {
			return fmt.Errorf("пароли не совпадают")
		}

		fmt.Fprintln(out, "Регистрация...")
		if err := app.Register(cmd.Context(), req); err != nil {
			return err
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "✅ Регистрация успешно завершена!")
		fmt.Fprintln(out, "Подтвердите почту по ссылке из письма или командой: swimlog auth verify <token>")
		fmt.Fprintln(out, "Затем войдите в систему: swimlog auth login")
		return nil
	},
}

func init() {
	RegisterCmd.Flags().StringVar(&registerName, "name", "", "имя пловца")
	RegisterCmd.Flags().StringVar(&registerEmail, "email", "", "адрес почты")
}
