package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"swimlog/cmd/client/cmd/prompt"
	"swimlog/cmd/client/cmd/types"
	"swimlog/internal/domain/user"
)

var (
	profileName  string
	profileEmail string
)

var ProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Изменить имя и почту",
	Long: `Редактирование профиля.

Незаданные флагами поля запрашиваются, Enter оставляет текущее значение.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}
		current, err := app.CurrentUser()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		p := prompt.New(out)

		req := user.ProfileRequest{Name: profileName, Email: profileEmail}
		if !cmd.Flags().Changed("name") {
			if req.Name, err = p.Line("Имя", current.Name); err != nil {
				return err
			}
		}
		if !cmd.Flags().Changed("email") {
			if req.Email, err = p.Line("Email", current.Email); err != nil {
				return err
			}
		}

		u, err := app.UpdateProfile(cmd.Context(), req)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "✅ Профиль сохранён")
		printUser(out, u)
		return nil
	},
}

func init() {
	ProfileCmd.Flags().StringVar(&profileName, "name", "", "новое имя")
	ProfileCmd.Flags().StringVar(&profileEmail, "email", "", "новый адрес почты")
}
