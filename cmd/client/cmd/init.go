package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"swimlog/cmd/client/cmd/auth"
	"swimlog/cmd/client/cmd/record"
	"swimlog/cmd/client/cmd/types"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Инициализировать клиент swimlog",
	Long: `Команда init выполняет первоначальную настройку клиента:
	1. Создаёт директорию с локальными данными
	2. Записывает файл конфигурации с текущими настройками
	3. Показывает состояние сессии

Адрес API можно задать флагом --api, он сохранится в конфигурации.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}
		cfg := app.Config()
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "=== Инициализация swimlog ===")
		if err := cfg.Save(forceInit); err != nil {
			return fmt.Errorf("%w (используйте --force для перезаписи)", err)
		}

		fmt.Fprintf(out, "✓ Конфигурация: %s\n", cfg.ConfigFile)
		fmt.Fprintf(out, "✓ Локальные данные: %s\n", cfg.DataPath)
		fmt.Fprintf(out, "✓ API: %s\n", cfg.APIBaseURL)

		if u, err := app.CurrentUser(); err == nil {
			fmt.Fprintf(out, "Вы вошли как %s\n", u.Email)
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Что дальше:")
		fmt.Fprintln(out, "1. Зарегистрируйтесь: swimlog auth register")
		fmt.Fprintln(out, "2. Войдите в систему: swimlog auth login")
		fmt.Fprintln(out, "3. Запишите первый заплыв: swimlog record create")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "перезаписать существующий файл конфигурации")
	rootCmd.AddCommand(initCmd)

	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.VerifyCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.WhoamiCmd)
	auth.AuthCmd.AddCommand(auth.ProfileCmd)

	rootCmd.AddCommand(record.RecordCmd)
	record.RecordCmd.AddCommand(record.ListCmd)
	record.RecordCmd.AddCommand(record.GetCmd)
	record.RecordCmd.AddCommand(record.CreateCmd)
	record.RecordCmd.AddCommand(record.EditCmd)
	record.RecordCmd.AddCommand(record.DeleteCmd)
	record.RecordCmd.AddCommand(record.BulkCmd)
	record.RecordCmd.AddCommand(record.OCRCmd)

	rootCmd.AddCommand(record.BestsCmd)
}
