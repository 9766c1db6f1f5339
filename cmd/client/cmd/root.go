package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"swimlog/cmd/client/cmd/types"
	"swimlog/internal/app/client"
	"swimlog/internal/app/client/config"
	"swimlog/internal/utils/logger"
)

var (
	cfgFile    string
	apiURL     string
	debug      bool
	jsonOutput bool
	app        *client.App
)

var rootCmd = &cobra.Command{
	Use:   "swimlog",
	Short: "swimlog - дневник тренировок по плаванию",
	Long: `swimlog - клиент дневника тренировок по плаванию.

Записывайте заплывы с временем каждого круга, смотрите лучшие результаты
по стилям и дистанциям и выгружайте таблицу рекордов в PDF или Excel.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if app != nil {
		if cerr := app.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Ошибка закрытия хранилища: %v\n", cerr)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.Options{
		ConfigFile: cfgFile,
		APIBaseURL: apiURL,
		Debug:      debug,
	})
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	log := logger.NewWithLevel(cfg.Env, cfg.LogLevel)

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	ctx := context.WithValue(cmd.Context(), types.ClientAppKey, app)
	ctx = context.WithValue(ctx, types.JSONOutputKey, jsonOutput)
	cmd.SetContext(ctx)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл (по умолчанию ~/.swimlog/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "базовый URL API")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
}
