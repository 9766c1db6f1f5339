// Package types хранит ключи контекста, общие для команд клиента.
package types

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"swimlog/internal/app/client"
)

type contextKey string

const (
	ClientAppKey  contextKey = "app"
	JSONOutputKey contextKey = "json"
)

var ErrNoApp = errors.New("приложение не инициализировано")

// App достаёт приложение, положенное в контекст корневой командой.
func App(ctx context.Context) (*client.App, error) {
	app, ok := ctx.Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, ErrNoApp
	}
	return app, nil
}

// JSONOutput сообщает, что задан глобальный флаг --json.
func JSONOutput(ctx context.Context) bool {
	v, _ := ctx.Value(JSONOutputKey).(bool)
	return v
}

// PrintJSON выводит значение с отступами.
func PrintJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
