// Package upload - заглушка распознавания табло. Вместо OCR сервер читает
// загруженный файл как текст и отдаёт найденные в нём токены.
package upload

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/exp/slog"
)

// Response - тело ответа POST /upload.
type Response struct {
	Values []string `json:"values"`
}

type Handler struct {
	defaults []string
	maxBytes int64
	log      *slog.Logger
}

// NewHandler создаёт хендлер. defaults отдаются, если в файле не нашлось ни одного токена.
func NewHandler(defaults []string, maxBytes int64, log *slog.Logger) *Handler {
	return &Handler{
		defaults: defaults,
		maxBytes: maxBytes,
		log:      log.With(slog.String("component", "upload_handler")),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	values, err := Tokens(file)
	if err != nil {
		h.log.Error("read upload", "error", err)
		writeError(w, http.StatusBadRequest, "cannot read file")
		return
	}
	if len(values) == 0 {
		values = append([]string{}, h.defaults...)
	}

	h.log.Debug("upload recognized", "filename", header.Filename, "tokens", len(values))
	writeJSON(w, http.StatusOK, Response{Values: values})
}

// Tokens разбивает текст на токены по пробелам и переводам строк, порядок сохраняется.
func Tokens(r io.Reader) ([]string, error) {
	values := make([]string, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		values = append(values, strings.Fields(scanner.Text())...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return values, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
