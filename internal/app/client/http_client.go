package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/exp/slog"

	"swimlog/internal/app/client/config"
	"swimlog/internal/domain/record"
	"swimlog/internal/domain/user"
)

// Gateway - все обращения клиента к REST API.
type Gateway interface {
	SetToken(token string)

	Register(ctx context.Context, req user.RegisterRequest) error
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, req user.LoginRequest) (user.User, error)
	Logout(ctx context.Context) error

	GetUser(ctx context.Context, id int) (user.User, error)
	GetUserByUUID(ctx context.Context, uuid string) (user.User, error)
	UpdateUser(ctx context.Context, id int, req user.ProfileRequest) (user.User, error)
	UpdateUserByUUID(ctx context.Context, uuid string, req user.ProfileRequest) (user.User, error)

	ListRecords(ctx context.Context, userID int) ([]record.Entry, error)
	ListRecordsByUUID(ctx context.Context, uuid string) ([]record.Entry, error)
	CreateRecord(ctx context.Context, userID int, p record.Payload) (record.Entry, error)
	CreateRecordByUUID(ctx context.Context, uuid string, p record.Payload) (record.Entry, error)
	GetRecord(ctx context.Context, id int) (record.Entry, error)
	UpdateRecord(ctx context.Context, id int, p record.Payload) (record.Entry, error)
	DeleteRecord(ctx context.Context, id int) error

	UploadImage(ctx context.Context, filename string, image io.Reader) ([]string, error)
}

// APIError - ответ API со статусом 4xx/5xx.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ошибка сервера (%d): %s", e.Status, e.Message)
}

// IsStatus проверяет, что err - ответ API с указанным статусом.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

var _ Gateway = (*httpClient)(nil)

// NewHTTPClient создаёт шлюз к API. Нулевой request_timeout отключает ограничение времени.
func NewHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	client := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 2,
		},
	}

	return &httpClient{
		client:    client,
		log:       log.With("component", "api_gateway"),
		baseURL:   cfg.APIBaseURL,
		userAgent: "swimlog-cli/1.0",
	}
}

// SetToken устанавливает токен аутентификации
func (h *httpClient) SetToken(token string) {
	h.token = token
}

func (h *httpClient) Register(ctx context.Context, req user.RegisterRequest) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/users", req)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) VerifyEmail(ctx context.Context, token string) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/verify-email?token="+url.QueryEscape(token), nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// Login возвращает пользователя из ответа. Если API выдал токен, он кладётся в User.Token
// и дальше отправляется в заголовке Authorization.
func (h *httpClient) Login(ctx context.Context, req user.LoginRequest) (user.User, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/login", req)
	if err != nil {
		return user.User{}, err
	}

	var loginResp struct {
		User  user.User `json:"user"`
		Token string    `json:"token"`
	}
	if err := h.parseResponse(resp, &loginResp); err != nil {
		return user.User{}, err
	}

	u := loginResp.User
	if loginResp.Token != "" {
		u.Token = loginResp.Token
	}
	if u.Token != "" {
		h.SetToken(u.Token)
	}
	return u, nil
}

func (h *httpClient) Logout(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/logout", nil)
	if err != nil {
		return err
	}
	err = h.parseResponse(resp, nil)
	h.SetToken("")
	return err
}

func (h *httpClient) GetUser(ctx context.Context, id int) (user.User, error) {
	return h.fetchUser(ctx, http.MethodGet, "/users/"+strconv.Itoa(id), nil)
}

func (h *httpClient) GetUserByUUID(ctx context.Context, uuid string) (user.User, error) {
	return h.fetchUser(ctx, http.MethodGet, "/users/uuid/"+url.PathEscape(uuid), nil)
}

func (h *httpClient) UpdateUser(ctx context.Context, id int, req user.ProfileRequest) (user.User, error) {
	return h.fetchUser(ctx, http.MethodPut, "/users/"+strconv.Itoa(id), req)
}

func (h *httpClient) UpdateUserByUUID(ctx context.Context, uuid string, req user.ProfileRequest) (user.User, error) {
	return h.fetchUser(ctx, http.MethodPut, "/users/uuid/"+url.PathEscape(uuid), req)
}

func (h *httpClient) fetchUser(ctx context.Context, method, path string, body any) (user.User, error) {
	resp, err := h.doRequest(ctx, method, path, body)
	if err != nil {
		return user.User{}, err
	}
	var u user.User
	if err := h.parseResponse(resp, &u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (h *httpClient) ListRecords(ctx context.Context, userID int) ([]record.Entry, error) {
	return h.fetchEntries(ctx, "/records/user/"+strconv.Itoa(userID))
}

func (h *httpClient) ListRecordsByUUID(ctx context.Context, uuid string) ([]record.Entry, error) {
	return h.fetchEntries(ctx, "/records/user/uuid/"+url.PathEscape(uuid))
}

func (h *httpClient) fetchEntries(ctx context.Context, path string) ([]record.Entry, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	entries := make([]record.Entry, 0)
	if err := h.parseResponse(resp, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (h *httpClient) CreateRecord(ctx context.Context, userID int, p record.Payload) (record.Entry, error) {
	return h.fetchEntry(ctx, http.MethodPost, "/records/user/"+strconv.Itoa(userID), p)
}

func (h *httpClient) CreateRecordByUUID(ctx context.Context, uuid string, p record.Payload) (record.Entry, error) {
	return h.fetchEntry(ctx, http.MethodPost, "/records/user/uuid/"+url.PathEscape(uuid), p)
}

func (h *httpClient) GetRecord(ctx context.Context, id int) (record.Entry, error) {
	return h.fetchEntry(ctx, http.MethodGet, "/records/"+strconv.Itoa(id), nil)
}

func (h *httpClient) UpdateRecord(ctx context.Context, id int, p record.Payload) (record.Entry, error) {
	return h.fetchEntry(ctx, http.MethodPut, "/records/"+strconv.Itoa(id), p)
}

func (h *httpClient) fetchEntry(ctx context.Context, method, path string, body any) (record.Entry, error) {
	resp, err := h.doRequest(ctx, method, path, body)
	if err != nil {
		return record.Entry{}, err
	}
	var e record.Entry
	if err := h.parseResponse(resp, &e); err != nil {
		return record.Entry{}, err
	}
	return e, nil
}

func (h *httpClient) DeleteRecord(ctx context.Context, id int) error {
	resp, err := h.doRequest(ctx, http.MethodDelete, "/records/"+strconv.Itoa(id), nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// UploadImage отправляет снимок табло на распознавание и возвращает сырые токены.
func (h *httpClient) UploadImage(ctx context.Context, filename string, image io.Reader) ([]string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("ошибка формирования запроса: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("ошибка чтения изображения: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("ошибка формирования запроса: %w", err)
	}

	req, err := h.newRequest(ctx, http.MethodPost, "/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := h.send(req)
	if err != nil {
		return nil, err
	}

	var uploadResp struct {
		Values []string `json:"values"`
	}
	if err := h.parseResponse(resp, &uploadResp); err != nil {
		return nil, err
	}
	return uploadResp.Values, nil
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := h.newRequest(ctx, method, path, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return h.send(req)
}

func (h *httpClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	// Добавляем заголовки
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	return req, nil
}

func (h *httpClient) send(req *http.Request) (*http.Response, error) {
	h.log.Debug("Отправка запроса",
		"method", req.Method,
		"url", req.URL.String(),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	h.log.Debug("Получен ответ",
		"status", resp.StatusCode,
		"size", len(body),
	)

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, body)}
	}

	if result != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}

	return nil
}

// errorMessage достаёт текст ошибки из полей error, message или detail.
func errorMessage(status int, body []byte) string {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil {
		for _, msg := range []string{errResp.Error, errResp.Message, errResp.Detail} {
			if msg != "" {
				return msg
			}
		}
	}
	return http.StatusText(status)
}
