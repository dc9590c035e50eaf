// Package api содержит клиент REST API музыкального сервиса
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hazadus/go-tuner/internal/utils"
)

// Error представляет ошибку, возвращенную сервером
type Error struct {
	Status int    // HTTP-статус ответа
	Detail string // Поле detail из тела ответа
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("сервер вернул %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("сервер вернул %d", e.Status)
}

// IsStatus возвращает true, если ошибка является ошибкой API с указанным статусом
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client выполняет запросы к REST API музыкального сервиса.
// Токен авторизации устанавливается через SetToken и прикладывается
// ко всем запросам заголовком Authorization.
type Client struct {
	baseURL    string
	mediaURL   string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient создает новый клиент API
func NewClient(baseURL, mediaURL string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		mediaURL: strings.TrimRight(mediaURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken устанавливает токен авторизации для последующих запросов
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token возвращает текущий токен авторизации
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// MediaURL собирает URL медиаресурса из пути, возвращенного сервером.
// Разделители пути нормализуются к прямым слэшам.
func (c *Client) MediaURL(path string) string {
	normalized := utils.NormalizeMediaPath(path)
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	return c.mediaURL + normalized
}

// do выполняет запрос к API и декодирует JSON-ответ в out (если out != nil)
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("ошибка разбора ответа: %w", err)
		}
	}
	return nil
}

// doJSON сериализует payload в JSON и выполняет запрос
func (c *Client) doJSON(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("ошибка сериализации запроса: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

// decodeError извлекает поле detail из тела ошибки
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Detail = payload.Detail
	}
	return apiErr
}
