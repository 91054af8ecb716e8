package leasingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Исходы запроса для метрик
const (
	outcomeOK          = "ok"
	outcomeUnavailable = "unavailable"
	outcomeStatus      = "status"
	outcomeInvalid     = "invalid"
)

// maxErrorBody ограничение на чтение тела ошибки
const maxErrorBody = 64 << 10

// Client клиент REST бэкенда лизинга
// Токен передается в каждый метод явно, клиент не хранит состояние пользователя
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	observer   Observer
}

// NewClient создает новый экземпляр клиента бэкенда лизинга
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// WithObserver подключает наблюдателя за запросами (метрики)
func (c *Client) WithObserver(o Observer) *Client {
	c.observer = o
	return c
}

// call описание одного запроса к бэкенду
type call struct {
	method   string
	path     string
	endpoint string // метка для метрик и логов, без идентификаторов
	query    url.Values
	token    string
	body     interface{}

	// allowEmpty допускает пустое тело успешного ответа, out тогда не заполняется
	allowEmpty bool
}

// do выполняет запрос и декодирует ответ в out (если out != nil)
func (c *Client) do(ctx context.Context, rc call, out interface{}) error {
	start := time.Now()
	outcome := outcomeOK
	defer func() {
		if c.observer != nil {
			c.observer.ObserveBackendCall(rc.endpoint, outcome, time.Since(start))
		}
	}()

	raw, err := c.send(ctx, rc)
	if err != nil {
		outcome = outcomeOf(err)
		return err
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		if out != nil && !rc.allowEmpty {
			outcome = outcomeInvalid
			return fmt.Errorf("%w: %s %s: empty body", ErrInvalidResponse, rc.method, rc.endpoint)
		}
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		outcome = outcomeInvalid
		return fmt.Errorf("%w: %s %s: failed to decode response: %v", ErrInvalidResponse, rc.method, rc.endpoint, err)
	}

	return nil
}

// send отправляет запрос и возвращает тело успешного ответа
func (c *Client) send(ctx context.Context, rc call) ([]byte, error) {
	target := c.baseURL + rc.path
	if len(rc.query) > 0 {
		target += "?" + rc.query.Encode()
	}

	var body io.Reader
	if rc.body != nil {
		payload, err := json.Marshal(rc.body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, rc.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	if rc.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if rc.token != "" {
		req.Header.Set("Authorization", "Bearer "+rc.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("%s %s - backend unreachable: %v", rc.method, rc.endpoint, err)
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, rc.method, rc.endpoint, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: extractMessage(raw)}
		c.log.Warn("%s %s - backend responded %d: %s", rc.method, rc.endpoint, resp.StatusCode, apiErr.Message)
		return nil, apiErr
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: failed to read body: %v", ErrUnavailable, rc.method, rc.endpoint, err)
	}
	return raw, nil
}

// errorBody поля, в которых бэкенд передает текст ошибки
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Title   string `json:"title"`
}

// extractMessage достает текст ошибки из тела ответа: message, error, title или сам текст
func extractMessage(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return ""
	}

	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil {
		switch {
		case eb.Message != "":
			return eb.Message
		case eb.Error != "":
			return eb.Error
		case eb.Title != "":
			return eb.Title
		}
		return ""
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	return text
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrUnavailable):
		return outcomeUnavailable
	case errors.Is(err, ErrUnexpectedStatus):
		return outcomeStatus
	default:
		return outcomeInvalid
	}
}
