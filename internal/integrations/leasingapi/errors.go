package leasingapi

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable бэкенд недоступен: ошибка сети или таймаут
	ErrUnavailable = errors.New("leasingapi client: backend unavailable")

	// ErrUnexpectedStatus бэкенд ответил статусом вне 2xx, подробности в *APIError
	ErrUnexpectedStatus = errors.New("leasingapi client: unexpected status")

	// ErrUnauthorized бэкенд ответил 401
	ErrUnauthorized = errors.New("leasingapi client: unauthorized")

	// ErrNotFound бэкенд ответил 404
	ErrNotFound = errors.New("leasingapi client: not found")

	// ErrInvalidResponse тело ответа не удалось разобрать
	ErrInvalidResponse = errors.New("leasingapi client: invalid response")

	// ErrInternal ошибка подготовки запроса на стороне клиента
	ErrInternal = errors.New("leasingapi client: internal error")
)

// MsgUnavailable сообщение пользователю при недоступности бэкенда
const MsgUnavailable = "Не удалось подключиться к серверу"

// APIError ответ бэкенда со статусом вне 2xx
// Message извлекается из тела ответа (message, error, title или сам текст), может быть пустым
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%v: status %d: %s", ErrUnexpectedStatus, e.StatusCode, e.Message)
}

// Is позволяет сравнивать APIError с ErrUnexpectedStatus, ErrUnauthorized и ErrNotFound
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnexpectedStatus:
		return true
	case ErrUnauthorized:
		return e.StatusCode == 401
	case ErrNotFound:
		return e.StatusCode == 404
	}
	return false
}

// UserMessage возвращает текст ошибки для пользователя:
// сообщение бэкенда, если оно есть, иначе fallback
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnavailable) {
		return MsgUnavailable
	}
	return fallback
}
