package session

import "errors"

var (
	// ErrEmptyCredentials возвращается, когда не указан email или пароль
	ErrEmptyCredentials = errors.New("session: email and password are required")

	// ErrMissingFields возвращается, когда при регистрации не заполнено одно из полей
	ErrMissingFields = errors.New("session: all registration fields are required")

	// ErrInvalidEmail возвращается при некорректном email
	ErrInvalidEmail = errors.New("session: invalid email")

	// ErrInvalidPhone возвращается при некорректном номере телефона
	ErrInvalidPhone = errors.New("session: invalid phone number")

	// ErrShortPassword возвращается, когда пароль короче 6 символов
	ErrShortPassword = errors.New("session: password is too short")

	// ErrAgreementRequired возвращается, когда пользователь не согласился с политикой
	ErrAgreementRequired = errors.New("session: policy agreement required")

	// ErrTokenMissing возвращается, когда бэкенд ответил успехом без токена
	ErrTokenMissing = errors.New("session: backend did not provide a token")

	// ErrMalformedResponse возвращается, когда ответ бэкенда не удалось разобрать
	ErrMalformedResponse = errors.New("session: malformed backend response")

	// ErrSessionNotFound возвращается для неизвестной или завершенной сессии
	ErrSessionNotFound = errors.New("session: session not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("session: internal error")
)
