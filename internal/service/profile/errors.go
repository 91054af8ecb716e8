package profile

import "errors"

var (
	// ErrMissingFields возвращается, когда не заполнены имя, email или телефон
	ErrMissingFields = errors.New("profile: required fields are missing")

	// ErrAnalyticsUnavailable возвращается, когда не удалось получить ни аналитику, ни статистику
	ErrAnalyticsUnavailable = errors.New("profile: analytics unavailable")
)
