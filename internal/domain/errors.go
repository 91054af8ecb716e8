package domain

import "errors"

var (
	// ErrInvalidLeaseQuote возвращается при параметрах калькулятора вне допустимых границ
	ErrInvalidLeaseQuote = errors.New("domain: invalid lease quote parameters")

	// ErrUnknownStatusLabel возвращается, когда подпись статуса не найдена в таблице перевода
	ErrUnknownStatusLabel = errors.New("domain: unknown status label")

	// ErrUnknownResource возвращается для неизвестного ресурса консоли администратора
	ErrUnknownResource = errors.New("domain: unknown admin resource")
)
