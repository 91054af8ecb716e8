package catalog

import "errors"

var (
	// ErrInvalidFilter возвращается при неизвестном значении фильтра
	ErrInvalidFilter = errors.New("catalog: invalid filter")

	// ErrEmptyComment возвращается, когда текст отзыва пуст
	ErrEmptyComment = errors.New("catalog: review comment is empty")

	// ErrInvalidRating возвращается при оценке вне диапазона 1-5
	ErrInvalidRating = errors.New("catalog: review rating out of range")

	// ErrInvalidQuote возвращается при параметрах калькулятора вне допустимых границ
	ErrInvalidQuote = errors.New("catalog: invalid lease quote parameters")
)
