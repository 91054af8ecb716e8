package checkouts

import "errors"

var (
	// ErrCheckoutNotFound возвращается, когда оформление не найдено или принадлежит другому пользователю
	ErrCheckoutNotFound = errors.New("checkouts: checkout not found")

	// ErrNotCompleted возвращается при запросе квитанции незавершенного оформления
	ErrNotCompleted = errors.New("checkouts: checkout is not completed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("checkouts: internal error")
)
