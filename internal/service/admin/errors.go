package admin

import "errors"

var (
	// ErrInvalidDate возвращается, когда поле-дата не удалось разобрать
	ErrInvalidDate = errors.New("admin: invalid date value")

	// ErrInvalidID возвращается при неположительном ID элемента
	ErrInvalidID = errors.New("admin: invalid item id")

	// ErrEmptyItem возвращается, когда форма не содержит ни одного поля
	ErrEmptyItem = errors.New("admin: item is empty")

	// ErrExport возвращается при ошибке формирования выгрузки
	ErrExport = errors.New("admin: export failed")
)
