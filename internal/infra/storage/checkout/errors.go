package checkout

import "errors"

var (
	// ErrCheckoutNotFound возвращается, когда запись журнала не найдена
	ErrCheckoutNotFound = errors.New("checkout.repository: checkout not found")

	// ErrStateConflict возвращается, когда запись уже не находится в ожидаемом состоянии
	ErrStateConflict = errors.New("checkout.repository: checkout state changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("checkout.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("checkout.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("checkout.repository: failed to scan row")
)
