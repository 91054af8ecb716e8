package domain

import "time"

// Параметры оформления
const (
	// ReservationHold длительность брони, создаваемой при оформлении лизинга
	ReservationHold = 24 * time.Hour

	// RedirectAfter задержка перед переходом в профиль после успешного оформления
	RedirectAfter = 3 * time.Second
)

// Ограничения калькулятора лизинга
const (
	MinDownPaymentPercent     = 10
	MaxDownPaymentPercent     = 50
	DefaultDownPaymentPercent = 20
	MinLeaseTermMonths        = 12
	MaxLeaseTermMonths        = 60
	DefaultLeaseTermMonths    = 36
)

// Ограничения отзывов
const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// Пагинация консоли администратора
const (
	DefaultAdminPageSize = 100
	FirstPage            = 1
)

// Форматы дат
const (
	DateFormat        = "2006-01-02" // YYYY-MM-DD, формат дат форм админки
	DisplayDateFormat = "02.01.2006" // дд.мм.гггг
)

// Значения-заглушки фильтров каталога ("без фильтра")
const (
	AllBrands   = "Все марки"
	AllYears    = "Все года"
	AllStatuses = "Все статусы"
)

// Claims JWT, в которых бэкенд передает роль и ID пользователя
const (
	RoleClaim           = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
	NameIdentifierClaim = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
)
