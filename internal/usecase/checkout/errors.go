package checkout

import (
	"errors"

	"github.com/m04kA/SMC-LeasingGateway/internal/integrations/leasingapi"
)

// Ошибки локальной проверки: сеть не вызывается
var (
	// ErrCardNumberRequired возвращается, когда номер карты пуст (пробелы не считаются)
	ErrCardNumberRequired = errors.New("checkout: card number is required")

	// ErrCardHolderRequired возвращается, когда не указан владелец карты
	ErrCardHolderRequired = errors.New("checkout: card holder is required")

	// ErrCardExpiryRequired возвращается, когда не указан срок действия карты
	ErrCardExpiryRequired = errors.New("checkout: card expiry is required")

	// ErrCardExpiryInvalid возвращается для неверного месяца или истекшей карты
	ErrCardExpiryInvalid = errors.New("checkout: card expiry is invalid")

	// ErrCVVRequired возвращается, когда не указан CVV
	ErrCVVRequired = errors.New("checkout: cvv is required")

	// ErrAgreementRequired возвращается, когда пользователь не принял политику
	ErrAgreementRequired = errors.New("checkout: agreement is required")

	// ErrInvalidLease возвращается для некорректных параметров лизинга (ID автомобиля, срок)
	ErrInvalidLease = errors.New("checkout: invalid lease details")

	// ErrUnauthorized возвращается, когда в сессии нет токена бэкенда
	ErrUnauthorized = errors.New("checkout: authorization required")

	// ErrUserIDNotFound возвращается, когда в сессии нет ID пользователя
	ErrUserIDNotFound = errors.New("checkout: user id not found")
)

// Ошибки шагов оформления
var (
	// ErrCarLoad возвращается, когда не удалось получить автомобиль
	ErrCarLoad = errors.New("checkout: failed to load car")

	// ErrCarUnavailable возвращается, когда автомобиль не Available и не Reserved
	ErrCarUnavailable = errors.New("checkout: car is unavailable")

	// ErrReservationCheck возвращается, когда не удалось получить брони автомобиля
	ErrReservationCheck = errors.New("checkout: failed to check reservations")

	// ErrReservedByAnotherUser возвращается, когда у пользователя нет действующей брони Reserved автомобиля
	ErrReservedByAnotherUser = errors.New("checkout: car is reserved by another user")

	// ErrReservationFailed возвращается, когда бэкенд отклонил создание брони
	ErrReservationFailed = errors.New("checkout: failed to create reservation")

	// ErrLeaseFailed возвращается, когда бэкенд отклонил создание договора
	ErrLeaseFailed = errors.New("checkout: failed to create lease")

	// ErrLeaseIDMissing возвращается, когда ответ на создание договора не содержит ID
	ErrLeaseIDMissing = errors.New("checkout: lease contract id missing")

	// ErrPaymentFailed возвращается, когда договор создан, а платеж нет
	ErrPaymentFailed = errors.New("checkout: failed to create payment")

	// ErrJournal возвращается при ошибке записи журнала оформлений
	ErrJournal = errors.New("checkout: journal write failed")
)

// Сообщения пользователю
const (
	MsgCardNumberRequired    = "Введите номер карты"
	MsgCardHolderRequired    = "Введите имя владельца карты"
	MsgCardExpiryRequired    = "Введите дату истечения карты"
	MsgCardExpiryInvalid     = "Недействительная дата истечения карты"
	MsgCVVRequired           = "Введите CVV"
	MsgAgreementRequired     = "Необходимо согласиться с политикой"
	MsgInvalidLease          = "Некорректные параметры лизинга"
	MsgUnauthorized          = "Требуется авторизация."
	MsgUserIDNotFound        = "ID пользователя не найден."
	MsgCarLoad               = "Ошибка загрузки данных автомобиля."
	MsgCarUnavailable        = "Автомобиль недоступен для бронирования."
	MsgReservationCheck      = "Не удалось проверить бронирование."
	MsgReservedByAnotherUser = "Автомобиль забронирован другим пользователем."
	MsgLeaseIDMissing        = "ID договора лизинга не получен."
	MsgCheckoutFailed        = "Не удалось оформить лизинг."
)

// fixedMessages ошибки с постоянным текстом
var fixedMessages = []struct {
	err error
	msg string
}{
	{ErrCardNumberRequired, MsgCardNumberRequired},
	{ErrCardHolderRequired, MsgCardHolderRequired},
	{ErrCardExpiryRequired, MsgCardExpiryRequired},
	{ErrCardExpiryInvalid, MsgCardExpiryInvalid},
	{ErrCVVRequired, MsgCVVRequired},
	{ErrAgreementRequired, MsgAgreementRequired},
	{ErrInvalidLease, MsgInvalidLease},
	{ErrUnauthorized, MsgUnauthorized},
	{ErrUserIDNotFound, MsgUserIDNotFound},
	{ErrCarUnavailable, MsgCarUnavailable},
	{ErrReservedByAnotherUser, MsgReservedByAnotherUser},
	{ErrLeaseIDMissing, MsgLeaseIDMissing},
}

// UserMessage текст ошибки оформления для пользователя
// Для ошибок бэкенда используется его сообщение, иначе общий текст
func UserMessage(err error) string {
	for _, m := range fixedMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}

	switch {
	case errors.Is(err, leasingapi.ErrUnavailable):
		return leasingapi.MsgUnavailable
	case errors.Is(err, ErrCarLoad):
		return MsgCarLoad
	case errors.Is(err, ErrReservationCheck):
		return MsgReservationCheck
	default:
		return leasingapi.UserMessage(err, MsgCheckoutFailed)
	}
}
