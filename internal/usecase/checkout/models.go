package checkout

import (
	"time"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

// Card данные карты; шлюз проверяет их заполненность и никуда не передает
type Card struct {
	Number string
	Holder string
	Expiry string // MM/YY
	CVV    string
}

// Request модель запроса на оформление лизинга
type Request struct {
	Session *domain.Session     // Сессия пользователя (токен и ID)
	Lease   domain.LeaseDetails // Условия из калькулятора
	Card    Card                // Данные карты
	Agreed  bool                // Согласие с политикой
}

// Response модель ответа с записью журнала
type Response struct {
	Checkout      *domain.Checkout // Завершенное оформление
	RedirectAfter time.Duration    // Задержка перехода в профиль
}

// precheck поля локальной проверки в порядке, в котором о них сообщается пользователю
type precheck struct {
	Number string `validate:"required"`
	Holder string `validate:"required"`
	Expiry string `validate:"required"`
	CVV    string `validate:"required"`
	Agreed bool   `validate:"required"`
}
