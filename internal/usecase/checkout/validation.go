package checkout

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-LeasingGateway/pkg/validation"
)

// precheckOrder порядок проверки полей и ошибка для каждого
var precheckOrder = []struct {
	field string
	err   error
}{
	{"Number", ErrCardNumberRequired},
	{"Holder", ErrCardHolderRequired},
	{"Expiry", ErrCardExpiryRequired},
	{"CVV", ErrCVVRequired},
	{"Agreed", ErrAgreementRequired},
}

// validateRequest выполняет локальные проверки до любого сетевого вызова
// Возвращает первую ошибку в порядке полей формы оплаты
func validateRequest(v Validator, req *Request, now time.Time) error {
	pc := precheck{
		Number: strings.Join(strings.Fields(req.Card.Number), ""),
		Holder: strings.TrimSpace(req.Card.Holder),
		Expiry: strings.TrimSpace(req.Card.Expiry),
		CVV:    strings.TrimSpace(req.Card.CVV),
		Agreed: req.Agreed,
	}

	if err := v.Validate(&pc); err != nil {
		failures := validation.Failures(err)
		if failures == nil {
			return fmt.Errorf("%w: %v", ErrInvalidLease, err)
		}
		for _, check := range precheckOrder {
			if validation.HasFailure(failures, check.field, "") {
				return check.err
			}
		}
	}

	if err := validateExpiry(pc.Expiry, now); err != nil {
		return err
	}

	if req.Lease.CarID <= 0 {
		return fmt.Errorf("%w: carId must be positive", ErrInvalidLease)
	}
	if req.Lease.LeaseTerm <= 0 {
		return fmt.Errorf("%w: leaseTerm must be positive", ErrInvalidLease)
	}
	if req.Lease.DownPayment < 0 {
		return fmt.Errorf("%w: downPayment must not be negative", ErrInvalidLease)
	}

	return nil
}

// validateExpiry проверяет полный срок действия MM/YY: месяц 1-12 и не раньше текущего
// Неполная строка (меньше 5 символов) не проверяется, более длинная отклоняется
func validateExpiry(expiry string, now time.Time) error {
	if len(expiry) < 5 {
		return nil
	}
	if len(expiry) != 5 {
		return ErrCardExpiryInvalid
	}

	parts := strings.Split(expiry, "/")
	if len(parts) != 2 {
		return ErrCardExpiryInvalid
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return ErrCardExpiryInvalid
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return ErrCardExpiryInvalid
	}

	currentYear := now.Year() % 100
	currentMonth := int(now.Month())

	if month < 1 || month > 12 || year < currentYear || (year == currentYear && month < currentMonth) {
		return ErrCardExpiryInvalid
	}
	return nil
}

// validateSession проверяет, что сессия содержит токен и ID пользователя
func validateSession(req *Request) error {
	if req.Session == nil || req.Session.Token == "" {
		return ErrUnauthorized
	}
	if !req.Session.HasUserID() {
		return ErrUserIDNotFound
	}
	return nil
}
