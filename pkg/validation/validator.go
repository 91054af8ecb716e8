package validation

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)
)

// Validator обертка над go-playground/validator с правилами шлюза:
// contact_email - адрес вида a@b.c, phone - от 10 до 15 цифр с необязательным "+"
type Validator struct {
	v *validator.Validate
}

// New создает валидатор и регистрирует собственные правила
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("contact_email", matches(emailPattern))
	_ = v.RegisterValidation("phone", matches(phonePattern))
	return &Validator{v: v}
}

// Validate проверяет структуру по тегам validate
func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// Failure поле, не прошедшее проверку, и сработавшее правило
type Failure struct {
	Field string
	Tag   string
}

// Failures раскладывает ошибку валидации на список полей
// Для ошибок другого типа возвращает nil
func Failures(err error) []Failure {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	result := make([]Failure, 0, len(verrs))
	for _, fe := range verrs {
		result = append(result, Failure{Field: fe.Field(), Tag: fe.Tag()})
	}
	return result
}

// HasFailure проверяет, что среди ошибок есть поле с данным правилом
// Пустой tag подходит под любое правило
func HasFailure(failures []Failure, field, tag string) bool {
	for _, f := range failures {
		if f.Field == field && (tag == "" || f.Tag == tag) {
			return true
		}
	}
	return false
}

// HasTag проверяет, что хотя бы одно поле не прошло правило tag
func HasTag(failures []Failure, tag string) bool {
	for _, f := range failures {
		if f.Tag == tag {
			return true
		}
	}
	return false
}
