package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AdminResource ресурс консоли администратора
type AdminResource string

const (
	AdminUsers          AdminResource = "users"
	AdminCars           AdminResource = "cars"
	AdminLeaseContracts AdminResource = "lease-contracts"
	AdminPayments       AdminResource = "payments"
	AdminReservations   AdminResource = "reservations"
	AdminFavorites      AdminResource = "favorites"
	AdminReviews        AdminResource = "reviews"
)

// AdminResources все ресурсы в порядке вкладок консоли
var AdminResources = []AdminResource{
	AdminUsers,
	AdminCars,
	AdminLeaseContracts,
	AdminPayments,
	AdminReservations,
	AdminFavorites,
	AdminReviews,
}

// ParseAdminResource проверяет, что ресурс поддерживается консолью
func ParseAdminResource(raw string) (AdminResource, error) {
	for _, r := range AdminResources {
		if string(r) == raw {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResource, raw)
}

// adminTabLabels подписи вкладок
var adminTabLabels = map[AdminResource]string{
	AdminUsers:          "Пользователи",
	AdminCars:           "Автомобили",
	AdminLeaseContracts: "Лизинг",
	AdminPayments:       "Платежи",
	AdminReservations:   "Брони",
	AdminFavorites:      "Избранное",
	AdminReviews:        "Отзывы",
}

// Label подпись вкладки ресурса
func (r AdminResource) Label() string {
	return adminTabLabels[r]
}

// FieldType тип поля формы
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldPicker   FieldType = "picker"
	FieldTextarea FieldType = "textarea"
)

// Field описание поля формы ресурса
// Source задается для полей-пикеров: ресурс, из которого берутся варианты
type Field struct {
	Key      string        `json:"key"`
	Label    string        `json:"label"`
	Type     FieldType     `json:"type"`
	Source   AdminResource `json:"source,omitempty"`
	Disabled bool          `json:"disabled,omitempty"`
}

var (
	userPicker = Field{Key: "userId", Label: "Пользователь", Type: FieldPicker, Source: AdminUsers}
	carPicker  = Field{Key: "carId", Label: "Автомобиль", Type: FieldPicker, Source: AdminCars}
)

// adminSchemas поля форм по ресурсам
var adminSchemas = map[AdminResource][]Field{
	AdminUsers: {
		{Key: "fullName", Label: "Полное имя", Type: FieldText},
		{Key: "email", Label: "Email", Type: FieldText},
		{Key: "phoneNumber", Label: "Телефон", Type: FieldText},
		{Key: "password", Label: "Пароль", Type: FieldText},
		{Key: "role", Label: "Роль (0=User, 1=Admin)", Type: FieldNumber},
	},
	AdminCars: {
		{Key: "brand", Label: "Бренд", Type: FieldText},
		{Key: "model", Label: "Модель", Type: FieldText},
		{Key: "year", Label: "Год", Type: FieldNumber},
		{Key: "engine", Label: "Двигатель", Type: FieldText},
		{Key: "bodyType", Label: "Тип кузова", Type: FieldText},
		{Key: "price", Label: "Цена", Type: FieldNumber},
		{Key: "photoUrl", Label: "URL фото", Type: FieldText},
		{Key: "status", Label: "Статус (Available/Reserved/Leased)", Type: FieldText},
	},
	AdminLeaseContracts: {
		userPicker,
		carPicker,
		{Key: "leaseStartDate", Label: "Дата начала", Type: FieldDate},
		{Key: "leaseEndDate", Label: "Дата окончания", Type: FieldDate},
		{Key: "totalCost", Label: "Общая стоимость", Type: FieldNumber},
	},
	AdminPayments: {
		{Key: "leaseContractId", Label: "Договор лизинга", Type: FieldPicker, Source: AdminLeaseContracts},
		{Key: "paymentDate", Label: "Дата платежа", Type: FieldDate},
		{Key: "amount", Label: "Сумма", Type: FieldNumber},
		{Key: "isPaid", Label: "Оплачен (true/false)", Type: FieldText},
	},
	AdminReservations: {
		userPicker,
		carPicker,
		{Key: "reservationStart", Label: "Начало", Type: FieldDate},
		{Key: "reservationEnd", Label: "Конец", Type: FieldDate},
		{Key: "isActive", Label: "Активно (true/false)", Type: FieldText},
	},
	AdminFavorites: {
		userPicker,
		carPicker,
	},
	AdminReviews: {
		userPicker,
		carPicker,
		{Key: "rating", Label: "Рейтинг (1-5)", Type: FieldNumber},
		{Key: "comment", Label: "Комментарий", Type: FieldTextarea},
	},
}

// Schema возвращает поля формы ресурса
// В режиме редактирования первым добавляется неизменяемое поле id
func (r AdminResource) Schema(editing bool) []Field {
	base := adminSchemas[r]
	fields := make([]Field, 0, len(base)+1)
	if editing {
		fields = append(fields, Field{Key: "id", Label: "ID", Type: FieldNumber, Disabled: true})
	}
	return append(fields, base...)
}

// DateFields ключи полей типа date
func (r AdminResource) DateFields() []string {
	keys := make([]string, 0)
	for _, f := range adminSchemas[r] {
		if f.Type == FieldDate {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// AdminItem элемент ресурса в том виде, как его вернул бэкенд
type AdminItem map[string]any

// ID возвращает идентификатор элемента
func (i AdminItem) ID() (int64, bool) {
	n, ok := i["id"].(float64)
	if !ok {
		return 0, false
	}
	return int64(n), true
}

// Title заголовок карточки элемента
func (r AdminResource) Title(item AdminItem) string {
	id := item.text("id")
	switch r {
	case AdminUsers:
		if name := item.text("fullName"); name != "" {
			return name
		}
		return "Пользователь " + id
	case AdminCars:
		return item.text("brand") + " " + item.text("model")
	case AdminLeaseContracts:
		return "Договор " + id
	case AdminPayments:
		return "Платёж " + id
	case AdminReservations:
		return "Бронь " + id
	case AdminFavorites:
		return "Избранное " + id
	case AdminReviews:
		return "Отзыв " + id
	default:
		return "Элемент " + id
	}
}

// DisplayText строка элемента, по которой работает локальный поиск
func (r AdminResource) DisplayText(item AdminItem) string {
	id := item.text("id")
	switch r {
	case AdminUsers:
		return fmt.Sprintf("ID: %s, Имя: %s, Email: %s, Телефон: %s, Роль: %s",
			id, item.textOr("fullName", "Не указано"), item.text("email"),
			item.textOr("phoneNumber", "Не указано"), item.role())
	case AdminCars:
		return fmt.Sprintf("ID: %s, Бренд: %s, Модель: %s, Год: %s, Двигатель: %s, Тип кузова: %s, Цена: %s, Статус: %s, Средний рейтинг: %s",
			id, item.text("brand"), item.text("model"), item.text("year"), item.text("engine"),
			item.text("bodyType"), item.text("price"), item.text("status"),
			item.textOr("averageRating", "Нет отзывов"))
	case AdminLeaseContracts:
		return fmt.Sprintf("ID: %s, Пользователь: %s, Авто: %s, Начало: %s, Окончание: %s, Стоимость: %s",
			id, item.userRef(), item.carRef(), item.date("leaseStartDate"),
			item.date("leaseEndDate"), item.text("totalCost"))
	case AdminPayments:
		return fmt.Sprintf("ID: %s, Договор: %s, Дата: %s, Сумма: %s, Оплачен: %s",
			id, item.text("leaseContractId"), item.date("paymentDate"),
			item.text("amount"), item.yesNo("isPaid"))
	case AdminReservations:
		return fmt.Sprintf("ID: %s, Пользователь: %s, Авто: %s, Начало: %s, Окончание: %s, Активно: %s",
			id, item.userRef(), item.carRef(), item.date("reservationStart"),
			item.date("reservationEnd"), item.yesNo("isActive"))
	case AdminFavorites:
		return fmt.Sprintf("ID: %s, Пользователь: %s, Авто: %s", id, item.userRef(), item.carRef())
	case AdminReviews:
		return fmt.Sprintf("ID: %s, Пользователь: %s, Авто: %s, Рейтинг: %s, Комментарий: %s",
			id, item.userRef(), item.carRef(), item.text("rating"), item.textOr("comment", "Нет"))
	default:
		return "ID: " + id
	}
}

// PickerOption вариант выбора в поле-пикере
type PickerOption struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// PickerSources ресурсы, из которых берутся варианты пикеров
var PickerSources = []AdminResource{AdminUsers, AdminCars, AdminLeaseContracts}

// PickerLabel подпись элемента в списке выбора
func (r AdminResource) PickerLabel(item AdminItem) string {
	id := item.text("id")
	switch r {
	case AdminUsers:
		return fmt.Sprintf("%s (ID: %s)", item.text("fullName"), id)
	case AdminCars:
		return fmt.Sprintf("%s %s (ID: %s)", item.text("brand"), item.text("model"), id)
	case AdminLeaseContracts:
		return fmt.Sprintf("Договор %s (Пользователь: %s, Авто: %s)", id, item.text("userId"), item.text("carId"))
	default:
		return r.Title(item)
	}
}

// PickerOptions варианты выбора из элементов ресурса; элементы без id пропускаются
func (r AdminResource) PickerOptions(items []AdminItem) []PickerOption {
	options := make([]PickerOption, 0, len(items))
	for _, item := range items {
		id, ok := item.ID()
		if !ok {
			continue
		}
		options = append(options, PickerOption{ID: id, Label: r.PickerLabel(item)})
	}
	return options
}

// MatchesQuery проверяет вхождение запроса в строку элемента без учета регистра
// Пустой запрос подходит под любой элемент
func (r AdminResource) MatchesQuery(item AdminItem, query string) bool {
	if query == "" {
		return true
	}
	return containsFold(r.DisplayText(item), query)
}

// text приводит значение поля к строке так, как его выводит карточка
func (i AdminItem) text(key string) string {
	return formatValue(i[key])
}

// textOr возвращает fallback для пустых, нулевых и отсутствующих значений
func (i AdminItem) textOr(key, fallback string) string {
	switch v := i[key].(type) {
	case nil:
		return fallback
	case string:
		if v == "" {
			return fallback
		}
	case float64:
		if v == 0 {
			return fallback
		}
	case bool:
		if !v {
			return fallback
		}
	}
	return i.text(key)
}

func (i AdminItem) yesNo(key string) string {
	if v, ok := i[key].(bool); ok && v {
		return "Да"
	}
	return "Нет"
}

func (i AdminItem) date(key string) string {
	raw, ok := i[key].(string)
	if !ok || raw == "" {
		return "Не указано"
	}
	t, ok := ParseBackendTime(raw)
	if !ok {
		return "Не указано"
	}
	return t.Format(DisplayDateFormat)
}

func (i AdminItem) role() string {
	switch v := i["role"].(type) {
	case float64:
		return RoleFromCode(int(v))
	case string:
		if v == string(RoleUser) || v == string(RoleAdmin) {
			return v
		}
	}
	return "Unknown"
}

// userRef имя пользователя из вложенного объекта или его ID
func (i AdminItem) userRef() string {
	if user, ok := i["user"].(map[string]any); ok && user != nil {
		return formatValue(user["fullName"])
	}
	return i.text("userId")
}

// carRef бренд автомобиля из вложенного объекта или его ID
func (i AdminItem) carRef() string {
	if car, ok := i["car"].(map[string]any); ok && car != nil {
		return formatValue(car["brand"])
	}
	return i.text("carId")
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// backendTimeLayouts форматы дат, которые встречаются в ответах бэкенда
var backendTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	DateFormat,
}

// ParseBackendTime разбирает дату бэкенда (ISO 8601 с зоной или без)
func ParseBackendTime(raw string) (time.Time, bool) {
	for _, layout := range backendTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
