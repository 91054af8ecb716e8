package domain

import "github.com/m04kA/SMC-LeasingGateway/pkg/bimap"

// CarStatus статус автомобиля на стороне бэкенда
type CarStatus string

const (
	CarStatusAvailable CarStatus = "Available"
	CarStatusReserved  CarStatus = "Reserved"
	CarStatusLeased    CarStatus = "Leased"
)

// Car автомобиль каталога
// Переходы статусов принадлежат бэкенду, шлюз только читает их
type Car struct {
	ID            int64     `json:"id"`
	Brand         string    `json:"brand"`
	Model         string    `json:"model"`
	Year          int       `json:"year"`
	Engine        string    `json:"engine"`
	BodyType      string    `json:"bodyType"`
	Price         float64   `json:"price"`
	Status        CarStatus `json:"status"`
	AverageRating *float64  `json:"averageRating"`
	PhotoURL      string    `json:"photoUrl"`
}

// CanBeLeased возвращает true, если по автомобилю можно начать оформление лизинга
func (c *Car) CanBeLeased() bool {
	return c.Status == CarStatusAvailable || c.Status == CarStatusReserved
}

// CarStatusLabels перевод статуса автомобиля в отображаемую подпись и обратно
var CarStatusLabels = bimap.New(
	bimap.Pair[CarStatus, string]{Key: CarStatusAvailable, Value: "Доступен"},
	bimap.Pair[CarStatus, string]{Key: CarStatusReserved, Value: "Забронирован"},
	bimap.Pair[CarStatus, string]{Key: CarStatusLeased, Value: "В лизинге"},
)

// Label возвращает подпись статуса, для неизвестного статуса - сам статус
func (s CarStatus) Label() string {
	if label, ok := CarStatusLabels.Get(s); ok {
		return label
	}
	return string(s)
}

// Review отзыв об автомобиле
type Review struct {
	ID        int64   `json:"id"`
	CarID     int64   `json:"carId"`
	UserID    int64   `json:"userId"`
	UserName  string  `json:"userName,omitempty"`
	Rating    int     `json:"rating"`
	Comment   string  `json:"comment"`
	CreatedAt *string `json:"createdAt,omitempty"`
}
