package create_booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID        int64            // ID пользователя, который бронирует
	ResourceID    int64            // ID автомобиля или парковки
	Start         time.Time        // Начало аренды (включительно)
	End           time.Time        // Конец аренды (не включительно)
	ExplicitPrice *decimal.Decimal // Цена, заданная вручную (используется, если > 0)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           int64
	ResourceID   int64
	ResourceKind string
	CustomerID   int64
	Start        time.Time
	End          time.Time
	TotalPrice   decimal.Decimal
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
