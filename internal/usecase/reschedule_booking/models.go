package reschedule_booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request перенос бронирования на новый интервал
type Request struct {
	UserID        int64
	BookingID     int64
	Start         time.Time
	End           time.Time
	ExplicitPrice *decimal.Decimal
}

// Response бронирование после переноса
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
