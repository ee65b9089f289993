package add_availability

import "time"

// Request модель запроса на добавление окна доступности
type Request struct {
	UserID     int64
	ResourceID int64
	Start      time.Time
	End        time.Time
}

// Response окно после слияния с соседними
type Response struct {
	ID         int64
	ResourceID int64
	Start      time.Time
	End        time.Time
	Absorbed   int // сколько существующих окон поглощено
}
