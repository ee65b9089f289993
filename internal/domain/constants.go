package domain

import "time"

// Ограничения валидации
const (
	MinCarYear              = 1900
	MaxCarYearAhead         = 1 // год выпуска не позже следующего года
	MaxDescriptionLength    = 2000
	MaxPolicyNumberLength   = 100
	MaxProviderNameLength   = 200
	MaxCoverageLength       = 4000
	MaxParkingNameLength    = 200
	MaxParkingAddressLength = 500
)

// Единицы тарификации
const (
	Day  = 24 * time.Hour
	Hour = time.Hour
)

// ActiveStatuses статусы, которые блокируют интервал ресурса
// Используется при проверке пересечений и в exclusion constraint
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// InactiveStatuses терминальные статусы
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}

// TimeFormat формат времени в API
const TimeFormat = time.RFC3339
