package domain

import "errors"

// Ошибки предметной области. Слои выше оборачивают их через %w,
// хендлеры сопоставляют через errors.Is.
var (
	// ErrInvalidRange конец интервала не позже начала
	ErrInvalidRange = errors.New("domain: range end must be after start")

	// ErrNoAvailability для запрошенного интервала нет ровно одного покрывающего окна доступности
	ErrNoAvailability = errors.New("domain: resource is not available for the requested range")

	// ErrAmbiguousAvailability покрывающих окон 0 или больше одного
	ErrAmbiguousAvailability = errors.New("domain: expected exactly one covering availability window")

	// ErrOverlappingBooking интервал пересекается с активным бронированием
	ErrOverlappingBooking = errors.New("domain: range overlaps an active booking")

	// ErrNotVerifiedRenter у пользователя нет верифицированного профиля арендодателя
	ErrNotVerifiedRenter = errors.New("domain: principal is not a verified renter")

	// ErrInvalidStateTransition операция недопустима в текущем статусе бронирования
	ErrInvalidStateTransition = errors.New("domain: invalid booking state transition")

	// ErrOwnership пользователь не владелец ресурса или бронирования
	ErrOwnership = errors.New("domain: actor does not own the resource")

	// ErrInvalidResourceKind неизвестный тип ресурса
	ErrInvalidResourceKind = errors.New("domain: invalid resource kind")

	// ErrInvalidResource не заполнены обязательные поля ресурса
	ErrInvalidResource = errors.New("domain: invalid resource")

	// ErrInvalidBookingStatus неизвестный статус бронирования
	ErrInvalidBookingStatus = errors.New("domain: invalid booking status")

	// ErrAlreadyVerified профиль уже верифицирован
	ErrAlreadyVerified = errors.New("domain: renter profile is already verified")

	// ErrMissingDocuments для верификации нужны оба документа
	ErrMissingDocuments = errors.New("domain: driver license and photo id are required for verification")

	// ErrInvalidBookingReference страховка должна ссылаться ровно на одно бронирование
	ErrInvalidBookingReference = errors.New("domain: insurance must reference exactly one car or parking booking")

	// ErrInvalidPolicy не заполнены обязательные поля страхового полиса
	ErrInvalidPolicy = errors.New("domain: invalid insurance policy")
)
