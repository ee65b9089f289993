package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound бронирование не найдено или принадлежит другому пользователю
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrResourceNotFound ресурс бронирования деактивирован
	ErrResourceNotFound = errors.New("reschedule_booking: resource not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
