package create_booking

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден или деактивирован
	ErrResourceNotFound = errors.New("create_booking: resource not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
