package add_availability

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден или деактивирован
	ErrResourceNotFound = errors.New("add_availability: resource not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("add_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("add_availability: internal error")
)
