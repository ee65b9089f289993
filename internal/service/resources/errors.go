package resources

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден или деактивирован
	ErrResourceNotFound = errors.New("resources: resource not found")

	// ErrAccessDenied пользователь не владелец ресурса
	ErrAccessDenied = errors.New("resources: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("resources: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("resources: internal error")
)
