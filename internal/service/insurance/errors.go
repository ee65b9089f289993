package insurance

import "errors"

var (
	// ErrPolicyNotFound полис не найден или относится к чужому бронированию
	ErrPolicyNotFound = errors.New("insurance: policy not found")

	// ErrBookingNotFound бронирование не найдено или другого типа
	ErrBookingNotFound = errors.New("insurance: booking not found")

	// ErrAccessDenied бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("insurance: access denied")

	// ErrBookingNotActive бронирование завершено или отменено
	ErrBookingNotActive = errors.New("insurance: booking is not active")

	// ErrDuplicatePolicyNumber номер полиса уже используется
	ErrDuplicatePolicyNumber = errors.New("insurance: policy number already exists")

	// ErrBookingAlreadyInsured у бронирования уже есть полис
	ErrBookingAlreadyInsured = errors.New("insurance: booking already has a policy")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("insurance: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("insurance: internal error")
)
