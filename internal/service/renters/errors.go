package renters

import "errors"

var (
	// ErrProfileNotFound у пользователя нет профиля арендодателя
	ErrProfileNotFound = errors.New("renters: profile not found")

	// ErrProfileExists профиль у пользователя уже есть
	ErrProfileExists = errors.New("renters: profile already exists")

	// ErrAccessDenied операция доступна только администратору
	ErrAccessDenied = errors.New("renters: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("renters: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("renters: internal error")
)
