package eligibility

import "errors"

var (
	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("eligibility: internal error")
)
