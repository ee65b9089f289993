package ledger

import "errors"

var (
	// ErrNoTransaction изменение журнала доступности вне транзакции
	ErrNoTransaction = errors.New("ledger: mutation requires an active transaction")

	// ErrWindowMismatch окно не покрывает потребляемый интервал
	ErrWindowMismatch = errors.New("ledger: window does not cover the consumed range")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("ledger: internal error")
)
