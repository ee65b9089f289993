package insurance

import "errors"

var (
	// ErrPolicyNotFound возвращается, когда полис не найден
	ErrPolicyNotFound = errors.New("insurance.repository: policy not found")

	// ErrDuplicatePolicyNumber номер полиса уже используется
	ErrDuplicatePolicyNumber = errors.New("insurance.repository: policy number already exists")

	// ErrBookingAlreadyInsured бронирование уже застраховано
	ErrBookingAlreadyInsured = errors.New("insurance.repository: booking already has a policy")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("insurance.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("insurance.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("insurance.repository: failed to scan row")
)
