package resolve_cancellation

import "errors"

var (
	// ErrAdminRequired возвращается, когда действие выполняет не администратор
	ErrAdminRequired = errors.New("resolve_cancellation: admin access required")

	// ErrRequestNotFound возвращается, когда запрос на отмену не найден
	ErrRequestNotFound = errors.New("resolve_cancellation: request not found")

	// ErrAlreadyProcessed возвращается при повторной попытке разрешить
	// уже обработанный запрос
	ErrAlreadyProcessed = errors.New("resolve_cancellation: request already processed")

	// ErrInvalidAction возвращается при неизвестном действии
	ErrInvalidAction = errors.New("resolve_cancellation: action must be approve or reject")

	// ErrInconsistentState возвращается, когда запрос одобрен, но отмена
	// бронирования не прошла
	ErrInconsistentState = errors.New("resolve_cancellation: approved request without cancelled booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("resolve_cancellation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resolve_cancellation: internal error")
)
