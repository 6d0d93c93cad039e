package request_cancellation

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("request_cancellation: booking not found")

	// ErrNotOwner возвращается при попытке отменить чужое бронирование
	ErrNotOwner = errors.New("request_cancellation: booking belongs to another user")

	// ErrDuplicateRequest возвращается, когда по бронированию уже есть
	// необработанный запрос на отмену
	ErrDuplicateRequest = errors.New("request_cancellation: pending request already exists")

	// ErrInconsistentState возвращается, когда запрос одобрен, но отмена
	// бронирования не прошла. Транзакция откатывается целиком, ошибка
	// логируется как дефект, требующий внимания оператора.
	ErrInconsistentState = errors.New("request_cancellation: approved request without cancelled booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("request_cancellation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_cancellation: internal error")
)
