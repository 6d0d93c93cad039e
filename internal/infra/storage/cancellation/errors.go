package cancellation

import "errors"

var (
	// ErrRequestNotFound возвращается, когда запрос на отмену не найден
	ErrRequestNotFound = errors.New("cancellation.repository: request not found")

	// ErrDuplicateRequest возвращается, когда по бронированию уже есть
	// pending-запрос. Гарантируется частичным уникальным индексом:
	// из двух конкурентных запросов выигрывает первый записавший.
	ErrDuplicateRequest = errors.New("cancellation.repository: pending request already exists for booking")

	// ErrAlreadyProcessed возвращается при попытке разрешить запрос,
	// который уже покинул статус pending. Статусы approved/rejected терминальны.
	ErrAlreadyProcessed = errors.New("cancellation.repository: request already processed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("cancellation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("cancellation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("cancellation.repository: failed to scan row")
)
