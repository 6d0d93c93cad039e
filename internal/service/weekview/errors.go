package weekview

import "errors"

var (
	// ErrAdminRequired возвращается, когда действие выполняет не администратор
	ErrAdminRequired = errors.New("weekview: admin access required")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("weekview: internal error")
)
