package create_booking

import "errors"

var (
	// ErrInvalidSlot возвращается, когда дата не входит в текущую неделю
	// или слот не входит в каталог слотов для этой даты
	ErrInvalidSlot = errors.New("create_booking: date or slot is not bookable")

	// ErrDailyLimitReached возвращается при превышении дневного лимита:
	// одно бронирование в будний день, настроенный лимит в выходной
	ErrDailyLimitReached = errors.New("create_booking: daily booking limit reached")

	// ErrSlotTaken возвращается, когда слот занят активным бронированием,
	// в том числе если конкурентный запрос успел записаться первым
	ErrSlotTaken = errors.New("create_booking: slot already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
