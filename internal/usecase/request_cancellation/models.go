package request_cancellation

import "time"

// Request модель запроса на отмену бронирования
type Request struct {
	UserID    string
	UserEmail string
	UserName  string
	BookingID string
	Reason    string
}

// Response модель ответа с созданным запросом на отмену
type Response struct {
	RequestID    string
	Status       string
	AutoApproved bool
	CreatedAt    time.Time
}
