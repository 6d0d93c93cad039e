package create_booking

import "time"

// Request модель запроса на бронирование слота
type Request struct {
	UserID    string // Идентификатор субъекта из identity provider
	UserEmail string
	UserName  string
	IsAdmin   bool   // Результат резолвера ролей, нужен только для upsert учётной записи
	Date      string // Дата бронирования YYYY-MM-DD
	Slot      int    // Идентификатор слота (час, для будних может быть >= 24)
	BandName  string // Название группы
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        string
	UserID    string
	UserEmail string
	UserName  string
	Date      string
	Slot      int
	BandName  string
	CreatedAt time.Time
}
