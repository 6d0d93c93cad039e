package resolve_cancellation

// Action действие администратора над запросом
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Request модель запроса на разрешение запроса отмены
type Request struct {
	AdminID    string
	AdminEmail string
	IsAdmin    bool // Результат резолвера ролей
	RequestID  string
	Action     Action
	Response   string // Комментарий администратора (опционально)
}
