package request_cancellation

import (
	"context"
	"time"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	SoftCancel(ctx context.Context, id string, byID string, byEmail string) error
}

// CancellationRepository интерфейс репозитория запросов на отмену
type CancellationRepository interface {
	Create(ctx context.Context, request *domain.CancellationRequest) (*domain.CancellationRequest, error)
}

// Schedule интерфейс калькулятора расписания
type Schedule interface {
	CurrentWeek(now time.Time) []string
	SlotStart(date string, slot int) (time.Time, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// WeekCache интерфейс инвалидации кэша недельного вида
type WeekCache interface {
	Invalidate(ctx context.Context, weekStart string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
