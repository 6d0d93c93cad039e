package weekview

import (
	"context"
	"time"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/domain"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/service/schedule"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByDates(ctx context.Context, dates []string) ([]*domain.Booking, error)
	DeleteByDates(ctx context.Context, dates []string) (int64, error)
}

// CancellationRepository интерфейс репозитория запросов на отмену
type CancellationRepository interface {
	GetByDates(ctx context.Context, dates []string) ([]*domain.CancellationRequest, error)
	ListAll(ctx context.Context) ([]*domain.CancellationRequest, error)
}

// Schedule интерфейс калькулятора расписания
type Schedule interface {
	CurrentWeek(now time.Time) []string
	DayType(date string) (schedule.DayType, error)
	SlotsFor(date string) ([]int, error)
	SlotLabel(date string, slot int) (string, error)
}

// WeekCache интерфейс кэша недельного вида
type WeekCache interface {
	Get(ctx context.Context, weekStart string) ([]byte, bool, error)
	Set(ctx context.Context, weekStart string, payload []byte) error
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
