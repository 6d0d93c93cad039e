package create_booking

import (
	"context"
	"time"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/domain"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/service/schedule"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CountActiveByUserAndDate(ctx context.Context, userID string, date string) (int, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Upsert(ctx context.Context, u *domain.User) error
}

// Schedule интерфейс калькулятора недельного окна и каталога слотов
type Schedule interface {
	CurrentWeek(now time.Time) []string
	DayType(date string) (schedule.DayType, error)
	ContainsSlot(date string, slot int) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
