package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/domain"
	bookingRepo "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/infra/storage/booking"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/service/schedule"
)

// UseCase use case создания бронирования.
// Координатор: проверяет принадлежность слота текущей неделе, дневные
// лимиты и фиксирует бронирование. Проверка лимитов и запись выполняются
// в сериализуемой транзакции; уникальность слота дополнительно
// гарантирует условная запись в репозитории.
type UseCase struct {
	bookingRepo     BookingRepository
	userRepo        UserRepository
	schedule        Schedule
	txManager       TransactionManager
	weekCache       WeekCache
	weekendMaxSlots int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	scheduleSvc Schedule,
	txManager TransactionManager,
	weekCache WeekCache,
	weekendMaxSlots int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		userRepo:        userRepo,
		schedule:        scheduleSvc,
		txManager:       txManager,
		weekCache:       weekCache,
		weekendMaxSlots: weekendMaxSlots,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, date=%s, slot=%d, band=%q",
		req.UserID, req.Date, req.Slot, req.BandName)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата должна входить в текущее недельное окно
	week := uc.schedule.CurrentWeek(now)
	if !containsDate(week, req.Date) {
		uc.logger.Warn("CreateBooking: date %s is outside current week", req.Date)
		return nil, ErrInvalidSlot
	}

	// 4. Слот должен входить в каталог для типа дня
	valid, err := uc.schedule.ContainsSlot(req.Date, req.Slot)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve slot catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve slot catalog: %v", ErrInternal, err)
	}
	if !valid {
		uc.logger.Warn("CreateBooking: slot %d is not in catalog for date %s", req.Slot, req.Date)
		return nil, ErrInvalidSlot
	}

	dayType, err := uc.schedule.DayType(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve day type: %v", ErrInternal, err)
	}

	// Лимит бронирований пользователя на день:
	// будни — один слот, выходные — настроенный лимит на группу
	dailyLimit := 1
	if dayType == schedule.DayTypeWeekend {
		dailyLimit = uc.weekendMaxSlots
	}

	var result *domain.Booking

	// 5. Проверяем лимит и создаем бронирование в сериализуемой транзакции.
	// Потерянная гонка за слот всплывает из репозитория как ErrSlotTaken
	// на этапе коммита — предварительная проверка не выполняется вовсе.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		count, err := uc.bookingRepo.CountActiveByUserAndDate(txCtx, req.UserID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count user bookings: %v", err)
			return fmt.Errorf("%w: failed to count user bookings: %v", ErrInternal, err)
		}

		if count >= dailyLimit {
			uc.logger.Warn("CreateBooking: daily limit reached for user=%s on %s (%d/%d)",
				req.UserID, req.Date, count, dailyLimit)
			return ErrDailyLimitReached
		}

		booking := &domain.Booking{
			UserID:    req.UserID,
			UserEmail: req.UserEmail,
			UserName:  req.UserName,
			Date:      req.Date,
			Slot:      req.Slot,
			BandName:  strings.TrimSpace(req.BandName),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %d on %s already taken", req.Slot, req.Date)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	// 6. Обновляем учётную запись пользователя.
	// Идемпотентный побочный эффект вне транзакции бронирования:
	// его отказ не отменяет уже принятое решение о брони.
	role := domain.RoleUser
	if req.IsAdmin {
		role = domain.RoleAdmin
	}
	if err := uc.userRepo.Upsert(ctx, &domain.User{
		ID:    req.UserID,
		Email: req.UserEmail,
		Name:  req.UserName,
		Role:  role,
	}); err != nil {
		uc.logger.Warn("CreateBooking: user upsert failed for user=%s: %v", req.UserID, err)
	}

	// 7. Инвалидируем кэш недельного вида
	if err := uc.weekCache.Invalidate(ctx, week[0]); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate week cache: %v", err)
	}

	return &Response{
		ID:        result.ID,
		UserID:    result.UserID,
		UserEmail: result.UserEmail,
		UserName:  result.UserName,
		Date:      result.Date,
		Slot:      result.Slot,
		BandName:  result.BandName,
		CreatedAt: result.CreatedAt,
	}, nil
}
