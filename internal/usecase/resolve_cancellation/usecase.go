package resolve_cancellation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/domain"
	bookingRepo "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/infra/storage/booking"
	cancellationRepo "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/infra/storage/cancellation"
)

// UseCase use case разрешения запроса на отмену администратором.
// Переход pending -> approved|rejected одноразовый; при одобрении
// бронирование отменяется в той же транзакции.
type UseCase struct {
	cancellationRepo CancellationRepository
	bookingRepo      BookingRepository
	schedule         Schedule
	txManager        TransactionManager
	weekCache        WeekCache
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cancellationRepo CancellationRepository,
	bookingRepo BookingRepository,
	scheduleSvc Schedule,
	txManager TransactionManager,
	weekCache WeekCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		cancellationRepo: cancellationRepo,
		bookingRepo:      bookingRepo,
		schedule:         scheduleSvc,
		txManager:        txManager,
		weekCache:        weekCache,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case разрешения запроса на отмену
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("ResolveCancellation: admin=%s, request=%s, action=%s",
		req.AdminID, req.RequestID, req.Action)

	// 1. Разрешать запросы может только администратор
	if !req.IsAdmin {
		uc.logger.Warn("ResolveCancellation: user=%s is not an admin", req.AdminID)
		return ErrAdminRequired
	}

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveCancellation: validation failed: %v", err)
		return err
	}

	// 2. Загружаем запрос, чтобы знать связанное бронирование
	request, err := uc.cancellationRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, cancellationRepo.ErrRequestNotFound) {
			uc.logger.Warn("ResolveCancellation: request id=%s not found", req.RequestID)
			return ErrRequestNotFound
		}
		uc.logger.Error("ResolveCancellation: failed to get request id=%s: %v", req.RequestID, err)
		return fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
	}

	status := domain.RequestRejected
	if req.Action == ActionApprove {
		status = domain.RequestApproved
	}

	// 3. Переход статуса и отмена бронирования — одна транзакция.
	// Условие "запрос ещё pending" проверяется самим UPDATE, поэтому из
	// двух конкурентных разрешений применяется ровно одно.
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		err := uc.cancellationRepo.Resolve(txCtx, req.RequestID, status,
			req.AdminID, req.AdminEmail, strings.TrimSpace(req.Response))
		if err != nil {
			if errors.Is(err, cancellationRepo.ErrAlreadyProcessed) {
				uc.logger.Warn("ResolveCancellation: request id=%s already processed", req.RequestID)
				return ErrAlreadyProcessed
			}
			if errors.Is(err, cancellationRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			uc.logger.Error("ResolveCancellation: failed to resolve request id=%s: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to resolve request: %v", ErrInternal, err)
		}

		if status != domain.RequestApproved {
			return nil
		}

		if err := uc.bookingRepo.SoftCancel(txCtx, request.BookingID, req.AdminID, req.AdminEmail); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				// Бронирование уже отменено или удалено сбросом недели:
				// желаемое конечное состояние достигнуто, запрос разрешаем
				uc.logger.Warn("ResolveCancellation: booking %s for request %s is already gone",
					request.BookingID, req.RequestID)
				return nil
			}
			uc.logger.Error("ResolveCancellation: DEFECT - approved request %s but soft-cancel of booking %s failed: %v",
				req.RequestID, request.BookingID, err)
			return fmt.Errorf("%w: booking=%s: %v", ErrInconsistentState, request.BookingID, err)
		}
		return nil
	})

	if err != nil {
		return err
	}

	uc.logger.Info("ResolveCancellation: request %s resolved to %s by admin=%s",
		req.RequestID, status, req.AdminID)

	if status == domain.RequestApproved {
		week := uc.schedule.CurrentWeek(uc.timeProvider.Now())
		if err := uc.weekCache.Invalidate(ctx, week[0]); err != nil {
			uc.logger.Warn("ResolveCancellation: failed to invalidate week cache: %v", err)
		}
	}

	return nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RequestID == "" {
		return fmt.Errorf("%w: requestID is required", ErrInvalidInput)
	}
	if req.Action != ActionApprove && req.Action != ActionReject {
		return ErrInvalidAction
	}
	return nil
}
