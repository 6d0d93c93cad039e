package request_cancellation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/domain"
	bookingRepo "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/infra/storage/booking"
	cancellationRepo "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/infra/storage/cancellation"
)

// UseCase use case создания запроса на отмену бронирования.
// Запрос, поданный не позднее чем за 2 часа до начала слота, одобряется
// автоматически и сразу отменяет бронирование; иначе он попадает в очередь
// на рассмотрение администратором.
type UseCase struct {
	bookingRepo      BookingRepository
	cancellationRepo CancellationRepository
	schedule         Schedule
	txManager        TransactionManager
	weekCache        WeekCache
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	cancellationRepo CancellationRepository,
	scheduleSvc Schedule,
	txManager TransactionManager,
	weekCache WeekCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		cancellationRepo: cancellationRepo,
		schedule:         scheduleSvc,
		txManager:        txManager,
		weekCache:        weekCache,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания запроса на отмену
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestCancellation: user=%s, booking=%s", req.UserID, req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestCancellation: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RequestCancellation: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RequestCancellation: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Отменить можно только своё бронирование
	if booking.UserID != req.UserID {
		uc.logger.Warn("RequestCancellation: user=%s is not the owner of booking=%s",
			req.UserID, req.BookingID)
		return nil, ErrNotOwner
	}

	// 4. Вычисляем право на автоодобрение: до начала слота осталось
	// не менее 2 часов (граница включительно)
	now := uc.timeProvider.Now()
	slotStart, err := uc.schedule.SlotStart(booking.Date, booking.Slot)
	if err != nil {
		uc.logger.Error("RequestCancellation: failed to compute slot start for booking=%s: %v",
			req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to compute slot start: %v", ErrInternal, err)
	}
	eligible := isAutoApprovable(slotStart, now)

	status := domain.RequestPending
	if eligible {
		status = domain.RequestApproved
	}

	// Снимок данных бронирования на момент подачи запроса
	request := &domain.CancellationRequest{
		BookingID:    booking.ID,
		UserID:       req.UserID,
		UserEmail:    req.UserEmail,
		UserName:     req.UserName,
		Date:         booking.Date,
		Slot:         booking.Slot,
		BandName:     booking.BandName,
		Reason:       strings.TrimSpace(req.Reason),
		Status:       status,
		AutoApproved: eligible,
	}

	// 5. Создание запроса и, при автоодобрении, отмена бронирования —
	// одна логическая операция: либо обе записи фиксируются, либо ни одной.
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := uc.cancellationRepo.Create(txCtx, request)
		if err != nil {
			if errors.Is(err, cancellationRepo.ErrDuplicateRequest) {
				uc.logger.Warn("RequestCancellation: pending request already exists for booking=%s",
					req.BookingID)
				return ErrDuplicateRequest
			}
			uc.logger.Error("RequestCancellation: failed to create request: %v", err)
			return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
		}
		request = created

		if !eligible {
			return nil
		}

		if err := uc.bookingRepo.SoftCancel(txCtx, booking.ID, req.UserID, req.UserEmail); err != nil {
			// Одобренный запрос без отменённого бронирования — рассогласование,
			// его нельзя молча проглотить
			uc.logger.Error("RequestCancellation: DEFECT - approved request %s but soft-cancel of booking %s failed: %v",
				request.ID, booking.ID, err)
			return fmt.Errorf("%w: booking=%s: %v", ErrInconsistentState, booking.ID, err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	if eligible {
		uc.logger.Info("RequestCancellation: request %s auto-approved, booking %s cancelled",
			request.ID, booking.ID)

		// Слот снова доступен — сбрасываем кэш недельного вида
		week := uc.schedule.CurrentWeek(now)
		if err := uc.weekCache.Invalidate(ctx, week[0]); err != nil {
			uc.logger.Warn("RequestCancellation: failed to invalidate week cache: %v", err)
		}
	} else {
		uc.logger.Info("RequestCancellation: request %s is pending admin review", request.ID)
	}

	return &Response{
		RequestID:    request.ID,
		Status:       string(request.Status),
		AutoApproved: request.AutoApproved,
		CreatedAt:    request.CreatedAt,
	}, nil
}

// isAutoApprovable проверяет, что до начала слота осталось не менее
// domain.AutoApproveNotice. Ровно за 2 часа до начала запрос ещё проходит.
func isAutoApprovable(slotStart, now time.Time) bool {
	return slotStart.Sub(now) >= domain.AutoApproveNotice
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}
	if req.BookingID == "" {
		return fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}
	return nil
}
