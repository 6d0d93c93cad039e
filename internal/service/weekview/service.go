package weekview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/service/weekview/models"
)

// Service сервис чтения недельного вида и административных операций.
// Недельный вид собирается из репозиториев и кэшируется в Redis;
// кэш сбрасывают операции, меняющие занятость слотов.
type Service struct {
	bookingRepo      BookingRepository
	cancellationRepo CancellationRepository
	schedule         Schedule
	cache            WeekCache
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса недельного вида
func NewService(
	bookingRepo BookingRepository,
	cancellationRepo CancellationRepository,
	scheduleSvc Schedule,
	cache WeekCache,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		cancellationRepo: cancellationRepo,
		schedule:         scheduleSvc,
		cache:            cache,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// GetWeek возвращает собранный вид текущей недели.
// Сначала пробует кэш; ошибки кэша не фатальны — вид пересобирается из БД.
func (s *Service) GetWeek(ctx context.Context) (*models.WeekView, error) {
	now := s.timeProvider.Now()
	dates := s.schedule.CurrentWeek(now)
	weekStart := dates[0]

	if payload, ok, err := s.cache.Get(ctx, weekStart); err != nil {
		s.logger.Warn("GetWeek: cache read failed: %v", err)
	} else if ok {
		var view models.WeekView
		if err := json.Unmarshal(payload, &view); err == nil {
			s.logger.Info("GetWeek: served week %s from cache", weekStart)
			return &view, nil
		}
		s.logger.Warn("GetWeek: corrupted cache entry for week %s, rebuilding", weekStart)
	}

	view, err := s.buildWeek(ctx, dates)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(view); err == nil {
		if err := s.cache.Set(ctx, weekStart, payload); err != nil {
			s.logger.Warn("GetWeek: cache write failed: %v", err)
		}
	}

	return view, nil
}

func (s *Service) buildWeek(ctx context.Context, dates []string) (*models.WeekView, error) {
	bookings, err := s.bookingRepo.GetByDates(ctx, dates)
	if err != nil {
		s.logger.Error("GetWeek: failed to load bookings: %v", err)
		return nil, fmt.Errorf("%w: GetWeek - failed to load bookings: %v", ErrInternal, err)
	}

	requests, err := s.cancellationRepo.GetByDates(ctx, dates)
	if err != nil {
		s.logger.Error("GetWeek: failed to load cancellation requests: %v", err)
		return nil, fmt.Errorf("%w: GetWeek - failed to load cancellation requests: %v", ErrInternal, err)
	}

	days := make([]models.DayView, 0, len(dates))
	dateSlotMap := make(map[string]map[int]models.SlotOccupant, len(dates))
	for _, date := range dates {
		dayType, err := s.schedule.DayType(date)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeek - day type for %s: %v", ErrInternal, date, err)
		}
		slots, err := s.schedule.SlotsFor(date)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeek - slot catalog for %s: %v", ErrInternal, date, err)
		}

		slotViews := make([]models.SlotView, 0, len(slots))
		for _, slot := range slots {
			label, err := s.schedule.SlotLabel(date, slot)
			if err != nil {
				return nil, fmt.Errorf("%w: GetWeek - slot label: %v", ErrInternal, err)
			}
			slotViews = append(slotViews, models.SlotView{Slot: slot, Label: label})
		}

		days = append(days, models.DayView{
			Date:    date,
			DayType: string(dayType),
			Slots:   slotViews,
		})
		dateSlotMap[date] = make(map[int]models.SlotOccupant)
	}

	bookingViews := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		bookingViews = append(bookingViews, models.FromDomainBooking(b))

		// В карту занятости попадают только активные бронирования
		if !b.IsActive() {
			continue
		}
		if slots, ok := dateSlotMap[b.Date]; ok {
			slots[b.Slot] = models.SlotOccupant{
				BookingID: b.ID,
				UserID:    b.UserID,
				UserName:  b.UserName,
				BandName:  b.BandName,
			}
		}
	}

	s.logger.Info("GetWeek: built week %s with %d bookings, %d cancellation requests",
		dates[0], len(bookings), len(requests))

	return &models.WeekView{
		Dates:                dates,
		Days:                 days,
		Bookings:             bookingViews,
		DateSlotMap:          dateSlotMap,
		CancellationRequests: models.FromDomainRequestList(requests),
	}, nil
}

// ListCancellationRequests возвращает все запросы на отмену, сначала новые.
// Доступно только администраторам.
func (s *Service) ListCancellationRequests(ctx context.Context, isAdmin bool) ([]models.RequestView, error) {
	if !isAdmin {
		return nil, ErrAdminRequired
	}

	requests, err := s.cancellationRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListCancellationRequests: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCancellationRequests - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListCancellationRequests: fetched %d requests", len(requests))
	return models.FromDomainRequestList(requests), nil
}

// ResetWeek физически удаляет все бронирования текущей недели.
// Запросы на отмену не трогаются — их история переживает сброс.
// Доступно только администраторам.
func (s *Service) ResetWeek(ctx context.Context, isAdmin bool) (*models.ResetResult, error) {
	if !isAdmin {
		return nil, ErrAdminRequired
	}

	dates := s.schedule.CurrentWeek(s.timeProvider.Now())

	deleted, err := s.bookingRepo.DeleteByDates(ctx, dates)
	if err != nil {
		s.logger.Error("ResetWeek: failed to delete bookings: %v", err)
		return nil, fmt.Errorf("%w: ResetWeek - failed to delete bookings: %v", ErrInternal, err)
	}

	if err := s.cache.Invalidate(ctx, dates[0]); err != nil {
		s.logger.Warn("ResetWeek: failed to invalidate week cache: %v", err)
	}

	s.logger.Info("ResetWeek: deleted %d bookings for week starting %s", deleted, dates[0])
	return &models.ResetResult{DeletedCount: deleted}, nil
}
