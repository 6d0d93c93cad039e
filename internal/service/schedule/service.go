package schedule

import (
	"fmt"
	"time"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/domain"
)

// DayType тип дня: будний или выходной
type DayType string

const (
	DayTypeWeekday DayType = "weekday"
	DayTypeWeekend DayType = "weekend"
)

// Service калькулятор недельного окна и каталога слотов.
// Чистые функции от настенных часов и неизменяемой конфигурации:
// таймзона, день начала недели. Никакого внешнего состояния.
type Service struct {
	location     *time.Location
	weekStartsOn time.Weekday
}

// New создает сервис расписания.
// Таймзона валидируется один раз при старте сервиса.
func New(timezone string, weekStartsOn int) (*Service, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("schedule: invalid timezone %q: %w", timezone, err)
	}
	if weekStartsOn < 0 || weekStartsOn > 6 {
		return nil, fmt.Errorf("schedule: week start day %d out of range 0..6", weekStartsOn)
	}
	return &Service{
		location:     loc,
		weekStartsOn: time.Weekday(weekStartsOn),
	}, nil
}

// Location возвращает настроенную таймзону
func (s *Service) Location() *time.Location {
	return s.location
}

// CurrentWeek возвращает 7 последовательных дат текущей недели.
// Первая дата — ближайшее прошедшее (или сегодняшнее) вхождение
// настроенного дня начала недели в настроенной таймзоне.
func (s *Service) CurrentWeek(now time.Time) []string {
	local := now.In(s.location)
	offset := (int(local.Weekday()) - int(s.weekStartsOn) + 7) % 7
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location).
		AddDate(0, 0, -offset)

	dates := make([]string, 7)
	for i := 0; i < 7; i++ {
		dates[i] = start.AddDate(0, 0, i).Format(domain.DateFormat)
	}
	return dates
}

// DayType классифицирует дату как будний или выходной день
func (s *Service) DayType(date string) (DayType, error) {
	parsed, err := s.parseDate(date)
	if err != nil {
		return "", err
	}
	switch parsed.Weekday() {
	case time.Saturday, time.Sunday:
		return DayTypeWeekend, nil
	default:
		return DayTypeWeekday, nil
	}
}

// SlotsFor возвращает допустимые идентификаторы слотов для даты.
// Будни: 17..27 (17:30 — 03:30 следующего дня, 11 слотов).
// Выходные: 8..23 (08:00 — 23:00, 16 часовых слотов).
func (s *Service) SlotsFor(date string) ([]int, error) {
	dayType, err := s.DayType(date)
	if err != nil {
		return nil, err
	}

	if dayType == DayTypeWeekend {
		slots := make([]int, 0, domain.WeekendLastSlot-domain.WeekendFirstSlot+1)
		for slot := domain.WeekendFirstSlot; slot <= domain.WeekendLastSlot; slot++ {
			slots = append(slots, slot)
		}
		return slots, nil
	}

	slots := make([]int, 0, domain.WeekdaySlotCount)
	for i := 0; i < domain.WeekdaySlotCount; i++ {
		slots = append(slots, domain.WeekdayFirstSlot+i)
	}
	return slots, nil
}

// ContainsSlot проверяет, что слот входит в каталог для указанной даты
func (s *Service) ContainsSlot(date string, slot int) (bool, error) {
	slots, err := s.SlotsFor(date)
	if err != nil {
		return false, err
	}
	for _, candidate := range slots {
		if candidate == slot {
			return true, nil
		}
	}
	return false, nil
}

// SlotStart возвращает абсолютный момент начала слота.
// Слоты с id >= 24 переходят на следующий календарный день,
// часом начала остаётся slot mod 24. Будние слоты начинаются в :30,
// выходные — ровно в :00. Момент строится по настенным часам в
// настроенной таймзоне уже после переноса даты.
func (s *Service) SlotStart(date string, slot int) (time.Time, error) {
	parsed, err := s.parseDate(date)
	if err != nil {
		return time.Time{}, err
	}

	dayType, err := s.DayType(date)
	if err != nil {
		return time.Time{}, err
	}

	minute := domain.WeekendSlotMinute
	if dayType == DayTypeWeekday {
		minute = domain.WeekdaySlotMinute
	}

	day := parsed
	hour := slot
	if slot >= 24 {
		day = day.AddDate(0, 0, 1)
		hour = slot % 24
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, s.location), nil
}

// SlotLabel возвращает отображаемое время начала слота, например "17:30"
func (s *Service) SlotLabel(date string, slot int) (string, error) {
	dayType, err := s.DayType(date)
	if err != nil {
		return "", err
	}
	minute := domain.WeekendSlotMinute
	if dayType == DayTypeWeekday {
		minute = domain.WeekdaySlotMinute
	}
	return fmt.Sprintf("%02d:%02d", ((slot%24)+24)%24, minute), nil
}

func (s *Service) parseDate(date string) (time.Time, error) {
	parsed, err := time.ParseInLocation(domain.DateFormat, date, s.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("schedule: invalid date %q: %w", date, err)
	}
	return parsed, nil
}
