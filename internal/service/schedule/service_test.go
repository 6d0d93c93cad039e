package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/service/schedule"
)

func mustService(t *testing.T, weekStartsOn int) *schedule.Service {
	t.Helper()
	svc, err := schedule.New("Asia/Kolkata", weekStartsOn)
	require.NoError(t, err)
	return svc
}

func istTime(t *testing.T, value string) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	parsed, err := time.ParseInLocation("2006-01-02 15:04", value, loc)
	require.NoError(t, err)
	return parsed
}

func TestNew_InvalidTimezone(t *testing.T) {
	_, err := schedule.New("Not/AZone", 0)
	assert.Error(t, err)
}

func TestNew_WeekStartOutOfRange(t *testing.T) {
	_, err := schedule.New("Asia/Kolkata", 7)
	assert.Error(t, err)
}

func TestCurrentWeek_MidWeek(t *testing.T) {
	svc := mustService(t, 0) // неделя начинается с воскресенья

	// Среда 2026-08-26 -> неделя 2026-08-23 (вс) .. 2026-08-29 (сб)
	dates := svc.CurrentWeek(istTime(t, "2026-08-26 12:00"))

	require.Len(t, dates, 7)
	assert.Equal(t, "2026-08-23", dates[0])
	assert.Equal(t, "2026-08-26", dates[3])
	assert.Equal(t, "2026-08-29", dates[6])
}

func TestCurrentWeek_OnWeekStartDay(t *testing.T) {
	svc := mustService(t, 0)

	dates := svc.CurrentWeek(istTime(t, "2026-08-23 00:05"))

	assert.Equal(t, "2026-08-23", dates[0])
	assert.Equal(t, "2026-08-29", dates[6])
}

func TestCurrentWeek_MondayStart(t *testing.T) {
	svc := mustService(t, 1)

	dates := svc.CurrentWeek(istTime(t, "2026-08-26 12:00"))

	assert.Equal(t, "2026-08-24", dates[0])
	assert.Equal(t, "2026-08-30", dates[6])
}

func TestCurrentWeek_TimezoneBoundary(t *testing.T) {
	svc := mustService(t, 0)

	// Суббота 20:00 UTC = воскресенье 01:30 IST: неделя уже перевернулась
	now := time.Date(2026, 8, 22, 20, 0, 0, 0, time.UTC)
	dates := svc.CurrentWeek(now)

	assert.Equal(t, "2026-08-23", dates[0])
}

func TestDayType(t *testing.T) {
	svc := mustService(t, 0)

	tests := []struct {
		date string
		want schedule.DayType
	}{
		{"2026-08-24", schedule.DayTypeWeekday}, // понедельник
		{"2026-08-28", schedule.DayTypeWeekday}, // пятница
		{"2026-08-29", schedule.DayTypeWeekend}, // суббота
		{"2026-08-30", schedule.DayTypeWeekend}, // воскресенье
	}
	for _, tt := range tests {
		got, err := svc.DayType(tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "date %s", tt.date)
	}
}

func TestDayType_InvalidDate(t *testing.T) {
	svc := mustService(t, 0)

	_, err := svc.DayType("26-08-2026")
	assert.Error(t, err)
}

func TestSlotsFor_Weekday(t *testing.T) {
	svc := mustService(t, 0)

	slots, err := svc.SlotsFor("2026-08-26")
	require.NoError(t, err)

	require.Len(t, slots, 11)
	assert.Equal(t, 17, slots[0])
	assert.Equal(t, 27, slots[10])
}

func TestSlotsFor_Weekend(t *testing.T) {
	svc := mustService(t, 0)

	slots, err := svc.SlotsFor("2026-08-29")
	require.NoError(t, err)

	require.Len(t, slots, 16)
	assert.Equal(t, 8, slots[0])
	assert.Equal(t, 23, slots[15])
}

func TestContainsSlot(t *testing.T) {
	svc := mustService(t, 0)

	tests := []struct {
		date string
		slot int
		want bool
	}{
		{"2026-08-26", 17, true},
		{"2026-08-26", 27, true},
		{"2026-08-26", 16, false},
		{"2026-08-26", 28, false},
		{"2026-08-26", 8, false}, // выходной слот в будний день
		{"2026-08-29", 8, true},
		{"2026-08-29", 23, true},
		{"2026-08-29", 7, false},
		{"2026-08-29", 24, false},
	}
	for _, tt := range tests {
		got, err := svc.ContainsSlot(tt.date, tt.slot)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "date %s slot %d", tt.date, tt.slot)
	}
}

func TestSlotStart_Weekday(t *testing.T) {
	svc := mustService(t, 0)

	start, err := svc.SlotStart("2026-08-26", 17)
	require.NoError(t, err)

	assert.Equal(t, istTime(t, "2026-08-26 17:30"), start)
}

func TestSlotStart_WeekdayRollsToNextDay(t *testing.T) {
	svc := mustService(t, 0)

	// Слот 27 буднего дня начинается в 03:30 следующего календарного дня
	start, err := svc.SlotStart("2026-08-26", 27)
	require.NoError(t, err)

	assert.Equal(t, istTime(t, "2026-08-27 03:30"), start)
}

func TestSlotStart_Weekend(t *testing.T) {
	svc := mustService(t, 0)

	start, err := svc.SlotStart("2026-08-29", 8)
	require.NoError(t, err)

	assert.Equal(t, istTime(t, "2026-08-29 08:00"), start)
}

func TestSlotLabel(t *testing.T) {
	svc := mustService(t, 0)

	tests := []struct {
		date string
		slot int
		want string
	}{
		{"2026-08-26", 17, "17:30"},
		{"2026-08-26", 25, "01:30"},
		{"2026-08-29", 8, "08:00"},
		{"2026-08-29", 23, "23:00"},
	}
	for _, tt := range tests {
		got, err := svc.SlotLabel(tt.date, tt.slot)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "date %s slot %d", tt.date, tt.slot)
	}
}
