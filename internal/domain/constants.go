package domain

import "time"

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Slot catalog constants.
// Weekday slots run from 17:30 to 03:30 the next morning; the raw slot id
// keeps growing past 23 so that slots crossing midnight stay ordered.
// Weekend slots are plain hourly slots from 08:00 to 23:00.
const (
	WeekdayFirstSlot = 17
	WeekdaySlotCount = 11 // 17..27
	WeekendFirstSlot = 8
	WeekendLastSlot  = 23 // 8..23, 16 slots

	// Weekday slots start at half past the hour, weekend slots on the hour.
	WeekdaySlotMinute = 30
	WeekendSlotMinute = 0
)

// Booking rule defaults
const (
	DefaultWeekendMaxSlotsPerBand = 2
	DefaultWeekStartsOn           = 0 // Sunday
	DefaultTimezone               = "Asia/Kolkata"

	// MaxReasonLength ограничение на длину причины отмены
	MaxReasonLength = 500
)

// AutoApproveNotice is the minimum time before slot start for a
// cancellation request to be approved without admin review.
// The boundary is inclusive: a request exactly 2h before the start is eligible.
const AutoApproveNotice = 2 * time.Hour
