package domain

import "time"

// Booking represents a reserved practice-room slot.
// A booking is never physically deleted by the cancellation flow:
// cancellation only flips the Cancelled flag so the history stays intact.
// The administrative week reset is the only path that hard-deletes rows.
type Booking struct {
	ID        string
	UserID    string
	UserEmail string
	UserName  string
	Date      string // YYYY-MM-DD in the configured timezone
	Slot      int    // raw hour id, may be >= 24 for weekday slots crossing midnight
	BandName  string

	Cancelled        bool
	CancelledAt      *time.Time
	CancelledBy      *string
	CancelledByEmail *string

	CreatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot.
func (b *Booking) IsActive() bool {
	return !b.Cancelled
}
