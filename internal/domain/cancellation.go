package domain

import "time"

// RequestStatus represents the status of a cancellation request
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// CancellationRequest represents a request to cancel a booking.
// The (Date, Slot, BandName) triple is snapshotted from the booking at
// creation time and never recomputed afterwards.
// Once the status leaves pending it is terminal.
type CancellationRequest struct {
	ID        string
	BookingID string
	UserID    string
	UserEmail string
	UserName  string
	Date      string
	Slot      int
	BandName  string
	Reason    string

	Status       RequestStatus
	AutoApproved bool

	AdminResponse    *string
	AdminRespondedAt *time.Time
	AdminID          *string
	AdminEmail       *string

	CreatedAt time.Time
}

// IsPending returns true if the request has not been resolved yet.
func (r *CancellationRequest) IsPending() bool {
	return r.Status == RequestPending
}

// IsValidRequestStatus reports whether s is a known request status.
func IsValidRequestStatus(s string) bool {
	switch RequestStatus(s) {
	case RequestPending, RequestApproved, RequestRejected:
		return true
	default:
		return false
	}
}
