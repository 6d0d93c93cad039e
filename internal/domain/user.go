package domain

import "time"

// UserRole represents the role of a user
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is the identity record kept for every member that ever booked a slot.
// It is upserted as a side effect of creating a booking and is not part of
// the reservation invariants.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      UserRole
	CreatedAt time.Time
}
