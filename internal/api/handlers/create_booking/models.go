package create_booking

import (
	"time"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/middleware"
	createBooking "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date     string `json:"date"` // "2026-08-24"
	Slot     int    `json:"slot"`
	BandName string `json:"bandName"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
	Date      string `json:"date"`
	Slot      int    `json:"slot"`
	BandName  string `json:"bandName"`
	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(identity middleware.Identity) *createBooking.Request {
	return &createBooking.Request{
		UserID:    identity.UserID,
		UserEmail: identity.Email,
		UserName:  identity.Name,
		IsAdmin:   identity.IsAdmin,
		Date:      r.Date,
		Slot:      r.Slot,
		BandName:  r.BandName,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		UserID:    resp.UserID,
		UserEmail: resp.UserEmail,
		UserName:  resp.UserName,
		Date:      resp.Date,
		Slot:      resp.Slot,
		BandName:  resp.BandName,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
