package models

import (
	"time"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/domain"
)

// WeekView собранный вид текущей недели: окно дат, бронирования,
// карта занятости и запросы на отмену
type WeekView struct {
	Dates                []string                        `json:"dates"`
	Days                 []DayView                       `json:"days"`
	Bookings             []BookingView                   `json:"bookings"`
	DateSlotMap          map[string]map[int]SlotOccupant `json:"dateSlotMap"`
	CancellationRequests []RequestView                   `json:"cancellationRequests"`
}

// DayView описание одного дня недели: тип дня и каталог слотов
type DayView struct {
	Date    string     `json:"date"`
	DayType string     `json:"dayType"`
	Slots   []SlotView `json:"slots"`
}

// SlotView слот каталога с отображаемым временем начала
type SlotView struct {
	Slot  int    `json:"slot"`
	Label string `json:"label"` // например "17:30"
}

// BookingView бронирование в недельном виде
type BookingView struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	UserEmail        string     `json:"userEmail"`
	UserName         string     `json:"userName"`
	Date             string     `json:"date"`
	Slot             int        `json:"slot"`
	BandName         string     `json:"bandName"`
	Cancelled        bool       `json:"cancelled,omitempty"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy      *string    `json:"cancelledBy,omitempty"`
	CancelledByEmail *string    `json:"cancelledByEmail,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// SlotOccupant запись карты занятости (date -> slot -> бронирование)
type SlotOccupant struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	BandName  string `json:"bandName"`
}

// RequestView запрос на отмену в недельном виде
type RequestView struct {
	ID               string     `json:"id"`
	BookingID        string     `json:"bookingId"`
	UserID           string     `json:"userId"`
	UserEmail        string     `json:"userEmail"`
	UserName         string     `json:"userName"`
	Date             string     `json:"date"`
	Slot             int        `json:"slot"`
	BandName         string     `json:"bandName"`
	Reason           string     `json:"reason"`
	Status           string     `json:"status"`
	AutoApproved     bool       `json:"autoApproved,omitempty"`
	AdminResponse    *string    `json:"adminResponse,omitempty"`
	AdminRespondedAt *time.Time `json:"adminRespondedAt,omitempty"`
	AdminEmail       *string    `json:"adminEmail,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// ResetResult результат сброса недели
type ResetResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// FromDomainBooking конвертирует domain.Booking в BookingView
func FromDomainBooking(b *domain.Booking) BookingView {
	return BookingView{
		ID:               b.ID,
		UserID:           b.UserID,
		UserEmail:        b.UserEmail,
		UserName:         b.UserName,
		Date:             b.Date,
		Slot:             b.Slot,
		BandName:         b.BandName,
		Cancelled:        b.Cancelled,
		CancelledAt:      b.CancelledAt,
		CancelledBy:      b.CancelledBy,
		CancelledByEmail: b.CancelledByEmail,
		CreatedAt:        b.CreatedAt,
	}
}

// FromDomainRequest конвертирует domain.CancellationRequest в RequestView
func FromDomainRequest(r *domain.CancellationRequest) RequestView {
	return RequestView{
		ID:               r.ID,
		BookingID:        r.BookingID,
		UserID:           r.UserID,
		UserEmail:        r.UserEmail,
		UserName:         r.UserName,
		Date:             r.Date,
		Slot:             r.Slot,
		BandName:         r.BandName,
		Reason:           r.Reason,
		Status:           string(r.Status),
		AutoApproved:     r.AutoApproved,
		AdminResponse:    r.AdminResponse,
		AdminRespondedAt: r.AdminRespondedAt,
		AdminEmail:       r.AdminEmail,
		CreatedAt:        r.CreatedAt,
	}
}

// FromDomainRequestList конвертирует слайс запросов на отмену
func FromDomainRequestList(requests []*domain.CancellationRequest) []RequestView {
	views := make([]RequestView, 0, len(requests))
	for _, r := range requests {
		views = append(views, FromDomainRequest(r))
	}
	return views
}
