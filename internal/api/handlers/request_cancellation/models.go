package request_cancellation

import (
	"time"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/middleware"
	requestCancellation "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/usecase/request_cancellation"
)

// CancellationRequestRequest HTTP request model
type CancellationRequestRequest struct {
	BookingID string `json:"bookingId"`
	Reason    string `json:"reason"`
}

// CancellationRequestResponse HTTP response model
type CancellationRequestResponse struct {
	RequestID    string `json:"requestId"`
	Status       string `json:"status"`
	AutoApproved bool   `json:"autoApproved"`
	CreatedAt    string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancellationRequestRequest) ToUseCaseRequest(identity middleware.Identity) *requestCancellation.Request {
	return &requestCancellation.Request{
		UserID:    identity.UserID,
		UserEmail: identity.Email,
		UserName:  identity.Name,
		BookingID: r.BookingID,
		Reason:    r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestCancellation.Response) *CancellationRequestResponse {
	return &CancellationRequestResponse{
		RequestID:    resp.RequestID,
		Status:       resp.Status,
		AutoApproved: resp.AutoApproved,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
