package resolve_cancellation

import (
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/middleware"
	resolveCancellation "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/usecase/resolve_cancellation"
)

// ResolveRequest HTTP request model
type ResolveRequest struct {
	Action   string `json:"action"` // "approve" | "reject"
	Response string `json:"adminResponse,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ResolveRequest) ToUseCaseRequest(identity middleware.Identity, requestID string) *resolveCancellation.Request {
	return &resolveCancellation.Request{
		AdminID:    identity.UserID,
		AdminEmail: identity.Email,
		IsAdmin:    identity.IsAdmin,
		RequestID:  requestID,
		Action:     resolveCancellation.Action(r.Action),
		Response:   r.Response,
	}
}
