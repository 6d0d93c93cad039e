package list_cancellation_requests

import (
	"errors"
	"net/http"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/handlers"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/middleware"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/service/weekview"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/service/weekview/models"
)

const (
	msgMissingIdentity = "отсутствует идентификатор пользователя"
	msgAdminRequired   = "требуются права администратора"
)

// ListResponse HTTP response model
type ListResponse struct {
	Requests []models.RequestView `json:"requests"`
}

type Handler struct {
	service WeekViewService
	logger  Logger
}

func NewHandler(service WeekViewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/cancellation-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("GET /cancellation-requests - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	requests, err := h.service.ListCancellationRequests(r.Context(), identity.IsAdmin)
	if err != nil {
		switch {
		case errors.Is(err, weekview.ErrAdminRequired):
			h.logger.Warn("GET /cancellation-requests - Admin required: user_id=%s", identity.UserID)
			handlers.RespondForbidden(w, msgAdminRequired)

		default:
			h.logger.Error("GET /cancellation-requests - Failed to list requests: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ListResponse{Requests: requests})
}
