package reset_week

import (
	"errors"
	"net/http"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/handlers"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/middleware"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/service/weekview"
)

const (
	msgMissingIdentity = "отсутствует идентификатор пользователя"
	msgAdminRequired   = "требуются права администратора"
)

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

// Handle POST /api/v1/reset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /reset - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	result, err := h.service.ResetWeek(r.Context(), identity.IsAdmin)
	if err != nil {
		switch {
		case errors.Is(err, weekview.ErrAdminRequired):
			h.logger.Warn("POST /reset - Admin required: user_id=%s", identity.UserID)
			handlers.RespondForbidden(w, msgAdminRequired)

		default:
			h.logger.Error("POST /reset - Failed to reset week: admin_id=%s, error=%v", identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reset - Week reset by admin: admin_id=%s, deleted=%d", identity.UserID, result.DeletedCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
