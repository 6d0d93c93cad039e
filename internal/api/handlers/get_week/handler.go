package get_week

import (
	"net/http"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/handlers"
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

// Handle GET /api/v1/week
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetWeek(r.Context())
	if err != nil {
		h.logger.Error("GET /week - Failed to build week view: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view)
}
