package create_booking

import (
	"errors"
	"net/http"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/handlers"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/middleware"
	createBooking "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingIdentity    = "отсутствует идентификатор пользователя"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidSlot        = "дата или слот недоступны для бронирования"
	msgDailyLimitReached  = "превышен дневной лимит бронирований"
	msgSlotTaken          = "выбранный слот уже занят"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Получаем identity из контекста (через middleware Auth)
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(identity))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s", identity.UserID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrInvalidSlot):
			h.logger.Warn("POST /bookings - Slot not bookable: user_id=%s, date=%s, slot=%d",
				identity.UserID, req.Date, req.Slot)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createBooking.ErrDailyLimitReached):
			h.logger.Warn("POST /bookings - Daily limit reached: user_id=%s, date=%s",
				identity.UserID, req.Date)
			handlers.RespondBadRequest(w, msgDailyLimitReached)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: user_id=%s, date=%s, slot=%d",
				identity.UserID, req.Date, req.Slot)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, error=%v",
				identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, date=%s, slot=%d",
		result.ID, identity.UserID, result.Date, result.Slot)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
