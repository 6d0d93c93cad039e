package request_cancellation

import (
	"errors"
	"net/http"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/handlers"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/middleware"
	requestCancellation "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/usecase/request_cancellation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingIdentity    = "отсутствует идентификатор пользователя"
	msgInvalidInput       = "некорректные данные запроса на отмену"
	msgBookingNotFound    = "бронирование не найдено"
	msgNotOwner           = "можно отменять только свои бронирования"
	msgDuplicateRequest   = "по этому бронированию уже есть необработанный запрос"
)

type Handler struct {
	useCase RequestCancellationUseCase
	logger  Logger
}

func NewHandler(useCase RequestCancellationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/cancellation-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CancellationRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cancellation-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /cancellation-requests - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(identity))
	if err != nil {
		switch {
		case errors.Is(err, requestCancellation.ErrInvalidInput):
			h.logger.Warn("POST /cancellation-requests - Invalid input: user_id=%s", identity.UserID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, requestCancellation.ErrBookingNotFound):
			h.logger.Warn("POST /cancellation-requests - Booking not found: user_id=%s, booking_id=%s",
				identity.UserID, req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, requestCancellation.ErrNotOwner):
			h.logger.Warn("POST /cancellation-requests - Not owner: user_id=%s, booking_id=%s",
				identity.UserID, req.BookingID)
			handlers.RespondForbidden(w, msgNotOwner)

		case errors.Is(err, requestCancellation.ErrDuplicateRequest):
			h.logger.Warn("POST /cancellation-requests - Duplicate request: user_id=%s, booking_id=%s",
				identity.UserID, req.BookingID)
			handlers.RespondConflict(w, msgDuplicateRequest)

		default:
			h.logger.Error("POST /cancellation-requests - Failed to create request: user_id=%s, booking_id=%s, error=%v",
				identity.UserID, req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cancellation-requests - Request created: request_id=%s, user_id=%s, status=%s, auto_approved=%t",
		result.RequestID, identity.UserID, result.Status, result.AutoApproved)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
