package resolve_cancellation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/handlers"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/middleware"
	resolveCancellation "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/usecase/resolve_cancellation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingIdentity    = "отсутствует идентификатор пользователя"
	msgMissingRequestID   = "отсутствует ID запроса на отмену"
	msgAdminRequired      = "требуются права администратора"
	msgInvalidAction      = "действие должно быть approve или reject"
	msgInvalidInput       = "некорректные данные запроса"
	msgRequestNotFound    = "запрос на отмену не найден"
	msgAlreadyProcessed   = "запрос на отмену уже обработан"
)

type Handler struct {
	useCase ResolveCancellationUseCase
	logger  Logger
}

func NewHandler(useCase ResolveCancellationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/cancellation-requests/{requestId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := vars["requestId"]
	if requestID == "" {
		h.logger.Warn("PATCH /cancellation-requests/{id} - Missing request ID")
		handlers.RespondBadRequest(w, msgMissingRequestID)
		return
	}

	var req ResolveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /cancellation-requests/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("PATCH /cancellation-requests/{id} - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	if err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(identity, requestID)); err != nil {
		switch {
		case errors.Is(err, resolveCancellation.ErrAdminRequired):
			h.logger.Warn("PATCH /cancellation-requests/{id} - Admin required: user_id=%s", identity.UserID)
			handlers.RespondForbidden(w, msgAdminRequired)

		case errors.Is(err, resolveCancellation.ErrInvalidAction):
			h.logger.Warn("PATCH /cancellation-requests/{id} - Invalid action: admin_id=%s, action=%s",
				identity.UserID, req.Action)
			handlers.RespondBadRequest(w, msgInvalidAction)

		case errors.Is(err, resolveCancellation.ErrInvalidInput):
			h.logger.Warn("PATCH /cancellation-requests/{id} - Invalid input: admin_id=%s", identity.UserID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, resolveCancellation.ErrRequestNotFound):
			h.logger.Warn("PATCH /cancellation-requests/{id} - Request not found: request_id=%s", requestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, resolveCancellation.ErrAlreadyProcessed):
			h.logger.Warn("PATCH /cancellation-requests/{id} - Already processed: request_id=%s", requestID)
			handlers.RespondConflict(w, msgAlreadyProcessed)

		default:
			h.logger.Error("PATCH /cancellation-requests/{id} - Failed to resolve request: request_id=%s, admin_id=%s, error=%v",
				requestID, identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /cancellation-requests/{id} - Request resolved: request_id=%s, admin_id=%s, action=%s",
		requestID, identity.UserID, req.Action)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
