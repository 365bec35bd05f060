package get_owner_bookings

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidPage   = "некорректные параметры пагинации: from >= 0, size >= 1"
	msgUserNotFound  = "пользователь не найден"
)

type Handler struct {
	service     BookingService
	defaultSize int
	logger      Logger
}

func NewHandler(service BookingService, defaultSize int, logger Logger) *Handler {
	return &Handler{
		service:     service,
		defaultSize: defaultSize,
		logger:      logger,
	}
}

// Handle GET /api/v1/bookings/owner?state=&from=&size=
// Возвращает бронирования вещей пользователя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/owner - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(r, userID, h.defaultSize)
	if err != nil {
		h.logger.Warn("GET /bookings/owner - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPage)
		return
	}

	result, err := h.service.GetOwnerBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidState):
			h.logger.Warn("GET /bookings/owner - Unknown state: %s", serviceReq.State)
			handlers.RespondBadRequest(w, fmt.Sprintf("Unknown state: %s", serviceReq.State))

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/owner - Invalid pagination: from=%d, size=%d", serviceReq.From, serviceReq.Size)
			handlers.RespondBadRequest(w, msgInvalidPage)

		case errors.Is(err, bookings.ErrUserNotFound):
			h.logger.Warn("GET /bookings/owner - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("GET /bookings/owner - Failed to get bookings: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/owner - Bookings retrieved successfully: user_id=%d, count=%d",
		userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
