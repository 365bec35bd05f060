package get_booker_bookings

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

// Handle GET /api/v1/bookings?state=&from=&size=
// Возвращает бронирования, сделанные пользователем
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(r, userID, h.defaultSize)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPage)
		return
	}

	result, err := h.service.GetBookerBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidState):
			h.logger.Warn("GET /bookings - Unknown state: %s", serviceReq.State)
			handlers.RespondBadRequest(w, fmt.Sprintf("Unknown state: %s", serviceReq.State))

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid pagination: from=%d, size=%d", serviceReq.From, serviceReq.Size)
			handlers.RespondBadRequest(w, msgInvalidPage)

		case errors.Is(err, bookings.ErrUserNotFound):
			h.logger.Warn("GET /bookings - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("GET /bookings - Failed to get bookings: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: user_id=%d, count=%d",
		userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
