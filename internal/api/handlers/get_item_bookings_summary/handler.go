package get_item_bookings_summary

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings"
)

const (
	msgInvalidItemID = "некорректный ID вещи"
	msgMissingUserID = "отсутствует ID пользователя"
	msgUserNotFound  = "пользователь не найден"
	msgItemNotFound  = "вещь не найдена"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/items/{itemId}/bookings/summary
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(mux.Vars(r)["itemId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /items/{id}/bookings/summary - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /items/{id}/bookings/summary - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	summary, err := h.service.GetItemBookingsSummary(r.Context(), itemID, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrUserNotFound):
			h.logger.Warn("GET /items/{id}/bookings/summary - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, bookings.ErrItemNotFound):
			h.logger.Warn("GET /items/{id}/bookings/summary - Item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		default:
			h.logger.Error("GET /items/{id}/bookings/summary - Failed to get summary: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}
