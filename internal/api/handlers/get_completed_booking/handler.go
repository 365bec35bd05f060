package get_completed_booking

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
)

const msgInvalidParams = "некорректный ID вещи или пользователя"

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

// Handle GET /internal/items/{itemId}/bookers/{userId}/completed
// Внутренний эндпоинт: есть ли у пользователя завершённая подтверждённая аренда вещи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	itemID, err := strconv.ParseInt(vars["itemId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /internal/items/{id}/bookers/{id}/completed - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /internal/items/{id}/bookers/{id}/completed - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	completed, err := h.service.HasCompletedBooking(r.Context(), itemID, userID)
	if err != nil {
		h.logger.Error("GET /internal/items/{id}/bookers/{id}/completed - Failed: item_id=%d, user_id=%d, error=%v",
			itemID, userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CompletedBookingResponse{
		ItemID:    itemID,
		UserID:    userID,
		Completed: completed,
	})
}
