package decide_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	decideBooking "github.com/m04kA/SMC-RentalService/internal/usecase/decide_booking"
)

const (
	msgInvalidParams   = "некорректный ID бронирования или параметр approved"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgUserNotFound    = "пользователь не найден"
	msgNotFound        = "бронирование не найдено"
	msgItemNotFound    = "вещь не найдена"
	msgNotOwner        = "подтверждать бронирование может только владелец вещи"
	msgCannotBeChanged = "статус бронирования уже нельзя изменить"
)

type Handler struct {
	useCase DecideBookingUseCase
	logger  Logger
}

func NewHandler(useCase DecideBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}?approved=true|false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := ToUseCaseRequest(userID, mux.Vars(r)["bookingId"], r.URL.Query().Get("approved"))
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, decideBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, decideBooking.ErrUserNotFound):
			h.logger.Warn("PATCH /bookings/{id} - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, decideBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, decideBooking.ErrItemNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Item not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, decideBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id} - Access denied: booking_id=%d, user_id=%d", req.BookingID, userID)
			handlers.RespondNotFound(w, msgNotOwner)

		case errors.Is(err, decideBooking.ErrBookingCannotBeChanged):
			h.logger.Warn("PATCH /bookings/{id} - Cannot be changed: booking_id=%d", req.BookingID)
			handlers.RespondBadRequest(w, msgCannotBeChanged)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to decide booking: booking_id=%d, error=%v",
				req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking decided: booking_id=%d, status=%s", result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
