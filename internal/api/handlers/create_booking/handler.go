package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты, ожидается YYYY-MM-DDTHH:MM:SS"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные бронирования"
	msgUserNotFound       = "пользователь не найден"
	msgItemNotFound       = "вещь не найдена"
	msgOwnItem            = "владелец не может бронировать свою вещь"
	msgItemUnavailable    = "вещь недоступна для бронирования"
	msgStartEqualsEnd     = "начало и окончание бронирования совпадают"
	msgEndBeforeStart     = "окончание бронирования раньше начала"
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
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrItemNotFound):
			h.logger.Warn("POST /bookings - Item not found: item_id=%d", req.ItemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, createBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings - Owner books own item: user_id=%d, item_id=%d", userID, req.ItemID)
			handlers.RespondNotFound(w, msgOwnItem)

		case errors.Is(err, createBooking.ErrItemUnavailable):
			h.logger.Warn("POST /bookings - Item unavailable: item_id=%d", req.ItemID)
			handlers.RespondBadRequest(w, msgItemUnavailable)

		case errors.Is(err, createBooking.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: start=%s, end=%s", req.Start, req.End)
			if useCaseReq.Start.Equal(useCaseReq.End) {
				handlers.RespondBadRequest(w, msgStartEqualsEnd)
			} else {
				handlers.RespondBadRequest(w, msgEndBeforeStart)
			}

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, item_id=%d, error=%v",
				userID, req.ItemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, item_id=%d",
		result.ID, userID, req.ItemID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
