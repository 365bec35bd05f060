package decide_booking

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	decideBooking "github.com/m04kA/SMC-RentalService/internal/usecase/decide_booking"
)

type DecideBookingUseCase interface {
	Execute(ctx context.Context, req *decideBooking.Request) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
