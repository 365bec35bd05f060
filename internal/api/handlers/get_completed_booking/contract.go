package get_completed_booking

import "context"

type BookingService interface {
	HasCompletedBooking(ctx context.Context, itemID, userID int64) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
