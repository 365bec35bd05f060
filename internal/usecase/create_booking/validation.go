package create_booking

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookerID <= 0 {
		return fmt.Errorf("%w: bookerID must be positive", ErrInvalidInput)
	}

	if req.ItemID <= 0 {
		return fmt.Errorf("%w: itemID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	if req.End.IsZero() {
		return fmt.Errorf("%w: end is required", ErrInvalidInput)
	}

	return nil
}

// validateTimeRange проверяет start < end
func validateTimeRange(start, end time.Time) error {
	if start.Equal(end) {
		return fmt.Errorf("%w: start equals end", ErrInvalidTimeRange)
	}

	if end.Before(start) {
		return fmt.Errorf("%w: end is before start", ErrInvalidTimeRange)
	}

	return nil
}
