package decide_booking

import "fmt"

func validateRequest(req *Request) error {
	if req.DeciderID <= 0 {
		return fmt.Errorf("%w: deciderID must be positive", ErrInvalidInput)
	}

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	return nil
}
