package decide_booking

import (
	"strconv"

	decideBooking "github.com/m04kA/SMC-RentalService/internal/usecase/decide_booking"
)

// ToUseCaseRequest собирает запрос use case из пути и query параметра approved
func ToUseCaseRequest(deciderID int64, bookingIDStr, approvedStr string) (*decideBooking.Request, error) {
	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		return nil, err
	}

	approved, err := strconv.ParseBool(approvedStr)
	if err != nil {
		return nil, err
	}

	return &decideBooking.Request{
		DeciderID: deciderID,
		BookingID: bookingID,
		Approved:  approved,
	}, nil
}
