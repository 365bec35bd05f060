package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ItemID int64  `json:"itemId"`
	Start  string `json:"start"` // "2026-10-15T12:00:00"
	End    string `json:"end"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(bookerID int64) (*createBooking.Request, error) {
	start, err := handlers.ParseDateTime(r.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	end, err := handlers.ParseDateTime(r.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return &createBooking.Request{
		BookerID: bookerID,
		ItemID:   r.ItemID,
		Start:    start,
		End:      end,
	}, nil
}
