package get_booker_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
)

// ToServiceRequest читает state, from и size из query.
// Проверка значений остаётся сервису.
func ToServiceRequest(r *http.Request, userID int64, defaultSize int) (*models.GetBookingsRequest, error) {
	from, err := handlers.QueryInt(r, "from", domain.DefaultPageFrom)
	if err != nil {
		return nil, err
	}

	size, err := handlers.QueryInt(r, "size", defaultSize)
	if err != nil {
		return nil, err
	}

	return &models.GetBookingsRequest{
		UserID: userID,
		State:  r.URL.Query().Get("state"),
		From:   from,
		Size:   size,
	}, nil
}
