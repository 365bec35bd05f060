package get_owner_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type serviceFunc func(ctx context.Context, req *models.GetBookingsRequest) (*models.BookingListResponse, error)

func (f serviceFunc) GetOwnerBookings(ctx context.Context, req *models.GetBookingsRequest) (*models.BookingListResponse, error) {
	return f(ctx, req)
}

func TestHandle(t *testing.T) {
	var got *models.GetBookingsRequest
	svc := serviceFunc(func(_ context.Context, req *models.GetBookingsRequest) (*models.BookingListResponse, error) {
		got = req
		if req.State == "BOGUS" {
			return nil, bookings.ErrInvalidState
		}
		return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 9, Status: "WAITING"}}}, nil
	})
	h := NewHandler(svc, 10, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/owner?state=WAITING", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 1))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":9`)
	assert.Equal(t, &models.GetBookingsRequest{UserID: 1, State: "WAITING", From: 0, Size: 10}, got)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/bookings/owner?state=BOGUS", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 1))
	rec = httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Unknown state: BOGUS"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/owner", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
