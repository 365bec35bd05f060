package create_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type useCaseFunc func(ctx context.Context, req *createBooking.Request) (*models.BookingResponse, error)

func (f useCaseFunc) Execute(ctx context.Context, req *createBooking.Request) (*models.BookingResponse, error) {
	return f(ctx, req)
}

func serve(t *testing.T, uc CreateBookingUseCase, userID int64, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	var got *createBooking.Request
	uc := useCaseFunc(func(_ context.Context, req *createBooking.Request) (*models.BookingResponse, error) {
		got = req
		return &models.BookingResponse{ID: 1, Start: "2026-11-01T10:00:00", End: "2026-11-02T10:00:00", Status: "WAITING"}, nil
	})

	rec := serve(t, uc, 2, `{"itemId": 10, "start": "2026-11-01T10:00:00", "end": "2026-11-02T10:00:00"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"WAITING"`)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.BookerID)
	assert.Equal(t, int64(10), got.ItemID)
	assert.Equal(t, 10, got.Start.Hour())
}

func TestHandle_Errors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"user not found", createBooking.ErrUserNotFound, http.StatusNotFound},
		{"item not found", createBooking.ErrItemNotFound, http.StatusNotFound},
		{"own item", createBooking.ErrAccessDenied, http.StatusNotFound},
		{"unavailable", createBooking.ErrItemUnavailable, http.StatusBadRequest},
		{"time range", fmt.Errorf("%w: end is before start", createBooking.ErrInvalidTimeRange), http.StatusBadRequest},
		{"invalid input", createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := useCaseFunc(func(context.Context, *createBooking.Request) (*models.BookingResponse, error) {
				return nil, tc.err
			})

			rec := serve(t, uc, 2, `{"itemId": 10, "start": "2026-11-01T10:00:00", "end": "2026-11-02T10:00:00"}`)

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestHandle_BadRequest(t *testing.T) {
	uc := useCaseFunc(func(context.Context, *createBooking.Request) (*models.BookingResponse, error) {
		t.Fatal("use case must not be called")
		return nil, nil
	})

	assert.Equal(t, http.StatusBadRequest, serve(t, uc, 2, `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, uc, 2, `{"itemId": 10, "start": "tomorrow", "end": "2026-11-02T10:00:00"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(t, uc, 0, `{}`).Code)
}
