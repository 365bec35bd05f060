package decide_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	decideBooking "github.com/m04kA/SMC-RentalService/internal/usecase/decide_booking"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type useCaseFunc func(ctx context.Context, req *decideBooking.Request) (*models.BookingResponse, error)

func (f useCaseFunc) Execute(ctx context.Context, req *decideBooking.Request) (*models.BookingResponse, error) {
	return f(ctx, req)
}

func serve(uc DecideBookingUseCase, bookingID, approved string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID+"?approved="+approved, nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	req = req.WithContext(middleware.WithUserID(req.Context(), 1))

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Approve(t *testing.T) {
	var got *decideBooking.Request
	uc := useCaseFunc(func(_ context.Context, req *decideBooking.Request) (*models.BookingResponse, error) {
		got = req
		return &models.BookingResponse{ID: req.BookingID, Status: "APPROVED"}, nil
	})

	rec := serve(uc, "5", "true")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"APPROVED"`)
	assert.Equal(t, &decideBooking.Request{DeciderID: 1, BookingID: 5, Approved: true}, got)
}

func TestHandle_InvalidParams(t *testing.T) {
	uc := useCaseFunc(func(context.Context, *decideBooking.Request) (*models.BookingResponse, error) {
		t.Fatal("use case must not be called")
		return nil, nil
	})

	assert.Equal(t, http.StatusBadRequest, serve(uc, "abc", "true").Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "5", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "5", "maybe").Code)
}

func TestHandle_Errors(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
	}{
		{decideBooking.ErrBookingCannotBeChanged, http.StatusBadRequest},
		{decideBooking.ErrAccessDenied, http.StatusNotFound},
		{decideBooking.ErrBookingNotFound, http.StatusNotFound},
		{decideBooking.ErrUserNotFound, http.StatusNotFound},
		{decideBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			uc := useCaseFunc(func(context.Context, *decideBooking.Request) (*models.BookingResponse, error) {
				return nil, tc.err
			})
			assert.Equal(t, tc.wantCode, serve(uc, "5", "false").Code)
		})
	}
}
