package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-RentalService/internal/integrations/itemservice"
	"github.com/m04kA/SMC-RentalService/internal/integrations/userservice"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

const (
	ownerID    int64 = 1
	bookerID   int64 = 2
	strangerID int64 = 3
	itemID     int64 = 10
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// fakeDirectory справочник пользователей и вещей в памяти
type fakeDirectory struct {
	users map[int64]*domain.User
	items map[int64]*domain.Item
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		users: map[int64]*domain.User{
			ownerID:    {ID: ownerID, Name: "Владелец", Email: "owner@example.com"},
			bookerID:   {ID: bookerID, Name: "Арендатор", Email: "booker@example.com"},
			strangerID: {ID: strangerID, Name: "Прохожий", Email: "stranger@example.com"},
		},
		items: map[int64]*domain.Item{
			itemID: {ID: itemID, Name: "Дрель", Description: "Ударная", Available: true, OwnerID: ownerID},
		},
	}
}

func (d *fakeDirectory) GetUser(_ context.Context, id int64) (*domain.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	return u, nil
}

func (d *fakeDirectory) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := d.users[id]
	return ok, nil
}

func (d *fakeDirectory) GetItem(_ context.Context, id int64) (*domain.Item, error) {
	i, ok := d.items[id]
	if !ok {
		return nil, itemservice.ErrItemNotFound
	}
	return i, nil
}

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

type fixture struct {
	svc  *Service
	repo *memory.BookingRepository
	dir  *fakeDirectory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := memory.NewBookingRepository()
	dir := newFakeDirectory()
	svc := NewService(repo, dir, dir, logger.NewNop())
	svc.timeProvider = fixedClock{now: testNow}

	return &fixture{svc: svc, repo: repo, dir: dir}
}

func (f *fixture) seed(t *testing.T, start, end time.Time, status domain.BookingStatus) *domain.Booking {
	t.Helper()

	b, err := f.repo.Create(context.Background(), &domain.Booking{
		ItemID:      itemID,
		BookerID:    bookerID,
		ItemOwnerID: ownerID,
		Start:       start,
		End:         end,
		Status:      status,
	})
	require.NoError(t, err)
	return b
}

func ids(resp *models.BookingListResponse) []int64 {
	out := make([]int64, 0, len(resp.Bookings))
	for _, b := range resp.Bookings {
		out = append(out, b.ID)
	}
	return out
}

func TestService_GetByID(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t, testNow.Add(time.Hour), testNow.Add(2*time.Hour), domain.StatusWaiting)
	ctx := context.Background()

	t.Run("booker sees booking", func(t *testing.T) {
		resp, err := f.svc.GetByID(ctx, b.ID, bookerID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, resp.ID)
		assert.Equal(t, "WAITING", resp.Status)
		assert.Equal(t, "Арендатор", resp.Booker.Name)
		assert.Equal(t, "Дрель", resp.Item.Name)
	})

	t.Run("owner sees booking", func(t *testing.T) {
		resp, err := f.svc.GetByID(ctx, b.ID, ownerID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, resp.ID)
	})

	t.Run("third party is denied", func(t *testing.T) {
		_, err := f.svc.GetByID(ctx, b.ID, strangerID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.svc.GetByID(ctx, b.ID, 404)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := f.svc.GetByID(ctx, 999, bookerID)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_GetBookerBookings_AllAndWaiting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Пять будущих бронирований с разным началом, два подтверждены
	var created []*domain.Booking
	for i := 1; i <= 5; i++ {
		start := testNow.Add(time.Duration(i) * time.Hour)
		created = append(created, f.seed(t, start, start.Add(30*time.Minute), domain.StatusWaiting))
	}
	require.NoError(t, f.repo.UpdateStatus(ctx, created[0].ID, domain.StatusApproved))
	require.NoError(t, f.repo.UpdateStatus(ctx, created[2].ID, domain.StatusApproved))

	all, err := f.svc.GetBookerBookings(ctx, &models.GetBookingsRequest{UserID: bookerID, State: "ALL", From: 0, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 4, 3, 2, 1}, ids(all))

	waiting, err := f.svc.GetBookerBookings(ctx, &models.GetBookingsRequest{UserID: bookerID, State: "WAITING", From: 0, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 4, 2}, ids(waiting))

	owner, err := f.svc.GetOwnerBookings(ctx, &models.GetBookingsRequest{UserID: ownerID, State: "", From: 0, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 4, 3, 2, 1}, ids(owner))

	none, err := f.svc.GetOwnerBookings(ctx, &models.GetBookingsRequest{UserID: strangerID, State: "ALL", From: 0, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, none.Bookings)
}

func TestService_GetBookerBookings_TemporalBuckets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	past := f.seed(t, testNow.Add(-3*time.Hour), testNow.Add(-2*time.Hour), domain.StatusApproved)
	current := f.seed(t, testNow.Add(-time.Hour), testNow.Add(time.Hour), domain.StatusApproved)
	future := f.seed(t, testNow.Add(2*time.Hour), testNow.Add(3*time.Hour), domain.StatusWaiting)
	rejected := f.seed(t, testNow.Add(4*time.Hour), testNow.Add(5*time.Hour), domain.StatusRejected)

	cases := []struct {
		state string
		want  []int64
	}{
		{"PAST", []int64{past.ID}},
		{"CURRENT", []int64{current.ID}},
		{"FUTURE", []int64{rejected.ID, future.ID}},
		{"REJECTED", []int64{rejected.ID}},
		{"future", []int64{rejected.ID, future.ID}},
	}

	for _, tc := range cases {
		t.Run(tc.state, func(t *testing.T) {
			resp, err := f.svc.GetBookerBookings(ctx, &models.GetBookingsRequest{UserID: bookerID, State: tc.state, From: 0, Size: 10})
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(resp))
		})
	}
}

func TestService_GetBookerBookings_Pagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		start := testNow.Add(time.Duration(i) * time.Hour)
		f.seed(t, start, start.Add(time.Minute), domain.StatusWaiting)
	}

	resp, err := f.svc.GetBookerBookings(ctx, &models.GetBookingsRequest{UserID: bookerID, State: "ALL", From: 2, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2}, ids(resp))

	// from не кратен size: страница = from/size
	resp, err = f.svc.GetBookerBookings(ctx, &models.GetBookingsRequest{UserID: bookerID, State: "ALL", From: 3, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2}, ids(resp))

	_, err = f.svc.GetBookerBookings(ctx, &models.GetBookingsRequest{UserID: bookerID, State: "ALL", From: -1, Size: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.GetBookerBookings(ctx, &models.GetBookingsRequest{UserID: bookerID, State: "ALL", From: 0, Size: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetBookerBookings_UnknownStateSkipsStore(t *testing.T) {
	repo := &mockRepository{}
	dir := newFakeDirectory()
	svc := NewService(repo, dir, dir, logger.NewNop())

	_, err := svc.GetBookerBookings(context.Background(), &models.GetBookingsRequest{UserID: bookerID, State: "BOGUS", From: 0, Size: 10})

	require.ErrorIs(t, err, ErrInvalidState)
	assert.Contains(t, err.Error(), "BOGUS")
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestService_GetOwnerBookings_UnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetOwnerBookings(context.Background(), &models.GetBookingsRequest{UserID: 404, State: "ALL", From: 0, Size: 10})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_List_RepositoryError(t *testing.T) {
	repo := &mockRepository{}
	repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))
	dir := newFakeDirectory()
	svc := NewService(repo, dir, dir, logger.NewNop())

	_, err := svc.GetBookerBookings(context.Background(), &models.GetBookingsRequest{UserID: bookerID, State: "ALL", From: 0, Size: 10})

	assert.ErrorIs(t, err, ErrInternal)
	repo.AssertExpectations(t)
}

func TestService_GetItemBookingsSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seed(t, testNow.Add(-5*time.Hour), testNow.Add(-4*time.Hour), domain.StatusApproved)
	last := f.seed(t, testNow.Add(-time.Hour), testNow.Add(time.Hour), domain.StatusApproved)
	f.seed(t, testNow.Add(time.Hour), testNow.Add(2*time.Hour), domain.StatusWaiting)
	next := f.seed(t, testNow.Add(3*time.Hour), testNow.Add(4*time.Hour), domain.StatusApproved)
	f.seed(t, testNow.Add(6*time.Hour), testNow.Add(7*time.Hour), domain.StatusApproved)

	resp, err := f.svc.GetItemBookingsSummary(ctx, itemID, ownerID)
	require.NoError(t, err)
	require.NotNil(t, resp.LastBooking)
	require.NotNil(t, resp.NextBooking)
	assert.Equal(t, last.ID, resp.LastBooking.ID)
	assert.Equal(t, next.ID, resp.NextBooking.ID)
	assert.Equal(t, bookerID, resp.NextBooking.BookerID)

	resp, err = f.svc.GetItemBookingsSummary(ctx, itemID, bookerID)
	require.NoError(t, err)
	assert.Nil(t, resp.LastBooking)
	assert.Nil(t, resp.NextBooking)

	_, err = f.svc.GetItemBookingsSummary(ctx, 999, ownerID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestService_HasCompletedBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seed(t, testNow.Add(-3*time.Hour), testNow.Add(-2*time.Hour), domain.StatusRejected)
	f.seed(t, testNow.Add(-time.Hour), testNow.Add(time.Hour), domain.StatusApproved)

	done, err := f.svc.HasCompletedBooking(ctx, itemID, bookerID)
	require.NoError(t, err)
	assert.False(t, done)

	f.seed(t, testNow.Add(-5*time.Hour), testNow.Add(-4*time.Hour), domain.StatusApproved)

	done, err = f.svc.HasCompletedBooking(ctx, itemID, bookerID)
	require.NoError(t, err)
	assert.True(t, done)

	done, err = f.svc.HasCompletedBooking(ctx, itemID, strangerID)
	require.NoError(t, err)
	assert.False(t, done)
}
