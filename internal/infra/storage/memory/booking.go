package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
)

// BookingRepository хранилище бронирований в памяти процесса.
// Используется при database.driver = "memory" и в тестах.
// Ошибки возвращаются те же, что у PostgreSQL репозитория.
type BookingRepository struct {
	mu       sync.RWMutex
	seq      int64
	bookings []*domain.Booking // в порядке создания
	byID     map[int64]int
	now      func() time.Time
}

// NewBookingRepository создает пустое хранилище
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		byID: make(map[int64]int),
		now:  time.Now,
	}
}

// Create сохраняет бронирование и назначает ему ID
func (r *BookingRepository) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if !booking.Status.IsValid() {
		return nil, fmt.Errorf("%w: Create - status=%s", bookingRepo.ErrInvalidStatus, booking.Status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	ts := r.now()

	stored := *booking
	stored.ID = r.seq
	stored.CreatedAt = ts
	stored.UpdatedAt = ts

	r.byID[stored.ID] = len(r.bookings)
	r.bookings = append(r.bookings, &stored)

	result := stored
	return &result, nil
}

// GetByID получает копию бронирования по ID
func (r *BookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}

	result := *r.bookings[idx]
	return &result, nil
}

// GetByIDForUpdate совпадает с GetByID: блокировку даёт TxManager
func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.GetByID(ctx, id)
}

// UpdateStatus обновляет статус бронирования
func (r *BookingRepository) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: UpdateStatus - status=%s", bookingRepo.ErrInvalidStatus, status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byID[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}

	r.bookings[idx].Status = status
	r.bookings[idx].UpdatedAt = r.now()
	return nil
}

// List возвращает бронирования по фильтру: начало по убыванию,
// при равном начале - в порядке создания
func (r *BookingRepository) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.mu.RLock()
	matched := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if filter.Matches(b) {
			c := *b
			matched = append(matched, &c)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Start.After(matched[j].Start)
	})

	if filter.Page == nil {
		return matched, nil
	}

	offset := filter.Page.Offset()
	if offset >= len(matched) {
		return []*domain.Booking{}, nil
	}
	end := offset + filter.Page.Limit()
	if end > len(matched) {
		end = len(matched)
	}

	return matched[offset:end], nil
}
