package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalService/internal/integrations/itemservice"
	"github.com/m04kA/SMC-RentalService/internal/integrations/userservice"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RentalService/pkg/tracing"
)

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo  BookingRepository
	userClient   UserServiceClient
	itemClient   ItemServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	userClient UserServiceClient,
	itemClient ItemServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		userClient:   userClient,
		itemClient:   itemClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Видеть бронирование могут только арендатор и владелец вещи.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (_ *models.BookingResponse, err error) {
	ctx, span := tracing.Start(ctx, "bookings.GetByID",
		attribute.Int64("booking.id", id),
		attribute.Int64("user.id", userID),
	)
	defer func() { tracing.End(span, err) }()

	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	if err = s.checkUserExists(ctx, "GetByID", userID); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	item, err := s.getItem(ctx, "GetByID", booking.ItemID)
	if err != nil {
		return nil, err
	}

	if !booking.IsBooker(userID) && !item.IsOwnedBy(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, fmt.Errorf("%w: user=%d, booking=%d", ErrAccessDenied, userID, id)
	}

	booker, err := s.getUser(ctx, "GetByID", booking.BookerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking, booker, item), nil
}

// GetBookerBookings получает бронирования, сделанные пользователем
func (s *Service) GetBookerBookings(ctx context.Context, req *models.GetBookingsRequest) (*models.BookingListResponse, error) {
	return s.listBookings(ctx, "GetBookerBookings", req, func(f *domain.BookingsFilter) {
		f.BookerID = &req.UserID
	})
}

// GetOwnerBookings получает бронирования вещей, принадлежащих пользователю
func (s *Service) GetOwnerBookings(ctx context.Context, req *models.GetBookingsRequest) (*models.BookingListResponse, error) {
	return s.listBookings(ctx, "GetOwnerBookings", req, func(f *domain.BookingsFilter) {
		f.OwnerID = &req.UserID
	})
}

// listBookings общая часть выборок арендатора и владельца.
// Корзина проверяется до любых обращений к хранилищу.
func (s *Service) listBookings(
	ctx context.Context,
	op string,
	req *models.GetBookingsRequest,
	scope func(f *domain.BookingsFilter),
) (_ *models.BookingListResponse, err error) {
	ctx, span := tracing.Start(ctx, "bookings."+op,
		attribute.Int64("user.id", req.UserID),
		attribute.String("booking.state", req.State),
		attribute.Int("page.from", req.From),
		attribute.Int("page.size", req.Size),
	)
	defer func() { tracing.End(span, err) }()

	s.logger.Info("%s: user=%d, state=%s, from=%d, size=%d", op, req.UserID, req.State, req.From, req.Size)

	state, err := domain.ParseBookingState(req.State)
	if err != nil {
		s.logger.Warn("%s: unknown state=%s for user=%d", op, req.State, req.UserID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidState, req.State)
	}

	page, err := req.ToDomainPage()
	if err != nil {
		s.logger.Warn("%s: invalid page from=%d, size=%d", op, req.From, req.Size)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err = s.checkUserExists(ctx, op, req.UserID); err != nil {
		return nil, err
	}

	filter := domain.BookingsFilter{
		State: state,
		Now:   s.timeProvider.Now(),
		Page:  &page,
	}
	scope(&filter)

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error for user=%d: %v", op, req.UserID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	users, items, err := s.resolveDirectory(ctx, op, bookings)
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: successfully fetched %d bookings for user=%d", op, len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings, users, items), nil
}

// GetItemBookingsSummary возвращает последнее и ближайшее подтверждённые бронирования вещи.
// Данные видит только владелец, остальным отдаётся пустая сводка.
func (s *Service) GetItemBookingsSummary(ctx context.Context, itemID, userID int64) (_ *models.ItemBookingsSummaryResponse, err error) {
	ctx, span := tracing.Start(ctx, "bookings.GetItemBookingsSummary",
		attribute.Int64("item.id", itemID),
		attribute.Int64("user.id", userID),
	)
	defer func() { tracing.End(span, err) }()

	s.logger.Info("GetItemBookingsSummary: item=%d, user=%d", itemID, userID)

	if err = s.checkUserExists(ctx, "GetItemBookingsSummary", userID); err != nil {
		return nil, err
	}

	item, err := s.getItem(ctx, "GetItemBookingsSummary", itemID)
	if err != nil {
		return nil, err
	}

	resp := &models.ItemBookingsSummaryResponse{ItemID: itemID}
	if !item.IsOwnedBy(userID) {
		return resp, nil
	}

	approved := domain.StatusApproved
	now := s.timeProvider.Now()
	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		ItemID: &itemID,
		Status: &approved,
		State:  domain.StateAll,
		Now:    now,
	})
	if err != nil {
		s.logger.Error("GetItemBookingsSummary: repository error for item=%d: %v", itemID, err)
		return nil, fmt.Errorf("%w: GetItemBookingsSummary - repository error: %v", ErrInternal, err)
	}

	last, next := lastAndNext(bookings, now)
	resp.LastBooking = models.FromDomainShortBooking(last)
	resp.NextBooking = models.FromDomainShortBooking(next)

	return resp, nil
}

// HasCompletedBooking проверяет, что пользователь завершил подтверждённую аренду вещи
func (s *Service) HasCompletedBooking(ctx context.Context, itemID, userID int64) (_ bool, err error) {
	ctx, span := tracing.Start(ctx, "bookings.HasCompletedBooking",
		attribute.Int64("item.id", itemID),
		attribute.Int64("user.id", userID),
	)
	defer func() { tracing.End(span, err) }()

	approved := domain.StatusApproved
	page := domain.PageRequest{From: 0, Size: 1}
	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		ItemID:   &itemID,
		BookerID: &userID,
		Status:   &approved,
		State:    domain.StatePast,
		Now:      s.timeProvider.Now(),
		Page:     &page,
	})
	if err != nil {
		s.logger.Error("HasCompletedBooking: repository error for item=%d, user=%d: %v", itemID, userID, err)
		return false, fmt.Errorf("%w: HasCompletedBooking - repository error: %v", ErrInternal, err)
	}

	return len(bookings) > 0, nil
}

// lastAndNext выбирает последнее (завершённое или текущее, максимум по end)
// и ближайшее будущее (минимум по start) бронирования
func lastAndNext(bookings []*domain.Booking, now time.Time) (last, next *domain.Booking) {
	for _, b := range bookings {
		switch {
		case b.IsFuture(now):
			if next == nil || b.Start.Before(next.Start) {
				next = b
			}
		case b.IsPast(now) || b.IsCurrent(now):
			if last == nil || b.End.After(last.End) {
				last = b
			}
		}
	}
	return last, next
}

// resolveDirectory один раз на операцию получает арендаторов и вещи для маппинга
func (s *Service) resolveDirectory(
	ctx context.Context,
	op string,
	bookings []*domain.Booking,
) (map[int64]*domain.User, map[int64]*domain.Item, error) {
	users := make(map[int64]*domain.User)
	items := make(map[int64]*domain.Item)

	for _, b := range bookings {
		if _, ok := users[b.BookerID]; !ok {
			user, err := s.getUser(ctx, op, b.BookerID)
			if err != nil {
				return nil, nil, err
			}
			users[b.BookerID] = user
		}
		if _, ok := items[b.ItemID]; !ok {
			item, err := s.getItem(ctx, op, b.ItemID)
			if err != nil {
				return nil, nil, err
			}
			items[b.ItemID] = item
		}
	}

	return users, items, nil
}

func (s *Service) checkUserExists(ctx context.Context, op string, userID int64) error {
	exists, err := s.userClient.Exists(ctx, userID)
	if err != nil {
		s.logger.Error("%s: failed to check user=%d: %v", op, userID, err)
		return fmt.Errorf("%w: %s - user service error: %v", ErrInternal, op, err)
	}
	if !exists {
		s.logger.Warn("%s: user=%d not found", op, userID)
		return fmt.Errorf("%w: id=%d", ErrUserNotFound, userID)
	}
	return nil
}

func (s *Service) getUser(ctx context.Context, op string, userID int64) (*domain.User, error) {
	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			s.logger.Warn("%s: user=%d not found", op, userID)
			return nil, fmt.Errorf("%w: id=%d", ErrUserNotFound, userID)
		}
		s.logger.Error("%s: failed to get user=%d: %v", op, userID, err)
		return nil, fmt.Errorf("%w: %s - user service error: %v", ErrInternal, op, err)
	}
	return user, nil
}

func (s *Service) getItem(ctx context.Context, op string, itemID int64) (*domain.Item, error) {
	item, err := s.itemClient.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, itemservice.ErrItemNotFound) {
			s.logger.Warn("%s: item=%d not found", op, itemID)
			return nil, fmt.Errorf("%w: id=%d", ErrItemNotFound, itemID)
		}
		s.logger.Error("%s: failed to get item=%d: %v", op, itemID, err)
		return nil, fmt.Errorf("%w: %s - item service error: %v", ErrInternal, op, err)
	}
	return item, nil
}
