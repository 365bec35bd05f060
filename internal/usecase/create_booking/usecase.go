package create_booking

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	itemClient "github.com/m04kA/SMC-RentalService/internal/integrations/itemservice"
	userClient "github.com/m04kA/SMC-RentalService/internal/integrations/userservice"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RentalService/pkg/tracing"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	userClient  UserServiceClient
	itemClient  ItemServiceClient
	txManager   TransactionManager
	metrics     MetricsRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userClient UserServiceClient,
	itemClient ItemServiceClient,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		userClient:  userClient,
		itemClient:  itemClient,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверки идут строго по порядку, первая неудачная прерывает выполнение.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (_ *models.BookingResponse, err error) {
	ctx, span := tracing.Start(ctx, "create_booking.Execute",
		attribute.Int64("user.id", req.BookerID),
		attribute.Int64("item.id", req.ItemID),
	)
	defer func() { tracing.End(span, err) }()

	uc.logger.Info("CreateBooking: booker=%d, item=%d, start=%s, end=%s",
		req.BookerID, req.ItemID, models.FormatTime(req.Start), models.FormatTime(req.End))

	// 1. Валидация входных данных
	if err = validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Арендатор существует
	booker, err := uc.userClient.GetUser(ctx, req.BookerID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.BookerID)
			return nil, fmt.Errorf("%w: id=%d", ErrUserNotFound, req.BookerID)
		}
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.BookerID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	// 3. Вещь существует
	item, err := uc.itemClient.GetItem(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, itemClient.ErrItemNotFound) {
			uc.logger.Warn("CreateBooking: item id=%d not found", req.ItemID)
			return nil, fmt.Errorf("%w: id=%d", ErrItemNotFound, req.ItemID)
		}
		uc.logger.Error("CreateBooking: failed to get item id=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to get item: %v", ErrInternal, err)
	}

	// 4. Владелец не бронирует свою вещь
	if item.IsOwnedBy(req.BookerID) {
		uc.logger.Warn("CreateBooking: user id=%d is owner of item id=%d", req.BookerID, req.ItemID)
		return nil, fmt.Errorf("%w: item=%d", ErrAccessDenied, req.ItemID)
	}

	// 5. Вещь доступна
	if !item.Available {
		uc.logger.Warn("CreateBooking: item id=%d is unavailable", req.ItemID)
		return nil, fmt.Errorf("%w: item=%d", ErrItemUnavailable, req.ItemID)
	}

	// 6. Интервал корректен
	if err = validateTimeRange(req.Start, req.End); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	var created *domain.Booking

	// 7. Пересечения не проверяются, блокировки не нужны
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking := &domain.Booking{
			ItemID:      item.ID,
			BookerID:    booker.ID,
			ItemOwnerID: item.OwnerID,
			Start:       req.Start,
			End:         req.End,
			Status:      domain.StatusWaiting,
		}

		result, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		created = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.BookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d", created.ID)

	return models.FromDomainBooking(created, booker, item), nil
}
