package decide_booking

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	itemClient "github.com/m04kA/SMC-RentalService/internal/integrations/itemservice"
	userClient "github.com/m04kA/SMC-RentalService/internal/integrations/userservice"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RentalService/pkg/tracing"
)

// UseCase use case для решения владельца по бронированию
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

// Execute подтверждает или отклоняет бронирование.
// Чтение статуса и запись выполняются в одной транзакции под блокировкой строки:
// из двух одновременных решений второе видит уже изменённый статус.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (_ *models.BookingResponse, err error) {
	ctx, span := tracing.Start(ctx, "decide_booking.Execute",
		attribute.Int64("user.id", req.DeciderID),
		attribute.Int64("booking.id", req.BookingID),
		attribute.Bool("booking.approved", req.Approved),
	)
	defer func() { tracing.End(span, err) }()

	uc.logger.Info("DecideBooking: decider=%d, booking=%d, approved=%t", req.DeciderID, req.BookingID, req.Approved)

	// 1. Валидация входных данных
	if err = validateRequest(req); err != nil {
		uc.logger.Warn("DecideBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Пользователь существует
	exists, err := uc.userClient.Exists(ctx, req.DeciderID)
	if err != nil {
		uc.logger.Error("DecideBooking: failed to check user id=%d: %v", req.DeciderID, err)
		return nil, fmt.Errorf("%w: failed to check user: %v", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("DecideBooking: user id=%d not found", req.DeciderID)
		return nil, fmt.Errorf("%w: id=%d", ErrUserNotFound, req.DeciderID)
	}

	// 3. Бронирование существует
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, uc.mapRepoError(req.BookingID, err)
	}

	// 4. Вещь нужна для проверки владельца и для ответа
	item, err := uc.itemClient.GetItem(ctx, booking.ItemID)
	if err != nil {
		if errors.Is(err, itemClient.ErrItemNotFound) {
			uc.logger.Warn("DecideBooking: item id=%d not found", booking.ItemID)
			return nil, fmt.Errorf("%w: id=%d", ErrItemNotFound, booking.ItemID)
		}
		uc.logger.Error("DecideBooking: failed to get item id=%d: %v", booking.ItemID, err)
		return nil, fmt.Errorf("%w: failed to get item: %v", ErrInternal, err)
	}

	newStatus := domain.DecisionStatus(req.Approved)
	var decided *domain.Booking

	// 5. Чтение с блокировкой, проверки и запись
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		locked, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			return uc.mapRepoError(req.BookingID, err)
		}

		if !locked.CanBeDecided() {
			uc.logger.Warn("DecideBooking: booking id=%d is already %s", locked.ID, locked.Status)
			return fmt.Errorf("%w: id=%d, status=%s", ErrBookingCannotBeChanged, locked.ID, locked.Status)
		}

		if !item.IsOwnedBy(req.DeciderID) {
			uc.logger.Warn("DecideBooking: user id=%d is not owner of item id=%d", req.DeciderID, item.ID)
			return fmt.Errorf("%w: user=%d, item=%d", ErrAccessDenied, req.DeciderID, item.ID)
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, locked.ID, newStatus); err != nil {
			return uc.mapRepoError(req.BookingID, err)
		}

		locked.Status = newStatus
		decided = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 6. Арендатор для ответа
	booker, err := uc.userClient.GetUser(ctx, decided.BookerID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("DecideBooking: booker id=%d not found", decided.BookerID)
			return nil, fmt.Errorf("%w: booker id=%d", ErrUserNotFound, decided.BookerID)
		}
		uc.logger.Error("DecideBooking: failed to get booker id=%d: %v", decided.BookerID, err)
		return nil, fmt.Errorf("%w: failed to get booker: %v", ErrInternal, err)
	}

	uc.metrics.BookingDecided(string(newStatus))
	uc.logger.Info("DecideBooking: booking id=%d is %s", decided.ID, newStatus)

	return models.FromDomainBooking(decided, booker, item), nil
}

func (uc *UseCase) mapRepoError(bookingID int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Warn("DecideBooking: booking id=%d not found", bookingID)
		return fmt.Errorf("%w: id=%d", ErrBookingNotFound, bookingID)
	}
	uc.logger.Error("DecideBooking: repository error for booking id=%d: %v", bookingID, err)
	return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
}
