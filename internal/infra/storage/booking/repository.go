package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

const tableBookings = "bookings"

var bookingColumns = []string{
	"id",
	"item_id",
	"booker_id",
	"item_owner_id",
	"start_time",
	"end_time",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if !booking.Status.IsValid() {
		return nil, fmt.Errorf("%w: Create - status=%s", ErrInvalidStatus, booking.Status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"item_id",
			"booker_id",
			"item_owner_id",
			"start_time",
			"end_time",
			"status",
		).
		Values(
			booking.ItemID,
			booking.BookerID,
			booking.ItemOwnerID,
			booking.Start,
			booking.End,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование по ID и блокирует строку до конца транзакции.
// Вне транзакции работает как GetByID.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildGetByIDQuery(id, forUpdate)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру, отсортированные по началу (DESC).
// Бронирования с одинаковым началом идут в порядке создания.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: UpdateStatus - status=%s", ErrInvalidStatus, status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func buildGetByIDQuery(id int64, forUpdate bool) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return selectBuilder.ToSql()
}

// buildListQuery строит запрос выборки.
// Сравнение с текущим моментом идёт по filter.Now, а не по CURRENT_TIMESTAMP,
// чтобы часы сервиса были единственным источником времени.
func buildListQuery(filter domain.BookingsFilter) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings)

	if filter.BookerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booker_id": *filter.BookerID})
	}
	if filter.OwnerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"item_owner_id": *filter.OwnerID})
	}
	if filter.ItemID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"item_id": *filter.ItemID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	switch filter.State {
	case domain.StateAll, "":
	case domain.StatePast:
		selectBuilder = selectBuilder.Where(squirrel.Lt{"end_time": filter.Now})
	case domain.StateCurrent:
		selectBuilder = selectBuilder.
			Where(squirrel.Lt{"start_time": filter.Now}).
			Where(squirrel.Gt{"end_time": filter.Now})
	case domain.StateFuture:
		selectBuilder = selectBuilder.Where(squirrel.Gt{"start_time": filter.Now})
	case domain.StateWaiting, domain.StateRejected:
		status, _ := filter.State.StatusFilter()
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": status})
	default:
		return "", nil, fmt.Errorf("%w: %s", domain.ErrUnknownState, filter.State)
	}

	selectBuilder = selectBuilder.OrderBy("start_time DESC", "id ASC")

	if filter.Page != nil {
		selectBuilder = selectBuilder.
			Limit(uint64(filter.Page.Limit())).
			Offset(uint64(filter.Page.Offset()))
	}

	return selectBuilder.ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ItemID,
		&booking.BookerID,
		&booking.ItemOwnerID,
		&booking.Start,
		&booking.End,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
