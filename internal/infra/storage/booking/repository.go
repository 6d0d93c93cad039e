package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/domain"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/pkg/dbmetrics"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/pkg/psqlbuilder"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/pkg/ptr"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const uniqueViolation = "23505"

// activeSlotConstraint частичный уникальный индекс на (booking_date, slot)
// среди неотменённых бронирований. Именно он гарантирует, что из двух
// конкурентных Create на один слот зафиксируется ровно один.
const activeSlotConstraint = "uniq_bookings_active_slot"

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
//
// Уникальность активного слота обеспечивается условной записью на уровне
// БД: при конфликте с уже существующим активным бронированием возвращается
// ErrSlotTaken независимо от того, что показала предварительная проверка.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"user_id",
			"user_email",
			"user_name",
			"booking_date",
			"slot",
			"band_name",
			"cancelled",
		).
		Values(
			booking.ID,
			booking.UserID,
			booking.UserEmail,
			booking.UserName,
			booking.Date,
			booking.Slot,
			booking.BandName,
			false,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, activeSlotConstraint) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns()...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// CountActiveByUserAndDate считает активные бронирования пользователя на дату.
// Используется координатором для проверки дневных лимитов.
func (r *Repository) CountActiveByUserAndDate(ctx context.Context, userID string, date string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"user_id": userID, "booking_date": date, "cancelled": false}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveByUserAndDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveByUserAndDate - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetByDates получает все бронирования на указанные даты (включая отменённые).
// Используется для построения недельного вида.
func (r *Repository) GetByDates(ctx context.Context, dates []string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns()...).
		From("bookings").
		Where(squirrel.Eq{"booking_date": dates}).
		OrderBy("booking_date ASC, slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// SoftCancel помечает бронирование отменённым, не удаляя запись.
// Возвращает ErrBookingNotFound, если активного бронирования с таким id нет
// (в том числе если оно уже было отменено ранее).
func (r *Repository) SoftCancel(ctx context.Context, id string, byID string, byEmail string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("cancelled", true).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("cancelled_by", byID).
		Set("cancelled_by_email", byEmail).
		Where(squirrel.Eq{"id": id, "cancelled": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftCancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftCancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SoftCancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// DeleteByDates физически удаляет бронирования на указанные даты.
// Используется только административным сбросом недели; обычный путь
// отмены никогда не удаляет записи.
func (r *Repository) DeleteByDates(ctx context.Context, dates []string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"booking_date": dates}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDates - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDates - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDates - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func bookingColumns() []string {
	return []string{
		"id",
		"user_id",
		"user_email",
		"user_name",
		"booking_date",
		"slot",
		"band_name",
		"cancelled",
		"cancelled_at",
		"cancelled_by",
		"cancelled_by_email",
		"created_at",
	}
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var bookingDate time.Time
	var cancelledAt sql.NullTime
	var cancelledBy, cancelledByEmail sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.UserEmail,
		&booking.UserName,
		&bookingDate,
		&booking.Slot,
		&booking.BandName,
		&booking.Cancelled,
		&cancelledAt,
		&cancelledBy,
		&cancelledByEmail,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Date = bookingDate.Format(domain.DateFormat)
	if cancelledAt.Valid {
		booking.CancelledAt = ptr.Ptr(cancelledAt.Time)
	}
	if cancelledBy.Valid {
		booking.CancelledBy = ptr.Ptr(cancelledBy.String)
	}
	if cancelledByEmail.Valid {
		booking.CancelledByEmail = ptr.Ptr(cancelledByEmail.String)
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
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

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == uniqueViolation && pqErr.Constraint == constraint
}
