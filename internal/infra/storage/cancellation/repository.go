package cancellation

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

// pendingRequestConstraint частичный уникальный индекс на booking_id
// среди запросов в статусе pending
const pendingRequestConstraint = "uniq_cancellation_requests_pending"

// Repository репозиторий для работы с запросами на отмену
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория запросов на отмену
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запрос на отмену.
// Данные (date, slot, band_name) — снимок бронирования на момент создания.
// Второй pending-запрос по тому же бронированию отклоняется индексом БД
// и возвращается как ErrDuplicateRequest.
func (r *Repository) Create(ctx context.Context, request *domain.CancellationRequest) (*domain.CancellationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if request.ID == "" {
		request.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("cancellation_requests").
		Columns(
			"id",
			"booking_id",
			"user_id",
			"user_email",
			"user_name",
			"booking_date",
			"slot",
			"band_name",
			"reason",
			"status",
			"auto_approved",
		).
		Values(
			request.ID,
			request.BookingID,
			request.UserID,
			request.UserEmail,
			request.UserName,
			request.Date,
			request.Slot,
			request.BandName,
			request.Reason,
			request.Status,
			request.AutoApproved,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&request.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, pendingRequestConstraint) {
			return nil, ErrDuplicateRequest
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return request, nil
}

// GetByID получает запрос на отмену по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.CancellationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns()...).
		From("cancellation_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	request, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return request, nil
}

// GetByDates получает запросы на отмену по датам бронирования.
// Используется для построения недельного вида.
func (r *Repository) GetByDates(ctx context.Context, dates []string) ([]*domain.CancellationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns()...).
		From("cancellation_requests").
		Where(squirrel.Eq{"booking_date": dates}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// ListAll получает все запросы на отмену, сначала новые.
// Используется административной страницей обзора запросов.
func (r *Repository) ListAll(ctx context.Context) ([]*domain.CancellationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns()...).
		From("cancellation_requests").
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// Resolve переводит pending-запрос в терминальный статус.
// Условие status = 'pending' в WHERE делает переход одноразовым:
// повторная попытка вернёт ErrAlreadyProcessed.
func (r *Repository) Resolve(
	ctx context.Context,
	id string,
	status domain.RequestStatus,
	adminID string,
	adminEmail string,
	response string,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("cancellation_requests").
		Set("status", status).
		Set("admin_response", response).
		Set("admin_responded_at", squirrel.Expr("NOW()")).
		Set("admin_id", adminID).
		Set("admin_email", adminEmail).
		Where(squirrel.Eq{"id": id, "status": domain.RequestPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Resolve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Resolve - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Resolve - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Различаем отсутствующий и уже обработанный запрос
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrAlreadyProcessed
	}

	return nil
}

func requestColumns() []string {
	return []string{
		"id",
		"booking_id",
		"user_id",
		"user_email",
		"user_name",
		"booking_date",
		"slot",
		"band_name",
		"reason",
		"status",
		"auto_approved",
		"admin_response",
		"admin_responded_at",
		"admin_id",
		"admin_email",
		"created_at",
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.CancellationRequest, error) {
	var request domain.CancellationRequest
	var bookingDate time.Time
	var adminResponse, adminID, adminEmail sql.NullString
	var adminRespondedAt sql.NullTime

	err := row.Scan(
		&request.ID,
		&request.BookingID,
		&request.UserID,
		&request.UserEmail,
		&request.UserName,
		&bookingDate,
		&request.Slot,
		&request.BandName,
		&request.Reason,
		&request.Status,
		&request.AutoApproved,
		&adminResponse,
		&adminRespondedAt,
		&adminID,
		&adminEmail,
		&request.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	request.Date = bookingDate.Format(domain.DateFormat)
	if adminResponse.Valid {
		request.AdminResponse = ptr.Ptr(adminResponse.String)
	}
	if adminRespondedAt.Valid {
		request.AdminRespondedAt = ptr.Ptr(adminRespondedAt.Time)
	}
	if adminID.Valid {
		request.AdminID = ptr.Ptr(adminID.String)
	}
	if adminEmail.Valid {
		request.AdminEmail = ptr.Ptr(adminEmail.String)
	}

	return &request, nil
}

// scanRequests сканирует результаты запроса в слайс запросов на отмену
func scanRequests(rows *sql.Rows) ([]*domain.CancellationRequest, error) {
	requests := make([]*domain.CancellationRequest, 0)

	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRequests - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRequests - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == uniqueViolation && pqErr.Constraint == constraint
}
