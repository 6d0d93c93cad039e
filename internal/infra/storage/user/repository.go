package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/domain"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/pkg/dbmetrics"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("user.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("user.repository: failed to execute query")
)

// Repository репозиторий для работы с учётными записями пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или обновляет учётную запись пользователя.
// Идемпотентная операция: вызывается как побочный эффект бронирования
// и не участвует в его транзакции.
func (r *Repository) Upsert(ctx context.Context, u *domain.User) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("id", "email", "name", "role").
		Values(u.ID, u.Email, u.Name, u.Role).
		Suffix("ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name, role = EXCLUDED.role").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
