package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/pkg/metrics"
)

// DBExecutor общий интерфейс для выполнения запросов.
// Реализуется *sql.DB, *sql.Tx и обёртками с метриками.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor интерфейс транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// DB обёртка над *sql.DB, записывающая метрики выполнения запросов
type DB struct {
	db          *sql.DB
	metrics     *metrics.Metrics
	serviceName string
}

// Wrap оборачивает *sql.DB сборщиком метрик
func Wrap(db *sql.DB, m *metrics.Metrics, serviceName string) *DB {
	return &DB{db: db, metrics: m, serviceName: serviceName}
}

// WrapWithDefault оборачивает *sql.DB и запускает периодический сбор
// статистики connection pool. Сбор останавливается закрытием stopCh.
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m, serviceName)
	go wrapped.collectPoolStats(15*time.Second, stopCh)
	return wrapped
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBConnectionsOpen.WithLabelValues(d.serviceName).Set(float64(stats.OpenConnections))
			d.metrics.DBConnectionsInUse.WithLabelValues(d.serviceName).Set(float64(stats.InUse))
			d.metrics.DBConnectionsIdle.WithLabelValues(d.serviceName).Set(float64(stats.Idle))
		}
	}
}

// operationFromQuery определяет тип операции по первому слову запроса
func operationFromQuery(query string) string {
	trimmed := strings.TrimSpace(query)
	if idx := strings.IndexByte(trimmed, ' '); idx > 0 {
		return strings.ToUpper(trimmed[:idx])
	}
	return "UNKNOWN"
}

func (d *DB) observe(op string, start time.Time, err error) {
	d.metrics.DBQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		d.metrics.DBQueryErrors.WithLabelValues(op).Inc()
	}
}

// ExecContext выполняет запрос с записью метрик
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe(operationFromQuery(query), start, err)
	return res, err
}

// QueryContext выполняет запрос с записью метрик
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(operationFromQuery(query), start, err)
	return rows, err
}

// QueryRowContext выполняет запрос с записью метрик
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(operationFromQuery(query), start, nil)
	return row
}

// BeginTx начинает транзакцию на нижележащем *sql.DB
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	return d.db.BeginTx(ctx, opts)
}
