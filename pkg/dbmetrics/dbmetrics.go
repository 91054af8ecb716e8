package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// DBExecutor общий интерфейс для *sql.DB и *DB
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Collector принимает метрики запросов и пула соединений
type Collector interface {
	ObserveDBQuery(operation, status string, duration time.Duration)
	SetDBPoolStats(stats sql.DBStats)
}

// DefaultPoolStatsInterval период сбора статистики пула
const DefaultPoolStatsInterval = 15 * time.Second

const (
	statusOK    = "ok"
	statusError = "error"
)

// DB обертка над *sql.DB, измеряющая длительность запросов
type DB struct {
	db        *sql.DB
	collector Collector
}

// Wrap оборачивает соединение и запускает сбор статистики пула с заданным интервалом
// Сбор останавливается закрытием stopCh
func Wrap(db *sql.DB, collector Collector, interval time.Duration, stopCh <-chan struct{}) *DB {
	w := &DB{db: db, collector: collector}
	go w.collectPoolStats(interval, stopCh)
	return w
}

// WrapWithDefault оборачивает соединение с интервалом сбора по умолчанию
func WrapWithDefault(db *sql.DB, collector Collector, stopCh <-chan struct{}) *DB {
	return Wrap(db, collector, DefaultPoolStatsInterval, stopCh)
}

// ExecContext выполняет запрос без результата
func (w *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := w.db.ExecContext(ctx, query, args...)
	w.observe(query, err, start)
	return res, err
}

// QueryContext выполняет запрос, возвращающий строки
func (w *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := w.db.QueryContext(ctx, query, args...)
	w.observe(query, err, start)
	return rows, err
}

// QueryRowContext выполняет запрос, возвращающий одну строку
// Ошибка строки становится известна только при Scan, поэтому статус всегда ok
func (w *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := w.db.QueryRowContext(ctx, query, args...)
	w.observe(query, nil, start)
	return row
}

func (w *DB) observe(query string, err error, start time.Time) {
	status := statusOK
	if err != nil && err != sql.ErrNoRows {
		status = statusError
	}
	w.collector.ObserveDBQuery(Operation(query), status, time.Since(start))
}

func (w *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.collector.SetDBPoolStats(w.db.Stats())
	for {
		select {
		case <-ticker.C:
			w.collector.SetDBPoolStats(w.db.Stats())
		case <-stopCh:
			return
		}
	}
}

// Operation возвращает тип запроса (select, insert, update, delete) для метки метрики
func Operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	switch op := strings.ToLower(fields[0]); op {
	case "select", "insert", "update", "delete":
		return op
	default:
		return "other"
	}
}
