package working_hours

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const (
	tableName = "technician_working_hours"

	// lockNamespace первый ключ pg_advisory_xact_lock, отделяет блокировки рабочего времени от отпусков
	lockNamespace = 1001

	// checkViolationCode код ошибки PostgreSQL check_violation
	checkViolationCode = "23514"
)

var columns = []string{
	"id",
	"technician_id",
	"day_of_week",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с шаблонами рабочего времени техников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочего времени
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockTechnician берет транзакционную advisory-блокировку на техника
// Должна вызываться внутри транзакции до чтения соседних записей:
// блокировка держится до COMMIT/ROLLBACK и сериализует проверку пересечений с записью
func (r *Repository) LockTechnician(ctx context.Context, technicianID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockTechnician - called outside of transaction", ErrTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	_, err := executor.ExecContext(ctx,
		"SELECT pg_advisory_xact_lock($1, hashtext($2))",
		lockNamespace, strconv.FormatInt(technicianID, 10),
	)
	if err != nil {
		return fmt.Errorf("%w: LockTechnician - technician_id=%d: %v", ErrTransaction, technicianID, err)
	}

	return nil
}

// Create создает новую запись рабочего времени
func (r *Repository) Create(ctx context.Context, entry *domain.WorkingHoursEntry) (*domain.WorkingHoursEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"technician_id",
			"day_of_week",
			"start_time",
			"end_time",
		).
		Values(
			entry.TechnicianID,
			entry.DayOfWeek,
			entry.StartTime,
			entry.EndTime,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isCheckViolation(err) {
			return nil, fmt.Errorf("%w: Create - %v", ErrConstraintViolation, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return entry, nil
}

// GetByID получает запись по ID в рамках техника
// Запись другого техника считается ненайденной
func (r *Repository) GetByID(ctx context.Context, technicianID, id int64) (*domain.WorkingHoursEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id, "technician_id": technicianID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan entry: %v", ErrScanRow, err)
	}

	return entry, nil
}

// ListByTechnician получает все записи техника, упорядоченные по (day_of_week, start_time)
func (r *Repository) ListByTechnician(ctx context.Context, technicianID int64) ([]*domain.WorkingHoursEntry, error) {
	return r.list(ctx, "ListByTechnician", squirrel.Eq{"technician_id": technicianID})
}

// ListByTechnicianAndDay получает записи техника на один день недели, упорядоченные по start_time
func (r *Repository) ListByTechnicianAndDay(ctx context.Context, technicianID int64, dayOfWeek int) ([]*domain.WorkingHoursEntry, error) {
	return r.list(ctx, "ListByTechnicianAndDay", squirrel.Eq{"technician_id": technicianID, "day_of_week": dayOfWeek})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Eq) ([]*domain.WorkingHoursEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	entries := make([]*domain.WorkingHoursEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return entries, nil
}

// Update заменяет день недели и интервал записи
// Запись ищется по (id, technician_id)
func (r *Repository) Update(ctx context.Context, entry *domain.WorkingHoursEntry) (*domain.WorkingHoursEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("day_of_week", entry.DayOfWeek).
		Set("start_time", entry.StartTime).
		Set("end_time", entry.EndTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": entry.ID, "technician_id": entry.TechnicianID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		if isCheckViolation(err) {
			return nil, fmt.Errorf("%w: Update - %v", ErrConstraintViolation, err)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return entry, nil
}

// Delete удаляет запись техника
func (r *Repository) Delete(ctx context.Context, technicianID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id, "technician_id": technicianID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (*domain.WorkingHoursEntry, error) {
	var entry domain.WorkingHoursEntry
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&entry.ID,
		&entry.TechnicianID,
		&entry.DayOfWeek,
		&entry.StartTime,
		&entry.EndTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}

func isCheckViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == checkViolationCode
}
