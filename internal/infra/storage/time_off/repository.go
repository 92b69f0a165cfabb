package time_off

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
	tableName = "technician_time_off"

	// lockNamespace первый ключ pg_advisory_xact_lock для отпусков техника
	lockNamespace = 1002

	checkViolationCode = "23514"
)

var columns = []string{
	"id",
	"technician_id",
	"start_at",
	"end_at",
	"reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с периодами отсутствия техников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отсутствий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockTechnician берет транзакционную advisory-блокировку на техника
// Блокировка держится до конца транзакции
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

// Create создает новую запись об отсутствии
func (r *Repository) Create(ctx context.Context, entry *domain.TimeOffEntry) (*domain.TimeOffEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"technician_id",
			"start_at",
			"end_at",
			"reason",
		).
		Values(
			entry.TechnicianID,
			entry.StartAt,
			entry.EndAt,
			entry.Reason,
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
func (r *Repository) GetByID(ctx context.Context, technicianID, id int64) (*domain.TimeOffEntry, error) {
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

// List получает отсутствия техника, пересекающиеся с [From, To), упорядоченные по start_at
// Пустая граница фильтра означает открытый интервал
//
// Примеры использования:
//
// 1. Все отсутствия техника:
//    filter := domain.TimeOffFilter{TechnicianID: 7}
//
// 2. Отсутствия, задевающие окно кандидата:
//    filter := domain.TimeOffFilter{TechnicianID: 7, From: &candidate.Start, To: &candidate.End}
func (r *Repository) List(ctx context.Context, filter domain.TimeOffFilter) ([]*domain.TimeOffEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"technician_id": filter.TechnicianID}).
		OrderBy("start_at ASC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.TimeOffEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// Update заменяет интервал и причину отсутствия
func (r *Repository) Update(ctx context.Context, entry *domain.TimeOffEntry) (*domain.TimeOffEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("start_at", entry.StartAt).
		Set("end_at", entry.EndAt).
		Set("reason", entry.Reason).
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

func scanEntry(row scanner) (*domain.TimeOffEntry, error) {
	var entry domain.TimeOffEntry
	var reason sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&entry.ID,
		&entry.TechnicianID,
		&entry.StartAt,
		&entry.EndAt,
		&reason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if reason.Valid {
		entry.Reason = &reason.String
	}
	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}

func isCheckViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == checkViolationCode
}
