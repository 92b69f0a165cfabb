package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// work_orders принадлежит сервису заказ-нарядов, здесь только чтение
const tableName = "work_orders"

var columns = []string{
	"id",
	"company_id",
	"technician_id",
	"scheduled_start",
	"duration_minutes",
	"status",
	"service_category",
}

// Repository репозиторий бронирований техников (read-only)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive получает бронирования техника, которые занимают время и пересекаются с [From, To)
// Завершенные и отмененные заказ-наряды не возвращаются
// Конец бронирования вычисляется как scheduled_start + duration_minutes
func (r *Repository) ListActive(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	terminal := make([]string, 0, len(domain.TerminalStatuses))
	for _, status := range domain.TerminalStatuses {
		terminal = append(terminal, string(status))
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"technician_id": filter.TechnicianID}).
		Where(squirrel.NotEq{"status": terminal}).
		Where(squirrel.Gt{"duration_minutes": 0}).
		OrderBy("scheduled_start ASC")

	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"scheduled_start": *filter.To})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(
			squirrel.Expr("scheduled_start + make_interval(mins => duration_minutes) > ?", *filter.From),
		)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row scanner) (*domain.Booking, error) {
	var booking domain.Booking
	var category sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.CompanyID,
		&booking.TechnicianID,
		&booking.ScheduledStart,
		&booking.DurationMinutes,
		&booking.Status,
		&category,
	)
	if err != nil {
		return nil, err
	}

	booking.ServiceCategory = category.String

	return &booking, nil
}
