package time_off

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись об отсутствии не найдена у техника
	ErrEntryNotFound = errors.New("time_off.repository: entry not found")

	// ErrConstraintViolation возвращается, когда запись нарушает ограничения таблицы (start_at < end_at)
	ErrConstraintViolation = errors.New("time_off.repository: constraint violation")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("time_off.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("time_off.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("time_off.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("time_off.repository: failed to scan row")
)
