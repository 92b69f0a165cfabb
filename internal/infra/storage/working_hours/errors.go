package working_hours

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись рабочего времени не найдена у техника
	ErrEntryNotFound = errors.New("working_hours.repository: entry not found")

	// ErrConstraintViolation возвращается, когда запись нарушает ограничения таблицы (день недели, start < end)
	ErrConstraintViolation = errors.New("working_hours.repository: constraint violation")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("working_hours.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("working_hours.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("working_hours.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("working_hours.repository: failed to scan row")
)
