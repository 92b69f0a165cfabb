package find_next_slot

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Исходы поиска для метрик
const (
	outcomeFound    = "found"
	outcomeNotFound = "not_found"
)

// Request модель запроса на поиск ближайшего свободного слота
type Request struct {
	CompanyID       int64     // ID компании
	TechnicianID    int64     // ID техника
	StartDate       time.Time // Первый день поиска, берется только календарная дата
	DurationMinutes int       // Длительность слота в минутах
	MaxDaysToSearch int       // Горизонт поиска в днях, [1, 30]
}

// Response модель ответа
// Found = false при отсутствии слота на горизонте, это штатный исход, а не ошибка
type Response struct {
	Slot        *domain.Interval
	Found       bool
	DaysScanned int
}
