package availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Calendar снимок календаря техника на окне Window
// Отсутствия и бронирования загружены только пересекающиеся с окном
type Calendar struct {
	Technician   *domain.Technician
	Location     *time.Location
	Window       domain.Interval
	WorkingHours []*domain.WorkingHoursEntry
	TimeOff      []*domain.TimeOffEntry
	Bookings     []*domain.Booking
}

// WorkingWindows материализует шаблоны рабочего времени на календарный день date
// Результат отсортирован по началу
func (c *Calendar) WorkingWindows(date time.Time) []domain.Interval {
	local := date.In(c.Location)
	entries := domain.WorkingHoursForWeekday(c.WorkingHours, local.Weekday())

	windows := make([]domain.Interval, 0, len(entries))
	for _, e := range entries {
		windows = append(windows, e.WindowOn(local, c.Location))
	}
	domain.SortIntervals(windows)

	return windows
}

// BusyIntervals возвращает отсутствия и активные бронирования, пересекающиеся с window
func (c *Calendar) BusyIntervals(window domain.Interval) []domain.Interval {
	busy := make([]domain.Interval, 0, len(c.TimeOff)+len(c.Bookings))
	for _, t := range c.TimeOff {
		if domain.Overlaps(t.Interval(), window) {
			busy = append(busy, t.Interval())
		}
	}
	for _, b := range c.Bookings {
		if b.OccupiesTime() && domain.Overlaps(b.Interval(), window) {
			busy = append(busy, b.Interval())
		}
	}
	domain.SortIntervals(busy)

	return busy
}

// Evaluate решает, доступен ли кандидат в календаре
// Порядок проверок: рабочее время, отсутствия, бронирования. Первая сработавшая причина и есть вердикт
// Функция чистая: не ходит в хранилища и не меняет календарь
func Evaluate(cal *Calendar, candidate domain.Interval) domain.Verdict {
	if !withinWorkingHours(cal, candidate) {
		return domain.Verdict{Reason: domain.ReasonOutsideWorkingHours}
	}

	for _, t := range cal.TimeOff {
		if domain.Overlaps(t.Interval(), candidate) {
			return domain.Verdict{Reason: domain.ReasonTimeOff, ConflictingTimeOff: t}
		}
	}

	for _, b := range cal.Bookings {
		if b.OccupiesTime() && domain.Overlaps(b.Interval(), candidate) {
			return domain.Verdict{Reason: domain.ReasonAlreadyBooked, ConflictingBooking: b}
		}
	}

	return domain.AvailableVerdict()
}

// withinWorkingHours ищет окно дня начала кандидата, целиком содержащее кандидата
// Кандидат через полночь не помещается ни в одно окно, так как окна не пересекают границу суток
func withinWorkingHours(cal *Calendar, candidate domain.Interval) bool {
	for _, window := range cal.WorkingWindows(candidate.Start) {
		if domain.Contains(window, candidate) {
			return true
		}
	}
	return false
}
