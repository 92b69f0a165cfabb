package find_next_slot

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

// freeWindows возвращает свободные промежутки дня: рабочие окна минус отсутствия и бронирования,
// обрезанные так, чтобы не начинаться раньше notBefore
// Результат отсортирован по началу
func freeWindows(cal *availability.Calendar, day time.Time, notBefore time.Time) []domain.Interval {
	free := cal.WorkingWindows(day)
	if len(free) == 0 {
		return free
	}

	dayBounds := domain.Interval{Start: free[0].Start, End: free[len(free)-1].End}
	for _, busy := range cal.BusyIntervals(dayBounds) {
		free = domain.Subtract(free, busy)
	}

	return domain.ClipStart(free, notBefore)
}

// earliestFit возвращает начало первого промежутка длиной не меньше duration
// Кандидат обрезается ровно до duration
func earliestFit(free []domain.Interval, duration time.Duration) (domain.Interval, bool) {
	for _, f := range free {
		if f.Duration() >= duration {
			return domain.Interval{Start: f.Start, End: f.Start.Add(duration)}, true
		}
	}
	return domain.Interval{}, false
}

// ceilMinute округляет время вверх до целой минуты
func ceilMinute(t time.Time) time.Time {
	truncated := t.Truncate(time.Minute)
	if truncated.Before(t) {
		return truncated.Add(time.Minute)
	}
	return truncated
}

// startOfDay возвращает полночь календарной даты date в loc
// Берется дата как есть, без перевода в loc: "2025-10-14" означает 14 октября у техника
func startOfDay(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
