package stats

import "time"

type Range string

const (
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYear  Range = "year"
)

// Window returns the rolling dashboard window ending at now:
// week = now-7d, month = now-1 calendar month, year = now-1y.
// Unknown ranges fall back to month, matching the dashboard default.
//
// Note the rolling "month" here is deliberately different from
// CalendarMonth below; dashboards use the rolling window, budget
// tracking uses the calendar one.
func Window(r Range, now time.Time) (time.Time, time.Time) {
	switch r {
	case RangeWeek:
		return now.AddDate(0, 0, -7), now
	case RangeYear:
		return now.AddDate(-1, 0, 0), now
	default:
		return now.AddDate(0, -1, 0), now
	}
}

// CalendarMonth returns the current calendar month window: first day
// 00:00:00 through last day 23:59:59 in now's location.
func CalendarMonth(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), now.Month()+1, 0, 23, 59, 59, 0, now.Location())
	return start, end
}
