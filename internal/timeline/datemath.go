package timeline

import "time"

// SubtractMonths moves date back n calendar months. The day of month is
// clamped to the last day of the target month (May 31 minus 3 months is Feb 28/29).
func SubtractMonths(date time.Time, n int) time.Time {
	y, m, d := date.Date()
	hh, mm, ss := date.Clock()

	total := int(m) - 1 - n
	y += floorDiv(total, 12)
	month := time.Month(total - floorDiv(total, 12)*12 + 1)

	if last := daysIn(y, month, date.Location()); d > last {
		d = last
	}

	return time.Date(y, month, d, hh, mm, ss, date.Nanosecond(), date.Location())
}

// SubtractWeeks moves date back n*7 calendar days.
func SubtractWeeks(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, -7*n)
}

// DaysBetween returns the signed number of calendar days from a to b.
// Time of day is ignored, so 23:59 and 00:01 of the next day are one day apart.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
