package common

import "time"

// PreviousTradingDay returns the business day `offset` trading days before
// date, skipping Saturdays and Sundays. offset must be >= 1; an offset of 1
// from a Monday yields the preceding Friday. Market holidays are not modeled;
// holiday gaps are handled by the caller's lookback attempts instead.
func PreviousTradingDay(date time.Time, offset int) time.Time {
	d := date
	for i := 0; i < offset; i++ {
		d = d.AddDate(0, 0, -1)
		for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			d = d.AddDate(0, 0, -1)
		}
	}
	return d
}

// IsTradingDay reports whether date falls on a weekday.
func IsTradingDay(date time.Time) bool {
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
