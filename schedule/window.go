package schedule

import (
	"errors"
	"time"
)

// MaxWindowDays bounds how far ahead a window may reach. Requests beyond a
// year have no use in the booking grid and would only burn allocation.
const MaxWindowDays = 366

var ErrBadWindow = errors.New("numDays must be between 1 and 366")

// DateWindow returns numDays consecutive calendar dates starting the day
// after start. With weekdaysOnly, Saturdays and Sundays are skipped and the
// window extends until numDays weekday dates are collected. Dates are
// truncated to midnight in start's location; month and year boundaries roll
// over via AddDate, never by mutating a shared value.
func DateWindow(start time.Time, numDays int, weekdaysOnly bool) ([]time.Time, error) {
	if numDays <= 0 || numDays > MaxWindowDays {
		return nil, ErrBadWindow
	}

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	out := make([]time.Time, 0, numDays)
	for len(out) < numDays {
		day = day.AddDate(0, 0, 1)
		if weekdaysOnly {
			if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}
		}
		out = append(out, day)
	}
	return out, nil
}
