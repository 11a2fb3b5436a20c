package utils

import (
	"fmt"
	"time"
)

const (
	ShortDashDateLayout = "2006-01-02"
	ClockLayout         = "15:04"
)

func GenerateDates(startDate, endDate time.Time, interval time.Duration) ([]time.Time, error) {
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("endDate must be after startDate")
	}

	var dates []time.Time
	for currentDate := startDate; !currentDate.After(endDate); currentDate = currentDate.Add(interval) {
		dates = append(dates, currentDate)
	}

	return dates, nil
}

// DaysInMonth returns the number of days of the month containing t.
func DaysInMonth(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// ClampDayOfMonth returns day, lowered to the last day of the given month
// when the month is shorter.
func ClampDayOfMonth(year int, month time.Month, day int, loc *time.Location) int {
	if last := DaysInMonth(year, month, loc); day > last {
		return last
	}
	return day
}
