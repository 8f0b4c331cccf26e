package types

import (
	"time"
)

type CalendarDay struct {
	Date     string
	Day      int
	InMonth  bool
	Written  bool
	Selected bool
	Today    bool
}

type CalendarMonth struct {
	Month    string
	Prev     string
	Next     string
	Selected string
	Weeks    [][]CalendarDay
}

// NewCalendarMonth lays out the month containing month as full Sunday-first
// weeks. Days listed in written are marked, as is the selected date.
func NewCalendarMonth(month time.Time, written []string, selected string, today time.Time) CalendarMonth {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.Local)
	marked := make(map[string]bool, len(written))
	for _, d := range written {
		marked[d] = true
	}

	cal := CalendarMonth{
		Month:    first.Format("2006-01"),
		Prev:     first.AddDate(0, -1, 0).Format("2006-01"),
		Next:     first.AddDate(0, 1, 0).Format("2006-01"),
		Selected: selected,
	}

	todayStr := today.Format(DateLayout)
	day := first.AddDate(0, 0, -int(first.Weekday()))
	for {
		week := make([]CalendarDay, 0, 7)
		for i := 0; i < 7; i++ {
			date := day.Format(DateLayout)
			week = append(week, CalendarDay{
				Date:     date,
				Day:      day.Day(),
				InMonth:  day.Month() == first.Month(),
				Written:  marked[date],
				Selected: date == selected,
				Today:    date == todayStr,
			})
			day = day.AddDate(0, 0, 1)
		}
		cal.Weeks = append(cal.Weeks, week)
		if day.Month() != first.Month() {
			break
		}
	}
	return cal
}
