package attendance

import (
	"strings"
	"time"
)

// DaySchedule is one weekday of an employee's work schedule. Start and End
// are civil times in "15:04" form.
type DaySchedule struct {
	Active bool   `json:"active"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// WeekSchedule maps lowercase weekday names ("monday".."sunday") to their
// schedule. Employees store this as a jsonb column.
type WeekSchedule map[string]DaySchedule

const (
	DefaultStart = "07:00"
	DefaultEnd   = "16:00"
)

// ScheduleFor returns the schedule entry for the weekday of date. Missing
// entries fall back to the school default: Monday-Friday 07:00-16:00,
// weekends off.
func ScheduleFor(week WeekSchedule, date time.Time) DaySchedule {
	weekday := date.In(Location).Weekday()

	if week != nil {
		if day, ok := week[strings.ToLower(weekday.String())]; ok {
			return day
		}
	}

	return DaySchedule{
		Active: weekday != time.Saturday && weekday != time.Sunday,
		Start:  DefaultStart,
		End:    DefaultEnd,
	}
}

// minuteOfDay converts a "15:04" civil time into minutes since midnight.
// Malformed values degrade to 0 rather than failing a derivation.
func minuteOfDay(s string) int {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}
