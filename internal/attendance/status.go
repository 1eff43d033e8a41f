// Package attendance holds the rule core of the EMS: deriving an
// employee's daily attendance status and validating manual time entry.
// Everything here is pure; all civil time math happens in the school's
// fixed UTC+8 zone regardless of server locale.
//
// Status labels are normalized in exactly one place: DisplayStatus
// collapses Completed and Late to Present, and only list/summary views
// apply it. Detail views return the stored status untouched.
package attendance

import "time"

// Location is the school's civil time zone. Attendance rules never consult
// the server's local zone.
var Location = time.FixedZone("UTC+8", 8*60*60)

// The seven attendance statuses. DeriveStatus returns exactly one of them.
const (
	StatusPresent   = "Present"
	StatusLate      = "Late"
	StatusAbsent    = "Absent"
	StatusPending   = "Pending"
	StatusNoWork    = "No Work"
	StatusInLeave   = "In_Leave"
	StatusCompleted = "Completed"
)

// TimeSentinel is rendered for time-in/time-out on days without times
// (leave days, non work days).
const TimeSentinel = "--:--"

// Record is a raw attendance row for one (employee, date).
type Record struct {
	TimeIn  *time.Time
	TimeOut *time.Time
	Status  string
}

// LeaveSpan is an approved leave range. Dates are compared at day
// granularity in Location.
type LeaveSpan struct {
	Start  time.Time
	End    time.Time
	Active bool
}

// Covers reports whether date falls inside the leave range.
func (l LeaveSpan) Covers(date time.Time) bool {
	if !l.Active {
		return false
	}
	d := civilDate(date)
	return !d.Before(civilDate(l.Start)) && !d.After(civilDate(l.End))
}

// RealtimeHint is a fresh scan update for an employee, pushed by the RFID
// scan path and cached with a same-day TTL. A nil hint means no update.
type RealtimeHint struct {
	Day         time.Time
	Status      string
	TimeIn      string
	TimeOut     string
	HoursWorked float64
}

// DayStatus is the derived display state for one employee and date.
type DayStatus struct {
	Status      string  `json:"status"`
	TimeIn      string  `json:"time_in"`
	TimeOut     string  `json:"time_out"`
	IsWorkDay   bool    `json:"is_work_day"`
	HoursWorked float64 `json:"hours_worked"`
}

// DeriveStatus computes the attendance state for one employee and date.
// Precedence, first match wins:
//
//  1. active leave covering date
//  2. inactive schedule day
//  3. fresh same-day realtime hint
//  4. existing attendance record
//  5. work day, past scheduled end, no record: Absent
//  6. work day, before scheduled end, no record: Pending
func DeriveStatus(date time.Time, week WeekSchedule, rec *Record, leave *LeaveSpan, hint *RealtimeHint, now time.Time) DayStatus {
	if leave != nil && leave.Covers(date) {
		return DayStatus{
			Status:  StatusInLeave,
			TimeIn:  TimeSentinel,
			TimeOut: TimeSentinel,
		}
	}

	day := ScheduleFor(week, date)
	if !day.Active {
		return DayStatus{
			Status:  StatusNoWork,
			TimeIn:  TimeSentinel,
			TimeOut: TimeSentinel,
		}
	}

	if hint != nil && civilDate(hint.Day).Equal(civilDate(date)) {
		status := hint.Status
		if status == StatusCompleted {
			status = StatusPresent
		}
		return DayStatus{
			Status:      status,
			TimeIn:      orSentinel(hint.TimeIn),
			TimeOut:     orSentinel(hint.TimeOut),
			IsWorkDay:   true,
			HoursWorked: hint.HoursWorked,
		}
	}

	if rec != nil && rec.TimeIn != nil {
		out := DayStatus{
			TimeIn:    clock(rec.TimeIn),
			TimeOut:   clock(rec.TimeOut),
			IsWorkDay: true,
		}

		if rec.TimeOut == nil {
			out.Status = StatusPresent
			if rec.Status == StatusLate {
				out.Status = StatusLate
			}
			return out
		}

		out.Status = rec.Status
		if out.Status == "" {
			out.Status = StatusCompleted
		}
		out.HoursWorked = rec.TimeOut.Sub(*rec.TimeIn).Hours()
		return out
	}

	end := civilDate(date).Add(time.Duration(minuteOfDay(day.End)) * time.Minute)
	if now.In(Location).After(end) {
		return DayStatus{
			Status:    StatusAbsent,
			TimeIn:    TimeSentinel,
			TimeOut:   TimeSentinel,
			IsWorkDay: true,
		}
	}

	return DayStatus{
		Status:    StatusPending,
		TimeIn:    TimeSentinel,
		TimeOut:   TimeSentinel,
		IsWorkDay: true,
	}
}

// DisplayStatus is the canonical list-view mapping: Completed and Late
// collapse to Present, every other label passes through.
func DisplayStatus(status string) string {
	if status == StatusCompleted || status == StatusLate {
		return StatusPresent
	}
	return status
}

// civilDate truncates t to midnight of its civil day in Location.
func civilDate(t time.Time) time.Time {
	local := t.In(Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Location)
}

func clock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(Location).Format("15:04")
}

func orSentinel(s string) string {
	if s == "" {
		return TimeSentinel
	}
	return s
}
