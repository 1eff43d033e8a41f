package attendance

import (
	"testing"
	"time"
)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, Location)
}

func tp(t time.Time) *time.Time { return &t }

func TestDeriveStatusLeaveOverridesEverything(t *testing.T) {
	date := at(2025, time.March, 12, 0, 0) // Wednesday
	leave := &LeaveSpan{
		Start:  at(2025, time.March, 10, 0, 0),
		End:    at(2025, time.March, 14, 0, 0),
		Active: true,
	}
	// Record and hint both present: leave still wins.
	rec := &Record{TimeIn: tp(at(2025, time.March, 12, 8, 0)), Status: StatusPresent}
	hint := &RealtimeHint{Day: date, Status: StatusPresent, TimeIn: "08:00"}

	got := DeriveStatus(date, nil, rec, leave, hint, at(2025, time.March, 12, 12, 0))
	if got.Status != StatusInLeave {
		t.Fatalf("expected In_Leave, got %s", got.Status)
	}
	if got.TimeIn != TimeSentinel || got.TimeOut != TimeSentinel {
		t.Fatalf("expected sentinel times, got %q %q", got.TimeIn, got.TimeOut)
	}
	if got.IsWorkDay {
		t.Fatal("leave day must not count as a work day")
	}
}

func TestDeriveStatusInactiveLeaveIgnored(t *testing.T) {
	date := at(2025, time.March, 12, 0, 0)
	leave := &LeaveSpan{
		Start:  at(2025, time.March, 10, 0, 0),
		End:    at(2025, time.March, 14, 0, 0),
		Active: false,
	}

	got := DeriveStatus(date, nil, nil, leave, nil, at(2025, time.March, 12, 12, 0))
	if got.Status == StatusInLeave {
		t.Fatal("inactive leave must not mark the employee In_Leave")
	}
}

func TestDeriveStatusNoWorkDay(t *testing.T) {
	sunday := at(2025, time.March, 16, 0, 0)

	got := DeriveStatus(sunday, nil, nil, nil, nil, at(2025, time.March, 16, 12, 0))
	if got.Status != StatusNoWork {
		t.Fatalf("expected No Work on default sunday, got %s", got.Status)
	}

	week := WeekSchedule{"sunday": {Active: true, Start: "08:00", End: "12:00"}}
	got = DeriveStatus(sunday, week, nil, nil, nil, at(2025, time.March, 16, 9, 0))
	if got.Status == StatusNoWork {
		t.Fatalf("explicit sunday schedule should be honored, got %s", got.Status)
	}
}

func TestDeriveStatusRealtimeHint(t *testing.T) {
	date := at(2025, time.March, 12, 0, 0)

	hint := &RealtimeHint{Day: date, Status: StatusCompleted, TimeIn: "07:55", TimeOut: "16:10", HoursWorked: 8.25}
	got := DeriveStatus(date, nil, nil, nil, hint, at(2025, time.March, 12, 17, 0))
	if got.Status != StatusPresent {
		t.Fatalf("Completed hint must display as Present, got %s", got.Status)
	}
	if got.TimeIn != "07:55" || got.TimeOut != "16:10" {
		t.Fatalf("hint times not carried: %q %q", got.TimeIn, got.TimeOut)
	}
	if got.HoursWorked != 8.25 {
		t.Fatalf("hint hours not carried: %v", got.HoursWorked)
	}

	// A stale hint from another day is ignored; with no record and the day
	// over, the employee is Absent.
	stale := &RealtimeHint{Day: at(2025, time.March, 11, 0, 0), Status: StatusPresent}
	got = DeriveStatus(date, nil, nil, nil, stale, at(2025, time.March, 12, 18, 0))
	if got.Status != StatusAbsent {
		t.Fatalf("stale hint must be ignored, got %s", got.Status)
	}
}

func TestDeriveStatusFromRecord(t *testing.T) {
	date := at(2025, time.March, 12, 0, 0)
	in := at(2025, time.March, 12, 8, 0)
	out := at(2025, time.March, 12, 16, 30)

	// Time-in only.
	got := DeriveStatus(date, nil, &Record{TimeIn: &in}, nil, nil, at(2025, time.March, 12, 10, 0))
	if got.Status != StatusPresent {
		t.Fatalf("open record should be Present, got %s", got.Status)
	}
	if got.TimeIn != "08:00" || got.TimeOut != "" {
		t.Fatalf("unexpected times: %q %q", got.TimeIn, got.TimeOut)
	}

	// Late time-in only.
	got = DeriveStatus(date, nil, &Record{TimeIn: &in, Status: StatusLate}, nil, nil, at(2025, time.March, 12, 10, 0))
	if got.Status != StatusLate {
		t.Fatalf("open late record should stay Late, got %s", got.Status)
	}

	// Closed record keeps its stored status raw.
	got = DeriveStatus(date, nil, &Record{TimeIn: &in, TimeOut: &out, Status: StatusCompleted}, nil, nil, at(2025, time.March, 12, 18, 0))
	if got.Status != StatusCompleted {
		t.Fatalf("closed record should return stored status, got %s", got.Status)
	}
	if got.HoursWorked != 8.5 {
		t.Fatalf("expected 8.5 hours, got %v", got.HoursWorked)
	}
}

func TestDeriveStatusAbsentVsPending(t *testing.T) {
	date := at(2025, time.March, 12, 0, 0) // default end 16:00

	got := DeriveStatus(date, nil, nil, nil, nil, at(2025, time.March, 12, 15, 59))
	if got.Status != StatusPending {
		t.Fatalf("before end of day expected Pending, got %s", got.Status)
	}

	got = DeriveStatus(date, nil, nil, nil, nil, at(2025, time.March, 12, 16, 1))
	if got.Status != StatusAbsent {
		t.Fatalf("after end of day expected Absent, got %s", got.Status)
	}
}

func TestDeriveStatusAlwaysOneOfSeven(t *testing.T) {
	valid := map[string]bool{
		StatusPresent: true, StatusLate: true, StatusAbsent: true,
		StatusPending: true, StatusNoWork: true, StatusInLeave: true,
		StatusCompleted: true,
	}

	date := at(2025, time.March, 12, 0, 0)
	in := at(2025, time.March, 12, 8, 0)
	out := at(2025, time.March, 12, 16, 0)
	leave := &LeaveSpan{Start: date, End: date, Active: true}

	records := []*Record{nil, {TimeIn: &in}, {TimeIn: &in, TimeOut: &out, Status: StatusCompleted}, {TimeIn: &in, TimeOut: &out}}
	leaves := []*LeaveSpan{nil, leave}
	hints := []*RealtimeHint{nil, {Day: date, Status: StatusLate, TimeIn: "09:40"}}
	nows := []time.Time{at(2025, time.March, 12, 6, 0), at(2025, time.March, 12, 23, 0)}

	for _, rec := range records {
		for _, lv := range leaves {
			for _, hint := range hints {
				for _, now := range nows {
					got := DeriveStatus(date, nil, rec, lv, hint, now)
					if !valid[got.Status] {
						t.Fatalf("derived status %q is not one of the seven", got.Status)
					}
				}
			}
		}
	}
}

func TestDisplayStatus(t *testing.T) {
	cases := map[string]string{
		StatusCompleted: StatusPresent,
		StatusLate:      StatusPresent,
		StatusPresent:   StatusPresent,
		StatusAbsent:    StatusAbsent,
		StatusInLeave:   StatusInLeave,
		StatusPending:   StatusPending,
		StatusNoWork:    StatusNoWork,
	}
	for in, want := range cases {
		if got := DisplayStatus(in); got != want {
			t.Fatalf("DisplayStatus(%s) = %s, want %s", in, got, want)
		}
	}
}
