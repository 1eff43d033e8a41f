package attendance

import (
	"strings"
	"testing"
	"time"
)

func TestValidateManualTimeInWindow(t *testing.T) {
	cases := []struct {
		hh, mm int
		ok     bool
	}{
		{5, 59, false},
		{6, 0, true},
		{16, 59, true},
		{17, 0, false},
	}

	for _, tc := range cases {
		proposed := at(2025, time.March, 12, tc.hh, tc.mm)
		err := ValidateManualEntry(ActionTimeIn, nil, proposed)
		if tc.ok && err != nil {
			t.Fatalf("time-in at %02d:%02d should be accepted, got %v", tc.hh, tc.mm, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("time-in at %02d:%02d should be rejected", tc.hh, tc.mm)
		}
	}
}

func TestValidateManualTimeInAlreadyRecorded(t *testing.T) {
	in := at(2025, time.March, 12, 8, 0)
	err := ValidateManualEntry(ActionTimeIn, &Record{TimeIn: &in}, at(2025, time.March, 12, 9, 0))
	if err == nil {
		t.Fatal("second time-in for the same date must be rejected")
	}
}

func TestValidateManualTimeOutDwell(t *testing.T) {
	in := at(2025, time.March, 12, 9, 0)
	rec := &Record{TimeIn: &in}

	err := ValidateManualEntry(ActionTimeOut, rec, at(2025, time.March, 12, 9, 9))
	if err == nil {
		t.Fatal("time-out 9 minutes after time-in must be rejected")
	}
	if !strings.Contains(err.Error(), "1 more minutes") {
		t.Fatalf("expected remaining wait of 1 more minutes in message, got %q", err.Error())
	}

	if err := ValidateManualEntry(ActionTimeOut, rec, at(2025, time.March, 12, 9, 10)); err != nil {
		t.Fatalf("time-out exactly 10 minutes after time-in must be accepted, got %v", err)
	}
}

func TestValidateManualTimeOutPreconditions(t *testing.T) {
	if err := ValidateManualEntry(ActionTimeOut, nil, at(2025, time.March, 12, 10, 0)); err == nil {
		t.Fatal("time-out without a time-in must be rejected")
	}

	in := at(2025, time.March, 12, 8, 0)
	out := at(2025, time.March, 12, 16, 0)
	rec := &Record{TimeIn: &in, TimeOut: &out}
	if err := ValidateManualEntry(ActionTimeOut, rec, at(2025, time.March, 12, 17, 0)); err == nil {
		t.Fatal("second time-out for the same date must be rejected")
	}
}

func TestValidateManualTimeOutWindow(t *testing.T) {
	in := at(2025, time.March, 12, 8, 0)
	rec := &Record{TimeIn: &in}

	if err := ValidateManualEntry(ActionTimeOut, rec, at(2025, time.March, 12, 18, 59)); err != nil {
		t.Fatalf("time-out at 18:59 should be accepted, got %v", err)
	}
	if err := ValidateManualEntry(ActionTimeOut, rec, at(2025, time.March, 12, 19, 0)); err == nil {
		t.Fatal("time-out at 19:00 should be rejected")
	}
}

func TestValidateManualEntryFixedZone(t *testing.T) {
	// 01:00 UTC is 09:00 in the school zone: inside the time-in window even
	// though it is outside it in UTC.
	proposed := time.Date(2025, time.March, 12, 1, 0, 0, 0, time.UTC)
	if err := ValidateManualEntry(ActionTimeIn, nil, proposed); err != nil {
		t.Fatalf("window must be evaluated in UTC+8, got %v", err)
	}
}
