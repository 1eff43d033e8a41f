package attendance

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

// Action is a manual attendance entry kind.
type Action string

const (
	ActionTimeIn  Action = "time_in"
	ActionTimeOut Action = "time_out"
)

// MinDwell is the minimum gap between a recorded time-in and a manually
// entered time-out.
const MinDwell = 10 * time.Minute

// Manual entry windows, minutes since midnight, half-open: a time-in at
// exactly 17:00 is rejected, at 16:59 accepted.
const (
	timeInWindowStart  = 6 * 60  // 06:00
	timeInWindowEnd    = 17 * 60 // 17:00
	timeOutWindowStart = 6 * 60  // 06:00
	timeOutWindowEnd   = 19 * 60 // 19:00
)

// ValidateManualEntry enforces the manual time entry rules against the
// employee's existing record for the day. The proposed time is interpreted
// in the school's civil zone.
func ValidateManualEntry(action Action, rec *Record, proposed time.Time) error {
	local := proposed.In(Location)
	minute := local.Hour()*60 + local.Minute()

	switch action {
	case ActionTimeIn:
		if rec != nil && rec.TimeIn != nil {
			return errors.New("time-in already recorded for this date")
		}
		if minute < timeInWindowStart || minute >= timeInWindowEnd {
			return errors.New("manual time-in is only allowed between 06:00 and 17:00")
		}

	case ActionTimeOut:
		if rec == nil || rec.TimeIn == nil {
			return errors.New("no time-in recorded for this date")
		}
		if rec.TimeOut != nil {
			return errors.New("time-out already recorded for this date")
		}
		if minute < timeOutWindowStart || minute >= timeOutWindowEnd {
			return errors.New("manual time-out is only allowed between 06:00 and 19:00")
		}

		delta := proposed.Sub(*rec.TimeIn)
		if delta < MinDwell {
			remaining := int(math.Ceil(MinDwell.Minutes() - delta.Minutes()))
			return errors.Errorf("time-out must be at least 10 minutes after time-in, please wait %d more minutes", remaining)
		}

	default:
		return errors.Errorf("unknown manual entry action: %s", action)
	}

	return nil
}
