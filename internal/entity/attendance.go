package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Attendance entry sources.
const (
	SourceRfid   = "rfid"
	SourceManual = "manual"
)

// Attendance is one row per (employee_id, work_day). TimeOut stays null
// until the employee leaves; a row is never mutated after TimeOut is set.
type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	BasicEntity
	EmployeeID      *string    `json:"employee_id" bun:"employee_id"`
	WorkDay         string     `json:"work_day" bun:"work_day"`
	TimeIn          *time.Time `json:"time_in" bun:"time_in"`
	TimeOut         *time.Time `json:"time_out" bun:"time_out"`
	Status          *string    `json:"status" bun:"status"`
	Source          *string    `json:"source" bun:"source"`
	HoursWorked     *float64   `json:"hours_worked" bun:"hours_worked"`
	LateMinutes     *int       `json:"late_minutes" bun:"late_minutes"`
	OvertimeMinutes *int       `json:"overtime_minutes" bun:"overtime_minutes"`
}
