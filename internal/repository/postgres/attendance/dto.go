package attendance

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type Filter struct {
	Limit        *int
	Offset       *int
	Page         *int
	Search       *string
	DepartmentID *int
	PositionID   *int
	Status       *string
	Date         *string
}

// GetListResponse is one dashboard row: the derived state for one employee
// on the requested date. Status here is the display mapping.
type GetListResponse struct {
	EmployeeID   *string    `json:"employee_id"`
	FullName     *string    `json:"full_name"`
	DepartmentID *int       `json:"department_id"`
	Department   *string    `json:"department"`
	PositionID   *int       `json:"position_id"`
	Position     *string    `json:"position"`
	WorkDay      *date.Date `json:"work_day"`
	Status       string     `json:"status"`
	TimeIn       string     `json:"time_in"`
	TimeOut      string     `json:"time_out"`
	IsWorkDay    bool       `json:"is_work_day"`
	HoursWorked  float64    `json:"hours_worked"`
	Source       *string    `json:"source,omitempty"`
}

// GetDetailByIdResponse returns the stored record untouched: raw status,
// no display mapping.
type GetDetailByIdResponse struct {
	ID              int        `json:"id"`
	EmployeeID      *string    `json:"employee_id"`
	FullName        *string    `json:"full_name"`
	Department      *string    `json:"department"`
	Position        *string    `json:"position"`
	WorkDay         *date.Date `json:"work_day"`
	Status          *string    `json:"status"`
	Source          *string    `json:"source"`
	TimeIn          *time.Time `json:"time_in"`
	TimeOut         *time.Time `json:"time_out"`
	HoursWorked     *float64   `json:"hours_worked"`
	LateMinutes     *int       `json:"late_minutes"`
	OvertimeMinutes *int       `json:"overtime_minutes"`
}

type TimeInRequest struct {
	EmployeeID *string `json:"employee_id" form:"employee_id"`
	Time       string  `json:"time" form:"time"` // "15:04", optional, defaults to now
}

type TimeOutRequest struct {
	EmployeeID *string `json:"employee_id" form:"employee_id"`
	Time       string  `json:"time" form:"time"`
}

type EntryResponse struct {
	bun.BaseModel `bun:"table:attendance"`

	ID          int       `json:"id" bun:"-"`
	EmployeeID  *string   `json:"employee_id" bun:"employee_id"`
	WorkDay     string    `json:"work_day" bun:"work_day"`
	TimeIn      time.Time `json:"-" bun:"time_in"`
	TimeInClock string    `json:"time_in" bun:"-"`
	Status      string    `json:"status" bun:"status"`
	Source      string    `json:"source" bun:"source"`
	LateMinutes int       `json:"late_minutes" bun:"late_minutes"`
	CreatedAt   time.Time `json:"-" bun:"created_at"`
	CreatedBy   int       `json:"-" bun:"created_by"`
}

type ExitResponse struct {
	EmployeeID      string  `json:"employee_id"`
	WorkDay         string  `json:"work_day"`
	TimeOut         string  `json:"time_out"`
	Status          string  `json:"status"`
	HoursWorked     float64 `json:"hours_worked"`
	OvertimeMinutes int     `json:"overtime_minutes"`
}

type ScanRequest struct {
	UID string `json:"uid" form:"uid"`
}

type ScanResponse struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Action     string `json:"action"` // time_in or time_out
	Status     string `json:"status"`
	TimeIn     string `json:"time_in"`
	TimeOut    string `json:"time_out,omitempty"`
}

type GetStatisticResponse struct {
	TotalEmployee *int `json:"total_employee" bun:"total_employee"`
	Present       *int `json:"present" bun:"present"`
	Late          *int `json:"late" bun:"late"`
	Completed     *int `json:"completed" bun:"completed"`
	OnLeave       *int `json:"on_leave" bun:"on_leave"`
	NotYetIn      *int `json:"not_yet_in" bun:"not_yet_in"`
}

type PieChartResponse struct {
	Present *int `json:"present"`
	Absent  *int `json:"absent"`
}

type BarChartResponse struct {
	Department *string  `json:"department" bun:"department"`
	Percentage *float64 `json:"percentage" bun:"percentage"`
}

// ReportRow is one line of the monthly attendance PDF.
type ReportRow struct {
	WorkDay     string
	EmployeeID  string
	FullName    string
	TimeIn      string
	TimeOut     string
	Status      string
	HoursWorked string
}

type ReportRequest struct {
	Month      string // "2006-01"
	EmployeeID *string
}
