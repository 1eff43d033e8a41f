package entity

import (
	"encoding/json"

	"github.com/uptrace/bun"
)

// Employee lifecycle states. Archived employees are kept for history and
// never hard deleted.
const (
	EmployeeActive   = "Active"
	EmployeeArchived = "Archived"
)

type Employee struct {
	bun.BaseModel `bun:"table:employees"`

	BasicEntity
	EmployeeID     *string         `json:"employee_id" bun:"employee_id"`
	Password       *string         `json:"-" bun:"password"`
	Role           *string         `json:"role" bun:"role"`
	FullName       *string         `json:"full_name" bun:"full_name"`
	DepartmentID   *int            `json:"department_id" bun:"department_id"`
	PositionID     *int            `json:"position_id" bun:"position_id"`
	Phone          *string         `json:"phone" bun:"phone"`
	Email          *string         `json:"email" bun:"email"`
	WorkType       *string         `json:"work_type" bun:"work_type"`
	WorkSchedule   json.RawMessage `json:"work_schedule" bun:"work_schedule,type:jsonb"`
	RfidUID        *string         `json:"rfid_uid" bun:"rfid_uid"`
	IsRfidAssigned bool            `json:"is_rfid_assigned" bun:"is_rfid_assigned"`
	Photo          *string         `json:"photo" bun:"photo"`
	State          string          `json:"state" bun:"state"`
}
