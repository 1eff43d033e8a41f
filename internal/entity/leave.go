package entity

import (
	"github.com/uptrace/bun"
)

// Leave request states.
const (
	LeavePending  = "Pending"
	LeaveApproved = "Approved"
	LeaveRejected = "Rejected"
)

type Leave struct {
	bun.BaseModel `bun:"table:leave"`

	BasicEntity
	EmployeeID *string `json:"employee_id" bun:"employee_id"`
	StartDate  string  `json:"start_date" bun:"start_date"`
	EndDate    string  `json:"end_date" bun:"end_date"`
	LeaveType  *string `json:"leave_type" bun:"leave_type"`
	Status     *string `json:"status" bun:"status"`
	Reason     *string `json:"reason" bun:"reason"`
}
