package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// RfidAssignment links a badge UID to an employee. The table enforces at
// most one active row per uid and at most one active row per employee via
// partial unique indexes; removal deactivates rather than deletes.
type RfidAssignment struct {
	bun.BaseModel `bun:"table:rfid_assignment"`

	BasicEntity
	UID           string     `json:"uid" bun:"uid"`
	EmployeeID    string     `json:"employee_id" bun:"employee_id"`
	IsActive      bool       `json:"is_active" bun:"is_active"`
	AssignedAt    time.Time  `json:"assigned_at" bun:"assigned_at"`
	RemovedAt     *time.Time `json:"removed_at,omitempty" bun:"removed_at"`
	RemovalReason *string    `json:"removal_reason,omitempty" bun:"removal_reason"`
	OtherReason   *string    `json:"other_reason,omitempty" bun:"other_reason"`
}
