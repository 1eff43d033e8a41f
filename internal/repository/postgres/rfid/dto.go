package rfid

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit      *int
	Offset     *int
	Page       *int
	EmployeeID *string
	ActiveOnly *bool
}

type GetListResponse struct {
	ID            int        `json:"id"`
	UID           string     `json:"uid"`
	UIDDisplay    string     `json:"uid_display"`
	EmployeeID    *string    `json:"employee_id"`
	FullName      *string    `json:"full_name"`
	IsActive      bool       `json:"is_active"`
	AssignedAt    time.Time  `json:"assigned_at"`
	RemovedAt     *time.Time `json:"removed_at,omitempty"`
	RemovalReason *string    `json:"removal_reason,omitempty"`
	OtherReason   *string    `json:"other_reason,omitempty"`
}

type AssignRequest struct {
	EmployeeID *string `json:"employee_id" form:"employee_id"`
	UID        *string `json:"uid" form:"uid"`
	// Confirm reassigns a badge that is already bound to another
	// employee instead of rejecting the request.
	Confirm bool `json:"confirm" form:"confirm"`
}

type AssignResponse struct {
	bun.BaseModel `bun:"table:rfid_assignment"`

	ID         int       `json:"id" bun:"-"`
	UID        string    `json:"uid" bun:"uid"`
	UIDDisplay string    `json:"uid_display" bun:"-"`
	EmployeeID string    `json:"employee_id" bun:"employee_id"`
	IsActive   bool      `json:"is_active" bun:"is_active"`
	AssignedAt time.Time `json:"assigned_at" bun:"assigned_at"`
	CreatedAt  time.Time `json:"-" bun:"created_at"`
	CreatedBy  int       `json:"-" bun:"created_by"`
}

type RemoveRequest struct {
	EmployeeID  *string `json:"employee_id" form:"employee_id"`
	Reason      *string `json:"reason" form:"reason"`
	OtherReason *string `json:"other_reason" form:"other_reason"`
}
