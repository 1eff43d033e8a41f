package rfid

import (
	"fmt"
	"time"
)

// Existing describes the active assignment a UID already has when a
// conflicting assignment is attempted.
type Existing struct {
	UID        string    `json:"uid"`
	EmployeeID string    `json:"employee_id"`
	FullName   string    `json:"full_name"`
	AssignedAt time.Time `json:"assigned_at"`
}

// ConflictError is returned when a UID is already active on a different
// employee. Callers surface it and require an explicit confirm-reassign
// step; the registry is not mutated until then.
type ConflictError struct {
	Existing Existing
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("uid %s is already assigned to %s (%s)",
		FormatUID(e.Existing.UID), e.Existing.FullName, e.Existing.EmployeeID)
}
