package entity

import (
	"github.com/uptrace/bun"
)

// Ticket states for the support ticket stub.
const (
	TicketOpen   = "Open"
	TicketClosed = "Closed"
)

type Ticket struct {
	bun.BaseModel `bun:"table:ticket"`

	BasicEntity
	EmployeeID *string `json:"employee_id" bun:"employee_id"`
	Subject    *string `json:"subject" bun:"subject"`
	Body       *string `json:"body" bun:"body"`
	Status     *string `json:"status" bun:"status"`
}
