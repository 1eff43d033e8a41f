package leave

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit      *int
	Offset     *int
	Page       *int
	EmployeeID *string
	Status     *string
}

type GetListResponse struct {
	ID         int     `json:"id"`
	EmployeeID *string `json:"employee_id"`
	FullName   *string `json:"full_name"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	Reason     *string `json:"reason"`
	Status     *string `json:"status"`
}

type CreateRequest struct {
	EmployeeID *string `json:"employee_id" form:"employee_id"`
	StartDate  *string `json:"start_date" form:"start_date"` // "2006-01-02"
	EndDate    *string `json:"end_date" form:"end_date"`
	Reason     *string `json:"reason" form:"reason"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:leave"`

	ID         int       `json:"id" bun:"-"`
	EmployeeID *string   `json:"employee_id" bun:"employee_id"`
	StartDate  *string   `json:"start_date" bun:"start_date"`
	EndDate    *string   `json:"end_date" bun:"end_date"`
	Reason     *string   `json:"reason" bun:"reason"`
	Status     string    `json:"status" bun:"status"`
	CreatedAt  time.Time `json:"-" bun:"created_at"`
	CreatedBy  int       `json:"-" bun:"created_by"`
}

type UpdateStatusRequest struct {
	ID     *int    `json:"id" form:"id"`
	Status *string `json:"status" form:"status"` // Approved or Rejected
}
