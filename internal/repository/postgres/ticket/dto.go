package ticket

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Status *string
}

type GetListResponse struct {
	ID          int       `json:"id"`
	EmployeeID  *string   `json:"employee_id"`
	FullName    *string   `json:"full_name"`
	Subject     *string   `json:"subject"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateRequest struct {
	EmployeeID  *string `json:"employee_id" form:"employee_id"`
	Subject     *string `json:"subject" form:"subject"`
	Description *string `json:"description" form:"description"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:ticket"`

	ID          int       `json:"id" bun:"-"`
	EmployeeID  *string   `json:"employee_id" bun:"employee_id"`
	Subject     *string   `json:"subject" bun:"subject"`
	Description *string   `json:"description" bun:"description"`
	Status      string    `json:"status" bun:"status"`
	CreatedAt   time.Time `json:"created_at" bun:"created_at"`
	CreatedBy   int       `json:"-" bun:"created_by"`
}
