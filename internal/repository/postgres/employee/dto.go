package employee

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit        *int
	Offset       *int
	Page         *int
	Search       *string
	DepartmentID *int
	PositionID   *int
	State        *string
}

type SignInRequest struct {
	EmployeeID string `json:"employee_id" form:"employee_id"`
	Password   string `json:"password" form:"password"`
}

type AuthClaims struct {
	ID   int
	Role string
	Type string
}

type RefreshTokenRequest struct {
	AccessToken  string `json:"access_token" form:"access_token"`
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type GetListResponse struct {
	ID           int     `json:"id"`
	EmployeeID   *string `json:"employee_id"`
	FullName     *string `json:"full_name"`
	DepartmentID *int    `json:"department_id"`
	Department   *string `json:"department"`
	PositionID   *int    `json:"position_id"`
	Position     *string `json:"position"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	WorkType     *string `json:"work_type"`
	RfidUID      *string `json:"rfid_uid"`
	RfidDisplay  string  `json:"rfid_display,omitempty"`
	State        string  `json:"state"`
}

type GetDetailByIdResponse struct {
	ID           int             `json:"id"`
	EmployeeID   *string         `json:"employee_id"`
	FullName     *string         `json:"full_name"`
	DepartmentID *int            `json:"department_id"`
	Department   *string         `json:"department"`
	PositionID   *int            `json:"position_id"`
	Position     *string         `json:"position"`
	Phone        *string         `json:"phone"`
	Email        *string         `json:"email"`
	WorkType     *string         `json:"work_type"`
	WorkSchedule json.RawMessage `json:"work_schedule"`
	RfidUID      *string         `json:"rfid_uid"`
	RfidDisplay  string          `json:"rfid_display,omitempty"`
	Photo        *string         `json:"photo"`
	State        string          `json:"state"`
}

type CreateRequest struct {
	EmployeeID   *string         `json:"employee_id" form:"employee_id"`
	Password     *string         `json:"password" form:"password"`
	Role         *string         `json:"role" form:"role"`
	FullName     *string         `json:"full_name" form:"full_name"`
	DepartmentID *int            `json:"department_id" form:"department_id"`
	PositionID   *int            `json:"position_id" form:"position_id"`
	Phone        *string         `json:"phone" form:"phone"`
	Email        *string         `json:"email" form:"email"`
	WorkType     *string         `json:"work_type" form:"work_type"`
	WorkSchedule json.RawMessage `json:"work_schedule" form:"work_schedule"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:employees"`

	ID           int             `json:"id" bun:"-"`
	EmployeeID   *string         `json:"employee_id" bun:"employee_id"`
	Password     *string         `json:"-" bun:"password"`
	Role         *string         `json:"role" bun:"role"`
	FullName     *string         `json:"full_name" bun:"full_name"`
	DepartmentID *int            `json:"department_id" bun:"department_id"`
	PositionID   *int            `json:"position_id" bun:"position_id"`
	Phone        *string         `json:"phone" bun:"phone"`
	Email        *string         `json:"email" bun:"email"`
	WorkType     *string         `json:"work_type" bun:"work_type"`
	WorkSchedule json.RawMessage `json:"work_schedule" bun:"work_schedule,type:jsonb"`
	State        string          `json:"state" bun:"state"`
	CreatedAt    time.Time       `json:"-" bun:"created_at"`
	CreatedBy    int             `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID           int             `json:"id" form:"id"`
	EmployeeID   *string         `json:"employee_id" form:"employee_id"`
	Password     *string         `json:"password" form:"password"`
	Role         *string         `json:"role" form:"role"`
	FullName     *string         `json:"full_name" form:"full_name"`
	DepartmentID *int            `json:"department_id" form:"department_id"`
	PositionID   *int            `json:"position_id" form:"position_id"`
	Phone        *string         `json:"phone" form:"phone"`
	Email        *string         `json:"email" form:"email"`
	WorkType     *string         `json:"work_type" form:"work_type"`
	WorkSchedule json.RawMessage `json:"work_schedule" form:"work_schedule"`
}

// ExportRow is one line of the xlsx roster export.
type ExportRow struct {
	EmployeeID     string
	FullName       string
	DepartmentName string
	PositionName   string
	WorkType       string
	Phone          string
	Email          string
	RfidUID        string
}
