package auth

import (
	"context"

	"ems/backend/internal/entity"
)

type Employee interface {
	GetByEmployeeID(ctx context.Context, employeeID string) (entity.Employee, error)
}
