package employee

import (
	"context"

	"ems/backend/internal/repository/postgres/department"
	"ems/backend/internal/repository/postgres/employee"
	"ems/backend/internal/repository/postgres/position"
)

type Employee interface {
	GetList(ctx context.Context, filter employee.Filter) ([]employee.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (employee.GetDetailByIdResponse, error)
	GetExportList(ctx context.Context) ([]employee.ExportRow, error)
	ExistingIDs(ctx context.Context) (map[string]struct{}, error)

	Create(ctx context.Context, request employee.CreateRequest) (employee.CreateResponse, error)
	UpdateColumns(ctx context.Context, request employee.UpdateRequest) error
	SetPhoto(ctx context.Context, id int, path string) error
	Archive(ctx context.Context, id int) error
}

type Department interface {
	GetList(ctx context.Context, filter department.Filter) ([]department.GetListResponse, int, error)
}

type Position interface {
	GetList(ctx context.Context, filter position.Filter) ([]position.GetListResponse, int, error)
}
