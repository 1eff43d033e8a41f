package leave

import (
	"context"

	"ems/backend/internal/repository/postgres/leave"
)

type Leave interface {
	GetList(ctx context.Context, filter leave.Filter) ([]leave.GetListResponse, int, error)
	Create(ctx context.Context, request leave.CreateRequest) (leave.CreateResponse, error)
	UpdateStatus(ctx context.Context, request leave.UpdateStatusRequest) error
	Delete(ctx context.Context, id int) error
}
