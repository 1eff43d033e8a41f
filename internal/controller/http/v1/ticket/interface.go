package ticket

import (
	"context"

	"ems/backend/internal/repository/postgres/ticket"
)

type Ticket interface {
	GetList(ctx context.Context, filter ticket.Filter) ([]ticket.GetListResponse, int, error)
	Create(ctx context.Context, request ticket.CreateRequest) (ticket.CreateResponse, error)
}
