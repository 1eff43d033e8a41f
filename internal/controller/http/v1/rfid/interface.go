package rfid

import (
	"context"

	"ems/backend/internal/repository/postgres/rfid"
)

type Rfid interface {
	GetList(ctx context.Context, filter rfid.Filter) ([]rfid.GetListResponse, int, error)
	Assign(ctx context.Context, request rfid.AssignRequest) (rfid.AssignResponse, error)
	Remove(ctx context.Context, request rfid.RemoveRequest) error
}
