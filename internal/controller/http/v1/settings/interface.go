package settings

import (
	"context"

	"ems/backend/internal/repository/postgres/settings"
)

type Settings interface {
	GetInfo(ctx context.Context) (settings.GetInfoResponse, error)
	Update(ctx context.Context, request settings.UpdateRequest) error
}
