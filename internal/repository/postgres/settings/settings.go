package settings

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"ems/backend/foundation/web"
	"ems/backend/internal/auth"
	"ems/backend/internal/pkg/repository/postgresql"
	"ems/backend/internal/repository/postgres"

	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetInfo(ctx context.Context) (GetInfoResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetInfoResponse{}, err
	}

	query := `
		SELECT school_name, default_start, default_end
		FROM school_info
		WHERE deleted_at IS NULL
		ORDER BY id LIMIT 1
	`

	var response GetInfoResponse
	err = r.QueryRowContext(ctx, query).Scan(&response.SchoolName, &response.DefaultStart, &response.DefaultEnd)
	if errors.Is(err, sql.ErrNoRows) {
		return GetInfoResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetInfoResponse{}, web.NewRequestError(errors.Wrap(err, "selecting school info"), http.StatusInternalServerError)
	}

	return response, nil
}

func (r Repository) Update(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	for _, clock := range []*string{request.DefaultStart, request.DefaultEnd} {
		if clock == nil {
			continue
		}
		if _, err := time.Parse("15:04", *clock); err != nil {
			return web.NewRequestError(errors.Wrap(err, "parsing schedule time"), http.StatusBadRequest)
		}
	}

	q := r.NewUpdate().Table("school_info").Where("deleted_at IS NULL")
	if request.SchoolName != nil {
		q.Set("school_name = ?", *request.SchoolName)
	}
	if request.DefaultStart != nil {
		q.Set("default_start = ?", *request.DefaultStart)
	}
	if request.DefaultEnd != nil {
		q.Set("default_end = ?", *request.DefaultEnd)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if _, err := q.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating school info"), http.StatusBadRequest)
	}

	return nil
}
