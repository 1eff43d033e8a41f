package leave

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ems/backend/foundation/web"
	rules "ems/backend/internal/attendance"
	"ems/backend/internal/auth"
	"ems/backend/internal/entity"
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

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := ` WHERE l.deleted_at IS NULL`
	if filter.EmployeeID != nil {
		whereQuery += fmt.Sprintf(` AND l.employee_id = '%s'`, strings.Replace(*filter.EmployeeID, "'", "''", -1))
	}
	if filter.Status != nil {
		whereQuery += fmt.Sprintf(` AND l.status = '%s'`, strings.Replace(*filter.Status, "'", "''", -1))
	}

	orderQuery := " ORDER BY l.start_date DESC"

	var limitQuery, offsetQuery string
	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		limitQuery = fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}
	if filter.Offset != nil {
		offsetQuery = fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			l.id,
			l.employee_id,
			e.full_name,
			l.start_date,
			l.end_date,
			l.reason,
			l.status
		FROM leave l
		LEFT JOIN employees e ON e.employee_id = l.employee_id AND e.deleted_at IS NULL
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting leave list"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.EmployeeID,
			&detail.FullName,
			&detail.StartDate,
			&detail.EndDate,
			&detail.Reason,
			&detail.Status); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning leave list"), http.StatusBadRequest)
		}
		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(l.id)
		FROM leave l
		%s
	`, whereQuery)

	count := 0
	if err := r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning leave count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "EmployeeID", "StartDate", "EndDate", "Reason"); err != nil {
		return CreateResponse{}, err
	}

	start, err := time.ParseInLocation("2006-01-02", *request.StartDate, rules.Location)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing start_date"), http.StatusBadRequest)
	}
	end, err := time.ParseInLocation("2006-01-02", *request.EndDate, rules.Location)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing end_date"), http.StatusBadRequest)
	}
	if end.Before(start) {
		return CreateResponse{}, web.NewRequestError(errors.New("end_date is before start_date"), http.StatusBadRequest)
	}

	exists := false
	existsQuery := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT id FROM employees WHERE deleted_at IS NULL AND employee_id = '%s' AND state = '%s'
		)
	`, strings.Replace(*request.EmployeeID, "'", "''", -1), entity.EmployeeActive)
	if err := r.QueryRowContext(ctx, existsQuery).Scan(&exists); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "checking employee"), http.StatusInternalServerError)
	}
	if !exists {
		return CreateResponse{}, web.NewRequestError(errors.New("employee not found"), http.StatusNotFound)
	}

	response := CreateResponse{
		EmployeeID: request.EmployeeID,
		StartDate:  request.StartDate,
		EndDate:    request.EndDate,
		Reason:     request.Reason,
		Status:     entity.LeavePending,
		CreatedAt:  time.Now(),
		CreatedBy:  claims.UserId,
	}

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating leave"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateStatus(ctx context.Context, request UpdateStatusRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID", "Status"); err != nil {
		return err
	}

	if *request.Status != entity.LeaveApproved && *request.Status != entity.LeaveRejected {
		return web.NewRequestError(errors.Errorf("invalid leave status %q", *request.Status), http.StatusBadRequest)
	}

	q := r.NewUpdate().Table("leave").Where("deleted_at IS NULL AND id = ?", *request.ID)
	q.Set("status = ?", *request.Status)
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating leave status"), http.StatusBadRequest)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "reading rows affected"), http.StatusInternalServerError)
	}
	if affected == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

// ActiveSpan returns the approved leave covering the given day for one
// employee, or nil.
func (r Repository) ActiveSpan(ctx context.Context, employeeID string, day time.Time) (*rules.LeaveSpan, error) {
	dayStr := day.In(rules.Location).Format("2006-01-02")

	var startStr, endStr string
	query := fmt.Sprintf(`
		SELECT start_date, end_date
		FROM leave
		WHERE deleted_at IS NULL AND employee_id = '%s' AND status = '%s'
			AND start_date <= '%s' AND end_date >= '%s'
		LIMIT 1
	`, strings.Replace(employeeID, "'", "''", -1), entity.LeaveApproved, dayStr, dayStr)

	err := r.QueryRowContext(ctx, query).Scan(&startStr, &endStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting active leave"), http.StatusInternalServerError)
	}

	start, err := time.ParseInLocation("2006-01-02", startStr, rules.Location)
	if err != nil {
		return nil, errors.Wrap(err, "parsing start_date")
	}
	end, err := time.ParseInLocation("2006-01-02", endStr, rules.Location)
	if err != nil {
		return nil, errors.Wrap(err, "parsing end_date")
	}

	return &rules.LeaveSpan{Start: start, End: end, Active: true}, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "leave", id)
}
