package employee

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ems/backend/foundation/web"
	"ems/backend/internal/auth"
	"ems/backend/internal/entity"
	"ems/backend/internal/pkg/repository/postgresql"
	"ems/backend/internal/repository/postgres"
	"ems/backend/internal/rfid"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetByEmployeeID(ctx context.Context, employeeID string) (entity.Employee, error) {
	var detail entity.Employee

	err := r.NewSelect().Model(&detail).
		Where("employee_id = ? AND deleted_at IS NULL", employeeID).
		Scan(ctx)
	if err != nil {
		return entity.Employee{}, &web.Error{
			Err:    errors.New("employee not found!"),
			Status: http.StatusUnauthorized,
		}
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
			WHERE
				e.deleted_at IS NULL
			`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND
		(e.employee_id ilike '%s' OR e.full_name ilike '%s')`, "%"+search+"%", "%"+search+"%")
	}
	if filter.DepartmentID != nil {
		whereQuery += fmt.Sprintf(` AND e.department_id = %d`, *filter.DepartmentID)
	}
	if filter.PositionID != nil {
		whereQuery += fmt.Sprintf(` AND e.position_id = %d`, *filter.PositionID)
	}
	if filter.State != nil {
		state := strings.Replace(*filter.State, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND e.state = '%s'`, state)
	} else {
		whereQuery += fmt.Sprintf(` AND e.state = '%s'`, entity.EmployeeActive)
	}

	orderQuery := "ORDER BY e.created_at desc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		limitQuery += fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}
	if filter.Offset != nil {
		offsetQuery += fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			e.id,
			e.employee_id,
			e.full_name,
			e.department_id,
			d.name,
			e.position_id,
			p.name,
			e.phone,
			e.email,
			e.work_type,
			e.rfid_uid,
			e.state
		FROM employees e
		LEFT JOIN department d ON d.id=e.department_id
		LEFT JOIN position p ON p.id=e.position_id

		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting employees"), http.StatusInternalServerError)
	}

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.EmployeeID,
			&detail.FullName,
			&detail.DepartmentID,
			&detail.Department,
			&detail.PositionID,
			&detail.Position,
			&detail.Phone,
			&detail.Email,
			&detail.WorkType,
			&detail.RfidUID,
			&detail.State); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning employee list"), http.StatusBadRequest)
		}

		if detail.RfidUID != nil {
			detail.RfidDisplay = rfid.FormatUID(*detail.RfidUID)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(e.id)
		FROM employees e
			%s
	`, whereQuery)

	count := 0
	if err := r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning employee count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	query := fmt.Sprintf(`
		SELECT
			e.id,
			e.employee_id,
			e.full_name,
			e.department_id,
			d.name,
			e.position_id,
			p.name,
			e.phone,
			e.email,
			e.work_type,
			e.work_schedule,
			e.rfid_uid,
			e.photo,
			e.state
		FROM employees e
		LEFT JOIN department d ON d.id=e.department_id
		LEFT JOIN position p ON p.id=e.position_id
		WHERE e.deleted_at IS NULL AND e.id = %d
	`, id)

	var detail GetDetailByIdResponse

	err = r.QueryRowContext(ctx, query).Scan(
		&detail.ID,
		&detail.EmployeeID,
		&detail.FullName,
		&detail.DepartmentID,
		&detail.Department,
		&detail.PositionID,
		&detail.Position,
		&detail.Phone,
		&detail.Email,
		&detail.WorkType,
		&detail.WorkSchedule,
		&detail.RfidUID,
		&detail.Photo,
		&detail.State,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting employee detail"), http.StatusInternalServerError)
	}

	if detail.RfidUID != nil {
		detail.RfidDisplay = rfid.FormatUID(*detail.RfidUID)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "EmployeeID", "Password", "FullName"); err != nil {
		return CreateResponse{}, err
	}

	taken := false
	if err := r.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT id FROM employees WHERE employee_id = '%s' AND deleted_at IS NULL)`,
			strings.Replace(*request.EmployeeID, "'", "''", -1))).Scan(&taken); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "employee id check"), http.StatusInternalServerError)
	}
	if taken {
		return CreateResponse{}, web.NewRequestError(errors.New("employee id is already in use"), http.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}
	hashed := string(hash)

	role := auth.RoleEmployee
	if request.Role != nil {
		role = *request.Role
	}

	response := CreateResponse{
		EmployeeID:   request.EmployeeID,
		Password:     &hashed,
		Role:         &role,
		FullName:     request.FullName,
		DepartmentID: request.DepartmentID,
		PositionID:   request.PositionID,
		Phone:        request.Phone,
		Email:        request.Email,
		WorkType:     request.WorkType,
		WorkSchedule: request.WorkSchedule,
		State:        entity.EmployeeActive,
		CreatedAt:    time.Now(),
		CreatedBy:    claims.UserId,
	}

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating employee"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	q := r.NewUpdate().Table("employees").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.EmployeeID != nil {
		q.Set("employee_id = ?", request.EmployeeID)
	}
	if request.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
		}
		q.Set("password = ?", string(hash))
	}
	if request.Role != nil {
		q.Set("role = ?", request.Role)
	}
	if request.FullName != nil {
		q.Set("full_name = ?", request.FullName)
	}
	if request.DepartmentID != nil {
		q.Set("department_id = ?", request.DepartmentID)
	}
	if request.PositionID != nil {
		q.Set("position_id = ?", request.PositionID)
	}
	if request.Phone != nil {
		q.Set("phone = ?", request.Phone)
	}
	if request.Email != nil {
		q.Set("email = ?", request.Email)
	}
	if request.WorkType != nil {
		q.Set("work_type = ?", request.WorkType)
	}
	if request.WorkSchedule != nil {
		q.Set("work_schedule = ?", string(request.WorkSchedule))
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating employee"), http.StatusBadRequest)
	}

	return nil
}

// Archive soft retires an employee: the row is kept for attendance history
// and the badge assignment stays in the registry as inactive history.
func (r Repository) Archive(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	q := r.NewUpdate().Table("employees").Where("deleted_at IS NULL AND id = ?", id)
	q.Set("state = ?", entity.EmployeeArchived)
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "archiving employee"), http.StatusBadRequest)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "checking affected rows"), http.StatusInternalServerError)
	}
	if affected == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

// ExistingIDs returns the set of employee ids already in use, archived
// ones included. Used by the bulk import to reject duplicates.
func (r Repository) ExistingIDs(ctx context.Context) (map[string]struct{}, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	rows, err := r.QueryContext(ctx, `SELECT employee_id FROM employees WHERE deleted_at IS NULL`)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting employee ids"), http.StatusInternalServerError)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning employee id"), http.StatusInternalServerError)
		}
		ids[id] = struct{}{}
	}

	return ids, nil
}

func (r Repository) SetPhoto(ctx context.Context, id int, path string) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	q := r.NewUpdate().Table("employees").Where("deleted_at IS NULL AND id = ?", id)
	q.Set("photo = ?", path)
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating employee photo"), http.StatusBadRequest)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "checking affected rows"), http.StatusInternalServerError)
	}
	if affected == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

func (r Repository) GetExportList(ctx context.Context) ([]ExportRow, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			e.employee_id,
			e.full_name,
			COALESCE(d.name, ''),
			COALESCE(p.name, ''),
			COALESCE(e.work_type, ''),
			COALESCE(e.phone, ''),
			COALESCE(e.email, ''),
			COALESCE(e.rfid_uid, '')
		FROM employees e
		LEFT JOIN department d ON d.id=e.department_id
		LEFT JOIN position p ON p.id=e.position_id
		WHERE e.deleted_at IS NULL AND e.state = '%s'
		ORDER BY e.full_name
	`, entity.EmployeeActive)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting employees for export"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []ExportRow
	for rows.Next() {
		var row ExportRow
		if err = rows.Scan(
			&row.EmployeeID,
			&row.FullName,
			&row.DepartmentName,
			&row.PositionName,
			&row.WorkType,
			&row.Phone,
			&row.Email,
			&row.RfidUID); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning export row"), http.StatusInternalServerError)
		}
		if row.RfidUID != "" {
			row.RfidUID = rfid.FormatUID(row.RfidUID)
		}
		list = append(list, row)
	}

	return list, nil
}
