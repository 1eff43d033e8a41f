package rfid

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
	badge "ems/backend/internal/rfid"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := ` WHERE ra.deleted_at IS NULL`
	if filter.EmployeeID != nil {
		whereQuery += fmt.Sprintf(` AND ra.employee_id = '%s'`, strings.Replace(*filter.EmployeeID, "'", "''", -1))
	}
	if filter.ActiveOnly != nil && *filter.ActiveOnly {
		whereQuery += ` AND ra.is_active = true`
	}

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
			ra.id,
			ra.uid,
			ra.employee_id,
			e.full_name,
			ra.is_active,
			ra.assigned_at,
			ra.removed_at,
			ra.removal_reason,
			ra.other_reason
		FROM rfid_assignment ra
		LEFT JOIN employees e ON e.employee_id = ra.employee_id AND e.deleted_at IS NULL
		%s
		ORDER BY ra.assigned_at DESC %s %s
	`, whereQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting rfid assignments"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.UID,
			&detail.EmployeeID,
			&detail.FullName,
			&detail.IsActive,
			&detail.AssignedAt,
			&detail.RemovedAt,
			&detail.RemovalReason,
			&detail.OtherReason); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning rfid assignments"), http.StatusBadRequest)
		}
		detail.UIDDisplay = badge.FormatUID(detail.UID)
		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(ra.id)
		FROM rfid_assignment ra
		%s
	`, whereQuery)

	count := 0
	if err := r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning rfid count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// activeByUID returns the active assignment holding the given canonical
// UID, or nil.
func (r Repository) activeByUID(ctx context.Context, uid string) (*badge.Existing, error) {
	query := fmt.Sprintf(`
		SELECT ra.employee_id, COALESCE(e.full_name, ''), ra.assigned_at
		FROM rfid_assignment ra
		LEFT JOIN employees e ON e.employee_id = ra.employee_id AND e.deleted_at IS NULL
		WHERE ra.uid = '%s' AND ra.is_active = true
	`, uid)

	existing := badge.Existing{UID: uid}
	err := r.QueryRowContext(ctx, query).Scan(&existing.EmployeeID, &existing.FullName, &existing.AssignedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting active assignment"), http.StatusInternalServerError)
	}

	return &existing, nil
}

// Assign binds a badge to an employee. When the badge is already active
// on another employee the call fails with *badge.ConflictError unless
// Confirm is set, in which case the badge moves atomically.
func (r Repository) Assign(ctx context.Context, request AssignRequest) (AssignResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return AssignResponse{}, err
	}

	if err := r.ValidateStruct(&request, "EmployeeID", "UID"); err != nil {
		return AssignResponse{}, err
	}

	uid, err := badge.NormalizeUID(*request.UID)
	if err != nil {
		return AssignResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	employeeID := *request.EmployeeID

	exists := false
	existsQuery := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT id FROM employees WHERE deleted_at IS NULL AND employee_id = '%s' AND state = '%s'
		)
	`, strings.Replace(employeeID, "'", "''", -1), entity.EmployeeActive)
	if err := r.QueryRowContext(ctx, existsQuery).Scan(&exists); err != nil {
		return AssignResponse{}, web.NewRequestError(errors.Wrap(err, "checking employee"), http.StatusInternalServerError)
	}
	if !exists {
		return AssignResponse{}, web.NewRequestError(errors.New("employee not found"), http.StatusNotFound)
	}

	existing, err := r.activeByUID(ctx, uid)
	if err != nil {
		return AssignResponse{}, err
	}
	if existing != nil {
		if existing.EmployeeID == employeeID {
			return AssignResponse{}, web.NewRequestError(errors.New("badge is already assigned to this employee"), http.StatusBadRequest)
		}
		if !request.Confirm {
			return AssignResponse{}, &badge.ConflictError{Existing: *existing}
		}
	}

	now := time.Now()
	response := AssignResponse{
		UID:        uid,
		UIDDisplay: badge.FormatUID(uid),
		EmployeeID: employeeID,
		IsActive:   true,
		AssignedAt: now,
		CreatedAt:  now,
		CreatedBy:  claims.UserId,
	}

	err = r.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if existing != nil {
			if err := deactivate(ctx, tx, existing.EmployeeID, badge.ReasonEmployeeTransfer, "", claims.UserId); err != nil {
				return err
			}
		}
		// One active badge per employee: retire any prior card.
		if err := deactivate(ctx, tx, employeeID, badge.ReasonSystemUpdate, "", claims.UserId); err != nil {
			return err
		}

		if _, err := tx.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID); err != nil {
			return errors.Wrap(err, "creating assignment")
		}

		q := tx.NewUpdate().Table("employees").Where("deleted_at IS NULL AND employee_id = ?", employeeID)
		q.Set("rfid_uid = ?", uid)
		q.Set("is_rfid_assigned = ?", true)
		q.Set("updated_at = ?", now)
		q.Set("updated_by = ?", claims.UserId)
		if _, err := q.Exec(ctx); err != nil {
			return errors.Wrap(err, "updating employee badge columns")
		}

		return nil
	})
	if err != nil {
		return AssignResponse{}, web.NewRequestError(errors.Wrap(err, "assigning badge"), http.StatusInternalServerError)
	}

	return response, nil
}

// deactivate retires the active assignment of one employee inside a
// transaction and clears the employee's badge columns. No-op when the
// employee has no active badge.
func deactivate(ctx context.Context, tx bun.Tx, employeeID, reason, otherReason string, updatedBy int) error {
	now := time.Now()

	q := tx.NewUpdate().Table("rfid_assignment").
		Where("deleted_at IS NULL AND employee_id = ? AND is_active = true", employeeID)
	q.Set("is_active = ?", false)
	q.Set("removed_at = ?", now)
	q.Set("removal_reason = ?", reason)
	if otherReason != "" {
		q.Set("other_reason = ?", otherReason)
	}
	q.Set("updated_at = ?", now)
	q.Set("updated_by = ?", updatedBy)

	result, err := q.Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "deactivating assignment")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "reading rows affected")
	}
	if affected == 0 {
		return nil
	}

	eq := tx.NewUpdate().Table("employees").Where("deleted_at IS NULL AND employee_id = ?", employeeID)
	eq.Set("rfid_uid = ?", nil)
	eq.Set("is_rfid_assigned = ?", false)
	eq.Set("updated_at = ?", now)
	eq.Set("updated_by = ?", updatedBy)
	if _, err := eq.Exec(ctx); err != nil {
		return errors.Wrap(err, "clearing employee badge columns")
	}

	return nil
}

func (r Repository) Remove(ctx context.Context, request RemoveRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "EmployeeID", "Reason"); err != nil {
		return err
	}

	otherReason := ""
	if request.OtherReason != nil {
		otherReason = *request.OtherReason
	}
	if err := badge.ValidateRemoval(*request.Reason, otherReason); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	hasActive := false
	activeQuery := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT id FROM rfid_assignment
			WHERE deleted_at IS NULL AND employee_id = '%s' AND is_active = true
		)
	`, strings.Replace(*request.EmployeeID, "'", "''", -1))
	if err := r.QueryRowContext(ctx, activeQuery).Scan(&hasActive); err != nil {
		return web.NewRequestError(errors.Wrap(err, "checking active assignment"), http.StatusInternalServerError)
	}
	if !hasActive {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	err = r.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return deactivate(ctx, tx, *request.EmployeeID, *request.Reason, otherReason, claims.UserId)
	})
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "removing badge"), http.StatusInternalServerError)
	}

	return nil
}
