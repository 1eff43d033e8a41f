package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
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
	"ems/backend/internal/repository/redisdb"
	"ems/backend/internal/rfid"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
	hints *redisdb.HintStore
}

func NewRepository(database *postgresql.Database, hints *redisdb.HintStore) *Repository {
	return &Repository{Database: database, hints: hints}
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	day := time.Now().In(rules.Location)
	if filter.Date != nil {
		parsed, err := time.ParseInLocation("2006-01-02", *filter.Date, rules.Location)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "date parse"), http.StatusBadRequest)
		}
		day = parsed
	}

	list, err := r.deriveForDate(ctx, day, filter)
	if err != nil {
		return nil, 0, err
	}

	if filter.Status != nil {
		filtered := list[:0]
		for _, row := range list {
			if row.Status == *filter.Status {
				filtered = append(filtered, row)
			}
		}
		list = filtered
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(e.id)
		FROM employees e
		%s
	`, r.employeeWhere(filter))

	count := 0
	if err := r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) employeeWhere(filter Filter) string {
	whereQuery := fmt.Sprintf(`
		WHERE
			e.deleted_at IS NULL AND e.state = '%s'
		`, entity.EmployeeActive)

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

	return whereQuery
}

// deriveForDate loads every matching employee with that day's raw
// attendance, leave and schedule data and runs the status derivation per
// row. Claims are checked by the callers; the snapshot job calls this
// without a request context.
func (r Repository) deriveForDate(ctx context.Context, day time.Time, filter Filter) ([]GetListResponse, error) {
	dayStr := day.In(rules.Location).Format("2006-01-02")

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
			e.employee_id,
			e.full_name,
			e.department_id,
			d.name,
			e.position_id,
			p.name,
			e.work_schedule,
			a.time_in,
			a.time_out,
			a.status,
			a.source,
			l.start_date,
			l.end_date
		FROM employees e
		LEFT JOIN attendance a ON a.employee_id = e.employee_id AND a.work_day = '%s' AND a.deleted_at IS NULL
		LEFT JOIN leave l ON l.employee_id = e.employee_id AND l.status = '%s'
			AND l.start_date <= '%s' AND l.end_date >= '%s' AND l.deleted_at IS NULL
		LEFT JOIN department d ON d.id = e.department_id
		LEFT JOIN position p ON p.id = e.position_id
		%s
		ORDER BY e.full_name %s %s
	`, dayStr, entity.LeaveApproved, dayStr, dayStr, r.employeeWhere(filter), limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting attendance list"), http.StatusInternalServerError)
	}
	defer rows.Close()

	workDay, err := date.ParseDate(dayStr)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "converting work_day to date.Date"), http.StatusInternalServerError)
	}

	now := time.Now()
	var list []GetListResponse

	for rows.Next() {
		var (
			detail        GetListResponse
			scheduleBytes []byte
			timeIn        sql.NullTime
			timeOut       sql.NullTime
			status        sql.NullString
			source        sql.NullString
			leaveStart    sql.NullString
			leaveEnd      sql.NullString
		)

		if err = rows.Scan(
			&detail.EmployeeID,
			&detail.FullName,
			&detail.DepartmentID,
			&detail.Department,
			&detail.PositionID,
			&detail.Position,
			&scheduleBytes,
			&timeIn,
			&timeOut,
			&status,
			&source,
			&leaveStart,
			&leaveEnd); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning attendance list"), http.StatusBadRequest)
		}

		var week rules.WeekSchedule
		if len(scheduleBytes) > 0 {
			// A malformed schedule falls back to the school default.
			_ = json.Unmarshal(scheduleBytes, &week)
		}

		var rec *rules.Record
		if timeIn.Valid {
			rec = &rules.Record{TimeIn: &timeIn.Time}
			if timeOut.Valid {
				rec.TimeOut = &timeOut.Time
			}
			if status.Valid {
				rec.Status = status.String
			}
		}

		var leave *rules.LeaveSpan
		if leaveStart.Valid && leaveEnd.Valid {
			start, startErr := time.ParseInLocation("2006-01-02", leaveStart.String, rules.Location)
			end, endErr := time.ParseInLocation("2006-01-02", leaveEnd.String, rules.Location)
			if startErr == nil && endErr == nil {
				leave = &rules.LeaveSpan{Start: start, End: end, Active: true}
			}
		}

		var hint *rules.RealtimeHint
		if r.hints != nil && detail.EmployeeID != nil {
			hint, _ = r.hints.Get(ctx, *detail.EmployeeID, day)
		}

		ds := rules.DeriveStatus(day, week, rec, leave, hint, now)

		detail.WorkDay = &workDay
		detail.Status = rules.DisplayStatus(ds.Status)
		detail.TimeIn = ds.TimeIn
		detail.TimeOut = ds.TimeOut
		detail.IsWorkDay = ds.IsWorkDay
		detail.HoursWorked = ds.HoursWorked
		if source.Valid {
			detail.Source = &source.String
		}

		list = append(list, detail)
	}

	return list, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	query := fmt.Sprintf(`
		SELECT
			a.id,
			a.employee_id,
			e.full_name,
			d.name,
			p.name,
			a.work_day,
			a.status,
			a.source,
			a.time_in,
			a.time_out,
			a.hours_worked,
			a.late_minutes,
			a.overtime_minutes
		FROM attendance a
		LEFT JOIN employees e ON e.employee_id = a.employee_id AND e.deleted_at IS NULL
		LEFT JOIN department d ON d.id = e.department_id
		LEFT JOIN position p ON p.id = e.position_id
		WHERE a.deleted_at IS NULL AND a.id = %d
	`, id)

	var detail GetDetailByIdResponse
	var workDayString string

	err = r.QueryRowContext(ctx, query).Scan(
		&detail.ID,
		&detail.EmployeeID,
		&detail.FullName,
		&detail.Department,
		&detail.Position,
		&workDayString,
		&detail.Status,
		&detail.Source,
		&detail.TimeIn,
		&detail.TimeOut,
		&detail.HoursWorked,
		&detail.LateMinutes,
		&detail.OvertimeMinutes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting attendance detail"), http.StatusInternalServerError)
	}

	workDay, err := date.ParseDate(workDayString)
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "converting work_day to date.Date"), http.StatusBadRequest)
	}
	detail.WorkDay = &workDay

	return detail, nil
}

// dayRecord loads the raw attendance row for one employee and civil day.
// Returns nil when there is no row yet.
func (r Repository) dayRecord(ctx context.Context, employeeID, dayStr string) (*rules.Record, int, error) {
	var (
		id      int
		timeIn  sql.NullTime
		timeOut sql.NullTime
		status  sql.NullString
	)

	query := fmt.Sprintf(`
		SELECT id, time_in, time_out, status
		FROM attendance
		WHERE deleted_at IS NULL AND employee_id = '%s' AND work_day = '%s'
	`, strings.Replace(employeeID, "'", "''", -1), dayStr)

	err := r.QueryRowContext(ctx, query).Scan(&id, &timeIn, &timeOut, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting day record"), http.StatusInternalServerError)
	}

	rec := &rules.Record{}
	if timeIn.Valid {
		rec.TimeIn = &timeIn.Time
	}
	if timeOut.Valid {
		rec.TimeOut = &timeOut.Time
	}
	if status.Valid {
		rec.Status = status.String
	}

	return rec, id, nil
}

// employeeSchedule loads the work schedule of an active employee.
func (r Repository) employeeSchedule(ctx context.Context, employeeID string) (string, rules.WeekSchedule, error) {
	var (
		fullName      string
		state         string
		scheduleBytes []byte
	)

	query := fmt.Sprintf(`
		SELECT full_name, state, work_schedule
		FROM employees
		WHERE deleted_at IS NULL AND employee_id = '%s'
	`, strings.Replace(employeeID, "'", "''", -1))

	err := r.QueryRowContext(ctx, query).Scan(&fullName, &state, &scheduleBytes)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, web.NewRequestError(errors.New("employee not found"), http.StatusNotFound)
	}
	if err != nil {
		return "", nil, web.NewRequestError(errors.Wrap(err, "selecting employee schedule"), http.StatusInternalServerError)
	}
	if state != entity.EmployeeActive {
		return "", nil, web.NewRequestError(errors.New("employee is archived"), http.StatusBadRequest)
	}

	var week rules.WeekSchedule
	if len(scheduleBytes) > 0 {
		_ = json.Unmarshal(scheduleBytes, &week)
	}

	return fullName, week, nil
}

// proposedTime resolves an optional "15:04" civil time against today in
// the school zone, defaulting to now.
func proposedTime(raw string) (time.Time, error) {
	now := time.Now().In(rules.Location)
	if raw == "" {
		return now, nil
	}

	clock, err := time.Parse("15:04", raw)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "parsing time")
	}
	return time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, rules.Location), nil
}

func minutesAfter(t time.Time, clock string) int {
	ref, err := time.Parse("15:04", clock)
	if err != nil {
		return 0
	}
	local := t.In(rules.Location)
	return (local.Hour()*60 + local.Minute()) - (ref.Hour()*60 + ref.Minute())
}

func (r Repository) TimeIn(ctx context.Context, request TimeInRequest) (EntryResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return EntryResponse{}, err
	}

	if err := r.ValidateStruct(&request, "EmployeeID"); err != nil {
		return EntryResponse{}, err
	}

	proposed, err := proposedTime(request.Time)
	if err != nil {
		return EntryResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}
	dayStr := proposed.Format("2006-01-02")

	rec, _, err := r.dayRecord(ctx, *request.EmployeeID, dayStr)
	if err != nil {
		return EntryResponse{}, err
	}

	if err := rules.ValidateManualEntry(rules.ActionTimeIn, rec, proposed); err != nil {
		return EntryResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	_, week, err := r.employeeSchedule(ctx, *request.EmployeeID)
	if err != nil {
		return EntryResponse{}, err
	}

	day := rules.ScheduleFor(week, proposed)
	status := rules.StatusPresent
	late := 0
	if day.Active {
		if m := minutesAfter(proposed, day.Start); m > 0 {
			status = rules.StatusLate
			late = m
		}
	}

	response := EntryResponse{
		EmployeeID:  request.EmployeeID,
		WorkDay:     dayStr,
		TimeIn:      proposed,
		TimeInClock: proposed.Format("15:04"),
		Status:      status,
		Source:      entity.SourceManual,
		LateMinutes: late,
		CreatedAt:   time.Now(),
		CreatedBy:   claims.UserId,
	}

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return EntryResponse{}, web.NewRequestError(errors.Wrap(err, "creating attendance entry"), http.StatusBadRequest)
	}

	r.pushHint(ctx, *request.EmployeeID, rules.RealtimeHint{
		Day:    proposed,
		Status: status,
		TimeIn: response.TimeInClock,
	})

	return response, nil
}

func (r Repository) TimeOut(ctx context.Context, request TimeOutRequest) (ExitResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return ExitResponse{}, err
	}

	if err := r.ValidateStruct(&request, "EmployeeID"); err != nil {
		return ExitResponse{}, err
	}

	proposed, err := proposedTime(request.Time)
	if err != nil {
		return ExitResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}
	dayStr := proposed.Format("2006-01-02")

	rec, recordID, err := r.dayRecord(ctx, *request.EmployeeID, dayStr)
	if err != nil {
		return ExitResponse{}, err
	}

	if err := rules.ValidateManualEntry(rules.ActionTimeOut, rec, proposed); err != nil {
		return ExitResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	_, week, err := r.employeeSchedule(ctx, *request.EmployeeID)
	if err != nil {
		return ExitResponse{}, err
	}

	response, err := r.closeRecord(ctx, closeRequest{
		claims:     claims,
		employeeID: *request.EmployeeID,
		recordID:   recordID,
		rec:        rec,
		week:       week,
		at:         proposed,
		dayStr:     dayStr,
	})
	if err != nil {
		return ExitResponse{}, err
	}

	return response, nil
}

type closeRequest struct {
	claims     auth.Claims
	employeeID string
	recordID   int
	rec        *rules.Record
	week       rules.WeekSchedule
	at         time.Time
	dayStr     string
}

// closeRecord stamps the time-out on an open record. Shared between the
// manual path (already validated) and the badge scan path.
func (r Repository) closeRecord(ctx context.Context, req closeRequest) (ExitResponse, error) {
	status := rules.StatusCompleted
	if req.rec.Status == rules.StatusLate {
		status = rules.StatusLate
	}

	hours := req.at.Sub(*req.rec.TimeIn).Hours()

	overtime := 0
	day := rules.ScheduleFor(req.week, req.at)
	if day.Active {
		if m := minutesAfter(req.at, day.End); m > 0 {
			overtime = m
		}
	}

	q := r.NewUpdate().Table("attendance").Where("deleted_at IS NULL AND id = ?", req.recordID)
	q.Set("time_out = ?", req.at)
	q.Set("status = ?", status)
	q.Set("hours_worked = ?", hours)
	q.Set("overtime_minutes = ?", overtime)
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", req.claims.UserId)

	if _, err := q.Exec(ctx); err != nil {
		return ExitResponse{}, web.NewRequestError(errors.Wrap(err, "updating attendance entry"), http.StatusBadRequest)
	}

	r.pushHint(ctx, req.employeeID, rules.RealtimeHint{
		Day:         req.at,
		Status:      status,
		TimeIn:      req.rec.TimeIn.In(rules.Location).Format("15:04"),
		TimeOut:     req.at.Format("15:04"),
		HoursWorked: hours,
	})

	return ExitResponse{
		EmployeeID:      req.employeeID,
		WorkDay:         req.dayStr,
		TimeOut:         req.at.Format("15:04"),
		Status:          status,
		HoursWorked:     hours,
		OvertimeMinutes: overtime,
	}, nil
}

// Scan handles a badge read: the first scan of the day opens the record,
// the second closes it. The dwell rule applies to manual entry only.
func (r Repository) Scan(ctx context.Context, request ScanRequest) (ScanResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return ScanResponse{}, err
	}

	uid, err := rfid.NormalizeUID(request.UID)
	if err != nil {
		return ScanResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	var employeeID, fullName string
	query := fmt.Sprintf(`
		SELECT e.employee_id, e.full_name
		FROM rfid_assignment ra
		JOIN employees e ON e.employee_id = ra.employee_id AND e.deleted_at IS NULL
		WHERE ra.uid = '%s' AND ra.is_active = true
	`, uid)

	err = r.QueryRowContext(ctx, query).Scan(&employeeID, &fullName)
	if errors.Is(err, sql.ErrNoRows) {
		return ScanResponse{}, web.NewRequestError(errors.Errorf("badge %s is not assigned", rfid.FormatUID(uid)), http.StatusNotFound)
	}
	if err != nil {
		return ScanResponse{}, web.NewRequestError(errors.Wrap(err, "looking up badge"), http.StatusInternalServerError)
	}

	now := time.Now().In(rules.Location)
	dayStr := now.Format("2006-01-02")

	rec, recordID, err := r.dayRecord(ctx, employeeID, dayStr)
	if err != nil {
		return ScanResponse{}, err
	}

	_, week, err := r.employeeSchedule(ctx, employeeID)
	if err != nil {
		return ScanResponse{}, err
	}

	// Second scan of the day closes the record.
	if rec != nil && rec.TimeIn != nil {
		if rec.TimeOut != nil {
			return ScanResponse{}, web.NewRequestError(errors.New("attendance already completed for today"), http.StatusBadRequest)
		}

		exit, err := r.closeRecord(ctx, closeRequest{
			claims:     claims,
			employeeID: employeeID,
			recordID:   recordID,
			rec:        rec,
			week:       week,
			at:         now,
			dayStr:     dayStr,
		})
		if err != nil {
			return ScanResponse{}, err
		}

		return ScanResponse{
			EmployeeID: employeeID,
			FullName:   fullName,
			Action:     string(rules.ActionTimeOut),
			Status:     exit.Status,
			TimeIn:     rec.TimeIn.In(rules.Location).Format("15:04"),
			TimeOut:    exit.TimeOut,
		}, nil
	}

	day := rules.ScheduleFor(week, now)
	status := rules.StatusPresent
	late := 0
	if day.Active {
		if m := minutesAfter(now, day.Start); m > 0 {
			status = rules.StatusLate
			late = m
		}
	}

	entry := EntryResponse{
		EmployeeID:  &employeeID,
		WorkDay:     dayStr,
		TimeIn:      now,
		TimeInClock: now.Format("15:04"),
		Status:      status,
		Source:      entity.SourceRfid,
		LateMinutes: late,
		CreatedAt:   time.Now(),
		CreatedBy:   claims.UserId,
	}

	_, err = r.NewInsert().Model(&entry).Returning("id").Exec(ctx, &entry.ID)
	if err != nil {
		return ScanResponse{}, web.NewRequestError(errors.Wrap(err, "creating attendance by badge"), http.StatusBadRequest)
	}

	r.pushHint(ctx, employeeID, rules.RealtimeHint{
		Day:    now,
		Status: status,
		TimeIn: entry.TimeInClock,
	})

	return ScanResponse{
		EmployeeID: employeeID,
		FullName:   fullName,
		Action:     string(rules.ActionTimeIn),
		Status:     status,
		TimeIn:     entry.TimeInClock,
	}, nil
}

// pushHint best-effort publishes the realtime hint; a redis outage must
// not fail the attendance write.
func (r Repository) pushHint(ctx context.Context, employeeID string, hint rules.RealtimeHint) {
	if r.hints == nil {
		return
	}
	_ = r.hints.Set(ctx, employeeID, hint)
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "attendance", id)
}

func (r Repository) GetStatistics(ctx context.Context) (GetStatisticResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleDashboard)
	if err != nil {
		return GetStatisticResponse{}, err
	}

	today := time.Now().In(rules.Location).Format("2006-01-02")

	query := fmt.Sprintf(`
	SELECT
		(SELECT COUNT(id) FROM employees WHERE deleted_at IS NULL AND state = '%s') AS total_employee,
		(SELECT COUNT(id) FROM attendance WHERE deleted_at IS NULL AND work_day = '%s' AND time_in IS NOT NULL) AS present,
		(SELECT COUNT(id) FROM attendance WHERE deleted_at IS NULL AND work_day = '%s' AND status = '%s') AS late,
		(SELECT COUNT(id) FROM attendance WHERE deleted_at IS NULL AND work_day = '%s' AND time_out IS NOT NULL) AS completed,
		(SELECT COUNT(id) FROM leave WHERE deleted_at IS NULL AND status = '%s' AND start_date <= '%s' AND end_date >= '%s') AS on_leave,
		(SELECT COUNT(e.id) FROM employees e WHERE e.deleted_at IS NULL AND e.state = '%s'
			AND NOT EXISTS (SELECT 1 FROM attendance a WHERE a.employee_id = e.employee_id AND a.work_day = '%s' AND a.deleted_at IS NULL)) AS not_yet_in
	`, entity.EmployeeActive, today, today, rules.StatusLate, today, entity.LeaveApproved, today, today, entity.EmployeeActive, today)

	var totalEmployee, present, late, completed, onLeave, notYetIn int
	err = r.QueryRowContext(ctx, query).Scan(
		&totalEmployee,
		&present,
		&late,
		&completed,
		&onLeave,
		&notYetIn,
	)
	if err != nil {
		return GetStatisticResponse{}, web.NewRequestError(errors.Wrap(err, "fetching statistics"), http.StatusInternalServerError)
	}

	return GetStatisticResponse{
		TotalEmployee: &totalEmployee,
		Present:       &present,
		Late:          &late,
		Completed:     &completed,
		OnLeave:       &onLeave,
		NotYetIn:      &notYetIn,
	}, nil
}

func (r Repository) GetPieChartStatistic(ctx context.Context) (PieChartResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleDashboard)
	if err != nil {
		return PieChartResponse{}, err
	}

	today := time.Now().In(rules.Location).Format("2006-01-02")

	query := fmt.Sprintf(`
	WITH today_attendance AS (
		SELECT
			COUNT(a.id) AS present_count,
			(SELECT COUNT(id) FROM employees WHERE deleted_at IS NULL AND state = '%s') AS total_count
		FROM attendance a
		WHERE a.deleted_at IS NULL AND a.work_day = '%s'
	)
	SELECT
		COALESCE(ROUND(100.0 * present_count / GREATEST(1, total_count), 0), 0) AS present_percentage,
		COALESCE(ROUND(100.0 * (total_count - present_count) / GREATEST(1, total_count), 0), 0) AS absent_percentage
	FROM today_attendance
	`, entity.EmployeeActive, today)

	var presentPercentage, absentPercentage float64
	if err := r.QueryRowContext(ctx, query).Scan(&presentPercentage, &absentPercentage); err != nil {
		return PieChartResponse{}, web.NewRequestError(errors.Wrap(err, "pie chart data not found"), http.StatusInternalServerError)
	}

	present := int(presentPercentage)
	absent := int(absentPercentage)

	return PieChartResponse{Present: &present, Absent: &absent}, nil
}

func (r Repository) GetBarChartStatistic(ctx context.Context) ([]BarChartResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleDashboard)
	if err != nil {
		return nil, err
	}

	today := time.Now().In(rules.Location).Format("2006-01-02")

	query := fmt.Sprintf(`
	WITH today_attendance AS (
		SELECT
			COUNT(a.id) AS present_count,
			COUNT(e.id) AS total_count,
			e.department_id
		FROM employees e
		LEFT JOIN attendance a ON a.employee_id = e.employee_id AND a.work_day = '%s' AND a.deleted_at IS NULL
		WHERE e.deleted_at IS NULL AND e.state = '%s'
		GROUP BY e.department_id
	)
	SELECT
		d.name AS department,
		COALESCE(ROUND(100.0 * present_count / GREATEST(1, total_count), 2), 0) AS percentage
	FROM today_attendance
	JOIN department d ON d.id = today_attendance.department_id
	`, today, entity.EmployeeActive)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "bar chart data"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var results []BarChartResponse
	for rows.Next() {
		var (
			department string
			percentage float64
		)
		if err := rows.Scan(&department, &percentage); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning bar chart row"), http.StatusInternalServerError)
		}
		results = append(results, BarChartResponse{Department: &department, Percentage: &percentage})
	}

	if err = rows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "bar chart rows"), http.StatusInternalServerError)
	}

	return results, nil
}

// GetReportRows collects one month of raw records for the PDF report.
func (r Repository) GetReportRows(ctx context.Context, request ReportRequest) ([]ReportRow, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	month, err := time.ParseInLocation("2006-01", request.Month, rules.Location)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "parsing month"), http.StatusBadRequest)
	}
	start := month.Format("2006-01-02")
	end := month.AddDate(0, 1, 0).Format("2006-01-02")

	whereQuery := fmt.Sprintf(`
		WHERE a.deleted_at IS NULL AND a.work_day >= '%s' AND a.work_day < '%s'
	`, start, end)
	if request.EmployeeID != nil {
		whereQuery += fmt.Sprintf(` AND a.employee_id = '%s'`, strings.Replace(*request.EmployeeID, "'", "''", -1))
	}

	query := fmt.Sprintf(`
		SELECT
			a.work_day,
			a.employee_id,
			COALESCE(e.full_name, ''),
			a.time_in,
			a.time_out,
			COALESCE(a.status, ''),
			COALESCE(a.hours_worked, 0)
		FROM attendance a
		LEFT JOIN employees e ON e.employee_id = a.employee_id AND e.deleted_at IS NULL
		%s
		ORDER BY a.work_day, e.full_name
	`, whereQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting report rows"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []ReportRow
	for rows.Next() {
		var (
			row     ReportRow
			timeIn  sql.NullTime
			timeOut sql.NullTime
			hours   float64
		)
		if err = rows.Scan(
			&row.WorkDay,
			&row.EmployeeID,
			&row.FullName,
			&timeIn,
			&timeOut,
			&row.Status,
			&hours); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning report row"), http.StatusInternalServerError)
		}

		if timeIn.Valid {
			row.TimeIn = timeIn.Time.In(rules.Location).Format("15:04")
		}
		if timeOut.Valid {
			row.TimeOut = timeOut.Time.In(rules.Location).Format("15:04")
		}
		if hours > 0 {
			row.HoursWorked = fmt.Sprintf("%.2f", hours)
		}

		list = append(list, row)
	}

	return list, nil
}

// SnapshotToday derives today's dashboard rows and caches them in redis.
// Runs from the periodic job, outside any request.
func (r Repository) SnapshotToday(ctx context.Context) error {
	if r.hints == nil {
		return nil
	}

	list, err := r.deriveForDate(ctx, time.Now().In(rules.Location), Filter{})
	if err != nil {
		return err
	}

	payload, err := json.Marshal(list)
	if err != nil {
		return errors.Wrap(err, "marshaling snapshot")
	}

	return r.hints.SetSnapshot(ctx, payload, time.Minute)
}

// GetDashboard serves the cached snapshot when fresh, otherwise derives
// live.
func (r Repository) GetDashboard(ctx context.Context) ([]GetListResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleDashboard)
	if err != nil {
		return nil, err
	}

	if r.hints != nil {
		if raw, err := r.hints.GetSnapshot(ctx); err == nil && raw != nil {
			var list []GetListResponse
			if err := json.Unmarshal(raw, &list); err == nil {
				return list, nil
			}
		}
	}

	return r.deriveForDate(ctx, time.Now().In(rules.Location), Filter{})
}
