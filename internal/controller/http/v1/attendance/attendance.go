package attendance

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"reflect"

	"ems/backend/foundation/web"
	"ems/backend/internal/repository/postgres/attendance"
	"ems/backend/internal/service"

	"github.com/pkg/errors"
)

type Controller struct {
	attendance Attendance
	settings   Settings
}

func NewController(attendance Attendance, settings Settings) *Controller {
	return &Controller{attendance: attendance, settings: settings}
}

func (ac Controller) GetList(c *web.Context) error {
	var filter attendance.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if departmentId, ok := c.GetQueryFunc(reflect.Int, "department_id").(*int); ok {
		filter.DepartmentID = departmentId
	}
	if positionId, ok := c.GetQueryFunc(reflect.Int, "position_id").(*int); ok {
		filter.PositionID = positionId
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if date, ok := c.GetQueryFunc(reflect.String, "date").(*string); ok {
		filter.Date = date
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := ac.attendance.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := ac.attendance.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) GetDashboard(c *web.Context) error {
	list, err := ac.attendance.GetDashboard(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   len(list),
		},
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) TimeIn(c *web.Context) error {
	var request attendance.TimeInRequest

	if err := c.BindFunc(&request, "EmployeeID"); err != nil {
		return c.RespondError(err)
	}

	response, err := ac.attendance.TimeIn(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) TimeOut(c *web.Context) error {
	var request attendance.TimeOutRequest

	if err := c.BindFunc(&request, "EmployeeID"); err != nil {
		return c.RespondError(err)
	}

	response, err := ac.attendance.TimeOut(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// Scan is the badge endpoint used by the reader agents. A conflict on
// assignment never happens here; unknown badges come back as 404.
func (ac Controller) Scan(c *web.Context) error {
	var request attendance.ScanRequest

	if err := c.BindFunc(&request, "UID"); err != nil {
		return c.RespondError(err)
	}

	response, err := ac.attendance.Scan(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := ac.attendance.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) GetStatistics(c *web.Context) error {
	response, err := ac.attendance.GetStatistics(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) GetPieChartStatistics(c *web.Context) error {
	response, err := ac.attendance.GetPieChartStatistic(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) GetBarChartStatistics(c *web.Context) error {
	response, err := ac.attendance.GetBarChartStatistic(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) MonthlyReport(c *web.Context) error {
	month := c.Query("month")
	if month == "" {
		return c.RespondError(web.NewRequestError(errors.New("month parameter is required"), http.StatusBadRequest))
	}

	var request attendance.ReportRequest
	request.Month = month
	if employeeID, ok := c.GetQueryFunc(reflect.String, "employee_id").(*string); ok {
		request.EmployeeID = employeeID
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	rows, err := ac.attendance.GetReportRows(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	schoolName := "School"
	if info, err := ac.settings.GetInfo(c.Ctx); err == nil && info.SchoolName != nil {
		schoolName = *info.SchoolName
	}

	lines := make([]service.ReportLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, service.ReportLine{
			WorkDay:     row.WorkDay,
			EmployeeID:  row.EmployeeID,
			FullName:    row.FullName,
			TimeIn:      row.TimeIn,
			TimeOut:     row.TimeOut,
			Status:      row.Status,
			HoursWorked: row.HoursWorked,
		})
	}

	path, err := service.MonthlyReportPDF(schoolName, month, lines)
	if err != nil {
		return c.RespondError(err)
	}

	file, err := os.Open(path)
	if err != nil {
		return c.RespondError(err)
	}
	defer file.Close()

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename="+filepath.Base(path))
	c.Status(http.StatusOK)
	if _, err = io.Copy(c.Writer, file); err != nil {
		return c.RespondError(err)
	}

	return nil
}
