package employee

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"ems/backend/foundation/web"
	"ems/backend/internal/repository/postgres/department"
	"ems/backend/internal/repository/postgres/employee"
	"ems/backend/internal/repository/postgres/position"
	"ems/backend/internal/service"

	"github.com/pkg/errors"
)

type Controller struct {
	employee   Employee
	department Department
	position   Position
}

func NewController(employee Employee, department Department, position Position) *Controller {
	return &Controller{employee: employee, department: department, position: position}
}

func (ec Controller) GetEmployeeList(c *web.Context) error {
	var filter employee.Filter

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
	if state, ok := c.GetQueryFunc(reflect.String, "state").(*string); ok {
		filter.State = state
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := ec.employee.GetList(c.Ctx, filter)
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

func (ec Controller) GetEmployeeDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := ec.employee.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (ec Controller) CreateEmployee(c *web.Context) error {
	var request employee.CreateRequest

	if err := c.BindFunc(&request, "EmployeeID", "Password", "FullName"); err != nil {
		return c.RespondError(err)
	}

	response, err := ec.employee.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (ec Controller) UpdateEmployeeColumns(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request employee.UpdateRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	request.ID = id

	if err := ec.employee.UpdateColumns(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (ec Controller) ArchiveEmployee(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := ec.employee.Archive(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (ec Controller) ExportEmployee(c *web.Context) error {
	list, err := ec.employee.GetExportList(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	rows := make([]service.EmployeeRow, 0, len(list))
	for _, item := range list {
		rows = append(rows, service.EmployeeRow{
			EmployeeID:     item.EmployeeID,
			FullName:       item.FullName,
			DepartmentName: item.DepartmentName,
			PositionName:   item.PositionName,
			WorkType:       item.WorkType,
			Phone:          item.Phone,
			Email:          item.Email,
			RfidUID:        item.RfidUID,
		})
	}

	fileName := filepath.Join("statics", "exports", fmt.Sprintf("employees-%s.xlsx", time.Now().Format("2006-01-02")))
	if err := os.MkdirAll(filepath.Dir(fileName), os.ModePerm); err != nil {
		return c.RespondError(err)
	}
	if err := os.Remove(fileName); err != nil && !os.IsNotExist(err) {
		return c.RespondError(err)
	}

	if err := service.AddDataToExcel(rows, fileName); err != nil {
		return c.RespondError(err)
	}

	return serveFile(c, fileName, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func (ec Controller) GetEmployeeBadge(c *web.Context) error {
	employeeID := c.Query("employee_id")
	if employeeID == "" {
		return c.RespondError(web.NewRequestError(errors.New("employee_id parameter is required"), http.StatusBadRequest))
	}

	filePath, err := service.BadgeQR(employeeID)
	if err != nil {
		return c.RespondError(err)
	}

	return serveFile(c, filePath, "image/png")
}

func (ec Controller) ImportEmployees(c *web.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.New("file is required"), http.StatusBadRequest))
	}

	path, err := service.Upload(file, "imports")
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}

	departments, _, err := ec.department.GetList(c.Ctx, department.Filter{})
	if err != nil {
		return c.RespondError(err)
	}
	departmentMap := make(map[string]int, len(departments))
	for _, d := range departments {
		if d.Name != nil {
			departmentMap[*d.Name] = d.ID
		}
	}

	positions, _, err := ec.position.GetList(c.Ctx, position.Filter{})
	if err != nil {
		return c.RespondError(err)
	}
	positionMap := make(map[string]int, len(positions))
	for _, p := range positions {
		if p.Name != nil {
			positionMap[*p.Name] = p.ID
		}
	}

	existingIDs, err := ec.employee.ExistingIDs(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	rows, incompleteRows, err := service.ReadEmployeeRows(path, departmentMap, positionMap, existingIDs)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}

	created := 0
	for i := range rows {
		row := rows[i]
		request := employee.CreateRequest{
			EmployeeID:   &row.EmployeeID,
			Password:     &row.Password,
			FullName:     &row.FullName,
			DepartmentID: &row.DepartmentID,
			PositionID:   &row.PositionID,
		}
		if row.Phone != "" {
			request.Phone = &row.Phone
		}
		if row.Email != "" {
			request.Email = &row.Email
		}

		if _, err := ec.employee.Create(c.Ctx, request); err != nil {
			return c.RespondError(err)
		}
		created++
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"created":         created,
			"incomplete_rows": incompleteRows,
		},
		"status": true,
	}, http.StatusOK)
}

func (ec Controller) UploadEmployeePhoto(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.New("photo is required"), http.StatusBadRequest))
	}

	path, err := service.Upload(file, "employee_photo")
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}

	if err := ec.employee.SetPhoto(c.Ctx, id, path); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"photo": path,
		},
		"status": true,
	}, http.StatusOK)
}

func serveFile(c *web.Context, filePath, contentType string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return c.RespondError(err)
	}
	defer file.Close()

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename="+filepath.Base(filePath))
	c.Status(http.StatusOK)
	if _, err = io.Copy(c.Writer, file); err != nil {
		return c.RespondError(err)
	}

	return nil
}
