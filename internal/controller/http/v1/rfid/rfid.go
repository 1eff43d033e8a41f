package rfid

import (
	"net/http"
	"reflect"

	"ems/backend/foundation/web"
	badge "ems/backend/internal/rfid"
	"ems/backend/internal/repository/postgres/rfid"

	"github.com/pkg/errors"
)

type Controller struct {
	rfid Rfid
}

func NewController(rfid Rfid) *Controller {
	return &Controller{rfid}
}

func (rc Controller) GetList(c *web.Context) error {
	var filter rfid.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if employeeID, ok := c.GetQueryFunc(reflect.String, "employee_id").(*string); ok {
		filter.EmployeeID = employeeID
	}
	if activeOnly, ok := c.GetQueryFunc(reflect.Bool, "active_only").(*bool); ok {
		filter.ActiveOnly = activeOnly
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := rc.rfid.GetList(c.Ctx, filter)
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

// Assign binds a badge. When the badge already belongs to someone else
// the response is a 409 carrying the current holder; repeating the call
// with confirm=true moves the badge.
func (rc Controller) Assign(c *web.Context) error {
	var request rfid.AssignRequest

	if err := c.BindFunc(&request, "EmployeeID", "UID"); err != nil {
		return c.RespondError(err)
	}

	response, err := rc.rfid.Assign(c.Ctx, request)
	if err != nil {
		var conflict *badge.ConflictError
		if errors.As(err, &conflict) {
			return c.Respond(map[string]interface{}{
				"error":                 conflict.Error(),
				"requires_confirmation": true,
				"existing": map[string]interface{}{
					"uid":         badge.FormatUID(conflict.Existing.UID),
					"employee_id": conflict.Existing.EmployeeID,
					"full_name":   conflict.Existing.FullName,
					"assigned_at": conflict.Existing.AssignedAt,
				},
				"status": false,
			}, http.StatusConflict)
		}
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (rc Controller) Remove(c *web.Context) error {
	var request rfid.RemoveRequest

	if err := c.BindFunc(&request, "EmployeeID", "Reason"); err != nil {
		return c.RespondError(err)
	}

	if err := rc.rfid.Remove(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
