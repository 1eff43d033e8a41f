package settings

import (
	"net/http"

	"ems/backend/foundation/web"
	"ems/backend/internal/repository/postgres/settings"
)

type Controller struct {
	settings Settings
}

func NewController(settings Settings) *Controller {
	return &Controller{settings}
}

func (sc Controller) GetInfo(c *web.Context) error {
	response, err := sc.settings.GetInfo(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (sc Controller) Update(c *web.Context) error {
	var request settings.UpdateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	if err := sc.settings.Update(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
