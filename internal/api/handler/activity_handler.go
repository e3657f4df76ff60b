package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/revit/marketplace/internal/core/ports"
)

type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List handles GET /v1/jobs/:id/activity.
//
// @Summary      Job activity feed, newest first
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  activityListResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id}/activity [get]
func (h *ActivityHandler) List(c echo.Context) error {
	jobID := c.Param("id")
	events, err := h.service.ListActivity(c.Request().Context(), actor(c), jobID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toActivityListResponse(jobID, events))
}
