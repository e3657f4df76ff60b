package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/revit/marketplace/internal/core/domain"
	"github.com/revit/marketplace/internal/core/ports"
	"github.com/revit/marketplace/internal/infrastructure/metrics"
)

// ApplicationHandler handles applying to jobs and reviewing applications.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Eligibility handles GET /v1/jobs/:id/eligibility. Anonymous callers are
// answered with the not_logged_in reason.
//
// @Summary      Check whether the caller may apply to a job
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  eligibilityResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id}/eligibility [get]
func (h *ApplicationHandler) Eligibility(c echo.Context) error {
	res, err := h.service.CheckEligibility(c.Request().Context(), actor(c), c.Param("id"))
	if err != nil {
		return err
	}
	if !res.Eligible {
		metrics.EligibilityDenialsTotal.WithLabelValues(string(res.Reason)).Inc()
	}
	return c.JSON(http.StatusOK, eligibilityResponse{
		Eligible: res.Eligible,
		Reason:   string(res.Reason),
		Message:  res.Message,
	})
}

// Submit handles POST /v1/jobs/:id/applications.
//
// @Summary      Apply to a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Job id"
// @Param        body  body      submitApplicationRequest  true  "Cover message"
// @Success      201   {object}  applicationResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/jobs/{id}/applications [post]
func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req submitApplicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	app, err := h.service.Submit(c.Request().Context(), actor(c), c.Param("id"), req.Message)
	if err != nil {
		countDenial(err)
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/v1/applications/"+app.ID)
	return c.JSON(http.StatusCreated, toApplicationResponse(app))
}

// Get handles GET /v1/applications/:id, the resource Submit points to in its
// Location header.
//
// @Summary      Get one application
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application id"
// @Success      200  {object}  applicationResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/applications/{id} [get]
func (h *ApplicationHandler) Get(c echo.Context) error {
	app, err := h.service.GetApplication(c.Request().Context(), actor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toApplicationResponse(app))
}

// ListForJob handles GET /v1/jobs/:id/applications.
//
// @Summary      List a job's applications, newest first
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  applicationListResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id}/applications [get]
func (h *ApplicationHandler) ListForJob(c echo.Context) error {
	apps, err := h.service.ListForJob(c.Request().Context(), actor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toApplicationListResponse(apps))
}

// ListMine handles GET /v1/applications/mine.
//
// @Summary      List the caller's applications, newest first
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  applicationListResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/applications/mine [get]
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	apps, err := h.service.ListMine(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toApplicationListResponse(apps))
}

// Decide handles POST /v1/applications/:id/decision.
//
// @Summary      Accept or reject an application
// @Description  Accepting assigns the professional to the job and rejects every other pending application.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Application id"
// @Param        body  body      decisionRequest  true  "accept or reject"
// @Success      200   {object}  decisionResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/applications/{id}/decision [post]
func (h *ApplicationHandler) Decide(c echo.Context) error {
	var req decisionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.Decide(c.Request().Context(), actor(c), c.Param("id"), domain.Decision(req.Decision))
	if err != nil {
		return err
	}

	rejected := res.RejectedIDs
	if rejected == nil {
		rejected = []string{}
	}
	return c.JSON(http.StatusOK, decisionResponse{
		Application: toApplicationResponse(res.Application),
		Job:         toJobResponse(res.Job),
		RejectedIDs: rejected,
	})
}

func countDenial(err error) {
	var ie *domain.IneligibleError
	switch {
	case errors.As(err, &ie):
		metrics.EligibilityDenialsTotal.WithLabelValues(string(ie.Reason)).Inc()
	case errors.Is(err, domain.ErrDuplicateApplication):
		metrics.EligibilityDenialsTotal.WithLabelValues(string(domain.ReasonAlreadyApplied)).Inc()
	}
}
