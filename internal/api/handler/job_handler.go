package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/revit/marketplace/internal/core/domain"
	"github.com/revit/marketplace/internal/core/ports"
)

// JobHandler handles HTTP requests for the job lifecycle.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// Create handles POST /v1/jobs.
//
// @Summary      Post a new job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job details"
// @Success      201   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	var req createJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.service.CreateJob(c.Request().Context(), actor(c), ports.CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Budget:      req.Budget,
		Location:    req.Location,
	})
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/v1/jobs/"+job.ID)
	return c.JSON(http.StatusCreated, toJobResponse(job))
}

// Get handles GET /v1/jobs/:id.
//
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  jobResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.GetJob(c.Request().Context(), actor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}

// ListOpen handles GET /v1/jobs.
//
// @Summary      Browse open jobs
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        category  query     string  false  "Only jobs in this category"
// @Success      200       {object}  jobListResponse
// @Router       /v1/jobs [get]
func (h *JobHandler) ListOpen(c echo.Context) error {
	jobs, err := h.service.ListOpenJobs(c.Request().Context(), actor(c), c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobListResponse(jobs))
}

// ListMine handles GET /v1/jobs/mine.
//
// @Summary      List the caller's posted jobs, newest first
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  jobListResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/jobs/mine [get]
func (h *JobHandler) ListMine(c echo.Context) error {
	jobs, err := h.service.ListClientJobs(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobListResponse(jobs))
}

// ListMatching handles GET /v1/jobs/matching.
//
// @Summary      List open jobs matching the caller's profession
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  jobListResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/jobs/matching [get]
func (h *JobHandler) ListMatching(c echo.Context) error {
	jobs, err := h.service.ListMatchingJobs(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobListResponse(jobs))
}

// SetStatus handles PATCH /v1/jobs/:id/status.
//
// @Summary      Move a job along its lifecycle
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Job id"
// @Param        body  body      setStatusRequest  true  "Target status"
// @Success      200   {object}  jobResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/jobs/{id}/status [patch]
func (h *JobHandler) SetStatus(c echo.Context) error {
	var req setStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.service.SetStatus(c.Request().Context(), actor(c), c.Param("id"), domain.JobStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}

// Assign handles POST /v1/jobs/:id/assign.
//
// @Summary      Assign a professional to an open job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Job id"
// @Param        body  body      assignRequest  true  "Professional to assign"
// @Success      200   {object}  jobResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/jobs/{id}/assign [post]
func (h *JobHandler) Assign(c echo.Context) error {
	var req assignRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.service.AssignProfessional(c.Request().Context(), actor(c), c.Param("id"), req.ProfessionalID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}
