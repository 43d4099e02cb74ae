package handlers

import (
	"errors"
	"log"
	"net/http"

	"gigmarket/internal/common"
	"gigmarket/internal/jobs/background"

	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo/v4"
)

type JobStatusProvider interface {
	GetJobStatus() []background.JobStatus
	RunNow(name string) error
}

type JobHandlers struct {
	jobs JobStatusProvider
}

func NewJobHandlers(jobs JobStatusProvider) *JobHandlers {
	return &JobHandlers{jobs: jobs}
}

// ListJobs reports the background jobs with their last and next runs.
//
// @Summary  Background job status
// @Tags     jobs
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} background.JobStatus
// @Router   /v1/jobs [get]
func (h *JobHandlers) ListJobs(c echo.Context) error {
	return c.JSON(http.StatusOK, h.jobs.GetJobStatus())
}

// RunJob triggers a background job outside its schedule. The run happens asynchronously.
//
// @Summary  Trigger a background job
// @Tags     jobs
// @Produce  json
// @Security BearerAuth
// @Param    name path string true "Job name"
// @Success  202 {object} map[string]string
// @Failure  401,403,404,500 {object} common.ErrorResponse
// @Router   /v1/jobs/{name}/run [post]
func (h *JobHandlers) RunJob(c echo.Context) error {
	name := c.Param("name")
	if err := h.jobs.RunNow(name); err != nil {
		if errors.Is(err, gocron.ErrJobNotFound) {
			return common.SendNotFoundError(c, "Job")
		}
		log.Printf("ERROR: failed to trigger job %s: %v", name, err)
		return common.SendServerError(c, "Failed to trigger job")
	}
	return c.JSON(http.StatusAccepted, map[string]string{"job": name, "status": "triggered"})
}
