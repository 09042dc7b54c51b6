package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/fintera-ledger/internal/services"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobSvc *services.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobSvc,
	}
}

// Status returns the current worker status
// @Summary Get background job status
// @Description Worker statistics, schedules and the last portfolio engine run
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /jobs/status [get]
func (h *JobHandler) Status(c *gin.Context) {
	status := h.jobService.GetStatus()
	c.JSON(http.StatusOK, status)
}

// Trigger queues an immediate run of a scheduled job for every agency
// @Summary Trigger background job
// @Tags Jobs
// @Produce json
// @Param job path string true "portfolio_engine or collections_refresh"
// @Security BearerAuth
// @Success 202 {object} map[string]string
// @Router /jobs/{job}/trigger [post]
func (h *JobHandler) Trigger(c *gin.Context) {
	if err := h.jobService.Trigger(c.Param("job")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Job en cola", "job": c.Param("job")})
}
