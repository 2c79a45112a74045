package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/tupyy/async-services/api/v1"
)

// GetKinds returns the work kinds that can be submitted
// (GET /kinds)
func (h *Handler) GetKinds(c *gin.Context) {
	kinds := h.taskSrv.Kinds()
	resp := make([]v1.WorkKind, 0, len(kinds))
	for _, k := range kinds {
		resp = append(resp, v1.NewWorkKindFromModel(k))
	}
	c.JSON(http.StatusOK, resp)
}

// GetJobs returns the registered cron jobs
// (GET /jobs)
func (h *Handler) GetJobs(c *gin.Context) {
	entries := h.jobSrv.Entries()
	resp := make([]v1.JobEntry, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, v1.NewJobEntryFromModel(e))
	}
	c.JSON(http.StatusOK, resp)
}
