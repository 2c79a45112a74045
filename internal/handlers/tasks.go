package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/tupyy/async-services/api/v1"
	"github.com/tupyy/async-services/internal/util"
	"github.com/tupyy/async-services/pkg/manager"
)

// GetTasks returns the tracked tasks and the manager counters
// (GET /tasks)
func (h *Handler) GetTasks(c *gin.Context) {
	c.JSON(http.StatusOK, v1.NewTaskListFromModel(h.taskSrv.List(), h.taskSrv.Snapshot()))
}

// CreateTask submits a task. With wait it answers once the task is terminal
// (POST /tasks)
func (h *Handler) CreateTask(c *gin.Context) {
	var body v1.CreateTaskJSONRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	req, err := body.ToService()
	if err != nil {
		writeError(c, err, "failed to submit task")
		return
	}

	result, err := h.taskSrv.Submit(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, "failed to submit task")
		return
	}

	if result.Result != nil {
		c.JSON(http.StatusOK, v1.NewTaskResultFromModel(*result.Result))
		return
	}
	c.JSON(http.StatusAccepted, v1.TaskResult{Id: result.ID, Status: v1.TaskStatus(manager.StatusQueued)})
}

// GetTask returns the status of a task, consuming a terminal result
// (GET /tasks/{id})
func (h *Handler) GetTask(c *gin.Context, id string) {
	res, err := h.taskSrv.Result(id)
	if err != nil {
		writeError(c, err, "failed to get task")
		return
	}
	c.JSON(http.StatusOK, v1.NewTaskResultFromModel(res))
}

// DeleteTask requests the cancellation of a task
// (DELETE /tasks/{id})
func (h *Handler) DeleteTask(c *gin.Context, id string, params v1.DeleteTaskParams) {
	if err := h.taskSrv.Cancel(id, util.Deref(params.Strict, false)); err != nil {
		writeError(c, err, "failed to cancel task")
		return
	}
	c.Status(http.StatusAccepted)
}
