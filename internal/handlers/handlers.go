package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tupyy/async-services/internal/services"
	srvErrors "github.com/tupyy/async-services/pkg/errors"
)

type Handler struct {
	taskSrv *services.TaskService
	jobSrv  *services.JobService
}

func New(taskSrv *services.TaskService, jobSrv *services.JobService) *Handler {
	return &Handler{
		taskSrv: taskSrv,
		jobSrv:  jobSrv,
	}
}

// writeError maps a service error to its HTTP status. Unexpected errors are
// logged and their message is replaced by msg.
func writeError(c *gin.Context, err error, msg string) {
	switch {
	case srvErrors.IsValidationError(err), srvErrors.IsUnknownWorkKindError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case srvErrors.IsResourceNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case srvErrors.IsInvalidStateError(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case srvErrors.IsManagerUnavailableError(err):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		zap.S().Named("task_handler").Errorw(msg, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
