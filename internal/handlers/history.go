package handlers

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	v1 "github.com/tupyy/async-services/api/v1"
	"github.com/tupyy/async-services/internal/export"
	"github.com/tupyy/async-services/internal/services"
	"github.com/tupyy/async-services/internal/util"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxPage         = math.MaxInt32

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// GetHistory returns finished tasks, most recent first
// (GET /history)
func (h *Handler) GetHistory(c *gin.Context, params v1.GetHistoryParams) {
	page := 1
	if params.Page != nil && *params.Page > 0 {
		page = min(*params.Page, maxPage)
	}
	pageSize := defaultPageSize
	if params.PageSize != nil && *params.PageSize > 0 {
		pageSize = *params.PageSize
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
	}

	svcParams, err := historyParams(params.Status, params.Name)
	if err != nil {
		writeError(c, err, "failed to list history")
		return
	}
	svcParams.Limit = uint64(pageSize)
	svcParams.Offset = uint64(page-1) * uint64(pageSize)

	result, err := h.taskSrv.History(c.Request.Context(), svcParams)
	if err != nil {
		writeError(c, err, "failed to list history")
		return
	}

	records := make([]v1.HistoryRecord, 0, len(result.Records))
	for _, r := range result.Records {
		records = append(records, v1.NewHistoryRecordFromModel(r))
	}

	c.JSON(http.StatusOK, v1.HistoryPage{
		Page:      page,
		PageCount: util.PageCount(result.Total, pageSize),
		Total:     result.Total,
		Records:   records,
	})
}

// ExportHistory returns the filtered history as an XLSX workbook
// (GET /history/export)
func (h *Handler) ExportHistory(c *gin.Context, params v1.ExportHistoryParams) {
	svcParams, err := historyParams(params.Status, params.Name)
	if err != nil {
		writeError(c, err, "failed to export history")
		return
	}

	result, err := h.taskSrv.History(c.Request.Context(), svcParams)
	if err != nil {
		writeError(c, err, "failed to export history")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteHistoryXLSX(&buf, result.Records); err != nil {
		writeError(c, err, "failed to export history")
		return
	}

	filename := fmt.Sprintf("history-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func historyParams(statuses, names *[]string) (services.HistoryParams, error) {
	var params services.HistoryParams
	if statuses != nil {
		s, err := v1.ParseStatuses(*statuses)
		if err != nil {
			return params, err
		}
		params.Statuses = s
	}
	if names != nil {
		params.Names = *names
	}
	return params, nil
}
