package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sofhub/internal/middleware"
	"sofhub/internal/service"
)

// ExportHandler serves CSV/JSON download artifacts from the workspace or any
// saved record.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// CSV handles GET /api/v1/export/csv?record_id=N. Without record_id the
// current workspace result is exported.
func (h *ExportHandler) CSV(c *gin.Context) {
	owner, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	var filename string
	var data []byte
	if recordID := c.Query("record_id"); recordID != "" {
		id, parseErr := strconv.ParseInt(recordID, 10, 64)
		if parseErr != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid record ID")
			return
		}
		filename, data, err = h.exportService.RecordCSV(c.Request.Context(), owner, id)
	} else {
		filename, data, err = h.exportService.WorkspaceCSV(owner)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// JSON handles GET /api/v1/export/json?record_id=N
func (h *ExportHandler) JSON(c *gin.Context) {
	owner, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	var filename string
	var data []byte
	if recordID := c.Query("record_id"); recordID != "" {
		id, parseErr := strconv.ParseInt(recordID, 10, 64)
		if parseErr != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid record ID")
			return
		}
		filename, data, err = h.exportService.RecordJSON(c.Request.Context(), owner, id)
	} else {
		filename, data, err = h.exportService.WorkspaceJSON(owner)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}
