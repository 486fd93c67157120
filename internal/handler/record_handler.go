package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sofhub/internal/middleware"
	"sofhub/internal/service"
)

// RecordHandler handles the saved-record endpoints.
type RecordHandler struct {
	recordService service.RecordService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordService service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

type saveRecordRequest struct {
	Title string `json:"title"`
}

type renameRecordRequest struct {
	Title string `json:"title" binding:"required"`
}

// Save handles POST /api/v1/records. The current workspace result is gated,
// sanitized, and prepended to the owner's record sequence.
func (h *RecordHandler) Save(c *gin.Context) {
	owner, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	var req saveRecordRequest
	// Body is optional; an empty title falls back to the vessel name.
	_ = c.ShouldBindJSON(&req)

	record, err := h.recordService.Save(c.Request.Context(), owner, req.Title)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, record)
}

// List handles GET /api/v1/records?search=term
func (h *RecordHandler) List(c *gin.Context) {
	owner, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	records, err := h.recordService.List(c.Request.Context(), owner, c.Query("search"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, records)
}

// GetByID handles GET /api/v1/records/:id
func (h *RecordHandler) GetByID(c *gin.Context) {
	owner, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid record ID")
		return
	}

	record, err := h.recordService.Get(c.Request.Context(), owner, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, record)
}

// Rename handles PATCH /api/v1/records/:id. Title is the only mutable field.
func (h *RecordHandler) Rename(c *gin.Context) {
	owner, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid record ID")
		return
	}

	var req renameRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "title is required")
		return
	}

	record, err := h.recordService.Rename(c.Request.Context(), owner, id, req.Title)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, record)
}

// Delete handles DELETE /api/v1/records/:id
func (h *RecordHandler) Delete(c *gin.Context) {
	owner, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid record ID")
		return
	}

	if err := h.recordService.Delete(c.Request.Context(), owner, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "record deleted"})
}
