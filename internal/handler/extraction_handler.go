package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sofhub/internal/middleware"
	"sofhub/internal/service"
	"sofhub/internal/workspace"
)

// ExtractionHandler handles uploads and workspace event corrections.
type ExtractionHandler struct {
	extractionService service.ExtractionService
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(extractionService service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{extractionService: extractionService}
}

// Ingest handles POST /api/v1/extractions. The multipart "files" field may
// carry several files; the first file routed to each path is processed and
// the rest are discarded. The outcome replaces the caller's workspace.
func (h *ExtractionHandler) Ingest(c *gin.Context) {
	owner, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart form with a files field is required")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "at least one file is required")
		return
	}

	result, err := h.extractionService.Ingest(c.Request.Context(), owner, files)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// Current handles GET /api/v1/workspace
func (h *ExtractionHandler) Current(c *gin.Context) {
	owner, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	result, err := h.extractionService.Current(owner)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// SourceURL handles GET /api/v1/workspace/source. It returns a short-lived
// presigned download URL for the archived source document behind the current
// result.
func (h *ExtractionHandler) SourceURL(c *gin.Context) {
	owner, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	url, err := h.extractionService.SourceURL(c.Request.Context(), owner)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

// Clear handles DELETE /api/v1/workspace
func (h *ExtractionHandler) Clear(c *gin.Context) {
	owner, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	h.extractionService.Clear(owner)
	RespondOK(c, gin.H{"message": "workspace cleared"})
}

// UpdateEvent handles PUT /api/v1/workspace/events/:ref. The reference is a
// stable event ID (UUID) or, for older clients, a zero-based position.
func (h *ExtractionHandler) UpdateEvent(c *gin.Context) {
	owner, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	var patch workspace.EventPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "patch body with name/start/end fields is required")
		return
	}

	ref := c.Param("ref")
	if eventID, parseErr := uuid.Parse(ref); parseErr == nil {
		ev, err := h.extractionService.UpdateEventByID(owner, eventID, patch)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, ev)
		return
	}

	index, parseErr := strconv.Atoi(ref)
	if parseErr != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_EVENT_REF", "event reference must be a UUID or position")
		return
	}
	ev, err := h.extractionService.UpdateEventByIndex(owner, index, patch)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, ev)
}

// DeleteEvent handles DELETE /api/v1/workspace/events/:ref
func (h *ExtractionHandler) DeleteEvent(c *gin.Context) {
	owner, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	ref := c.Param("ref")
	if eventID, parseErr := uuid.Parse(ref); parseErr == nil {
		if err := h.extractionService.DeleteEventByID(owner, eventID); err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, gin.H{"message": "event deleted"})
		return
	}

	index, parseErr := strconv.Atoi(ref)
	if parseErr != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_EVENT_REF", "event reference must be a UUID or position")
		return
	}
	if err := h.extractionService.DeleteEventByIndex(owner, index); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "event deleted"})
}
