package resource

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	transcriptionservice "quill/internal/service/transcription"
)

// TranscribeRequest names the project receiving the transcript.
type TranscribeRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	Label     string `json:"label"`
}

// Transcribe turns an uploaded audio resource into a source document.
// @Summary      Transcribe audio
// @Description  Transcribes the uploaded audio and appends the transcript to the project as a new source document.
// @Tags         audio
// @Accept       json
// @Produce      json
// @Param        resource_id  path      string             true  "resource id"
// @Param        request      body      TranscribeRequest  true  "target project"
// @Success      201          {object}  map[string]interface{}
// @Failure      400          {object}  ErrorResponse
// @Failure      404          {object}  ErrorResponse
// @Failure      502          {object}  ErrorResponse
// @Router       /api/v1/audio/{resource_id}/transcribe [post]
func (h *Handler) Transcribe(c *gin.Context) {
	if h.transcriptionService == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Code:    50302,
			Message: "Transcription is not configured",
		})
		return
	}

	resourceID := c.Param("resource_id")

	var req TranscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	doc, err := h.transcriptionService.TranscribeToSource(c.Request.Context(), &transcriptionservice.TranscribeRequest{
		ResourceID: resourceID,
		ProjectID:  req.ProjectID,
		Label:      req.Label,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "Audio transcribed",
		"data": gin.H{
			"source_id":  doc.ID,
			"project_id": doc.ProjectID,
			"label":      doc.Label,
			"text_len":   len(doc.Text),
			"created_at": doc.CreatedAt.Format(time.RFC3339),
		},
	})
}
