package resource

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/pkg/ctxutil"
	resourceservice "quill/internal/service/resource"
)

// UploadAudio accepts an audio file upload.
// @Summary      Upload audio
// @Description  Accepts an mp3, wav or m4a file as multipart form data and stores it for later transcription.
// @Tags         audio
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "audio file"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/v1/audio [post]
func (h *Handler) UploadAudio(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "file field is required",
			Detail:  err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "failed to open uploaded file",
			Detail:  err.Error(),
		})
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	req := &resourceservice.UploadAudioRequest{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        file,
	}
	if userID, ok := ctxutil.GetUserID(ctx); ok {
		req.UserID = userID
	}

	res, err := h.resourceService.UploadAudio(ctx, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "Audio uploaded",
		"data":    toResourceInfo(res),
	})
}
