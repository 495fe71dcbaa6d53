package book

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bookservice "quill/internal/service/book"
)

// ExportEbook renders and stores the book as a Markdown document.
// @Summary      Export ebook
// @Description  Assembles the project's chapters into one Markdown document, uploads it to storage and returns a time-limited download URL.
// @Tags         export
// @Produce      json
// @Param        project_id  path      string  true  "project id"
// @Success      200         {object}  map[string]interface{}
// @Failure      400         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse
// @Failure      500         {object}  ErrorResponse
// @Router       /api/v1/projects/{project_id}/export [post]
func (h *Handler) ExportEbook(c *gin.Context) {
	projectID := c.Param("project_id")

	result, err := h.bookService.ExportEbook(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, bookservice.ErrExportDisabled) {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{
				Code:    50301,
				Message: "Export storage is not configured",
			})
			return
		}
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "Ebook exported",
		"data":    result,
	})
}
