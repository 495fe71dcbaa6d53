package book

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListSources returns the project's source documents in creation order.
// @Summary      List source documents
// @Tags         sources
// @Produce      json
// @Param        project_id    path      string  true   "project id"
// @Param        include_text  query     bool    false  "include full source text"
// @Success      200           {object}  map[string]interface{}
// @Failure      404           {object}  ErrorResponse
// @Failure      500           {object}  ErrorResponse
// @Router       /api/v1/projects/{project_id}/sources [get]
func (h *Handler) ListSources(c *gin.Context) {
	projectID := c.Param("project_id")
	includeText := c.Query("include_text") == "true"

	docs, err := h.bookService.ListSources(c.Request.Context(), projectID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"sources": toSourceInfoList(docs, includeText),
			"total":   len(docs),
		},
	})
}
