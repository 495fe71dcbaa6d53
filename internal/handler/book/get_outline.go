package book

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetOutline returns the project's current outline.
// @Summary      Get outline
// @Tags         outline
// @Produce      json
// @Param        project_id  path      string  true  "project id"
// @Success      200         {object}  map[string]interface{}
// @Failure      404         {object}  ErrorResponse
// @Failure      500         {object}  ErrorResponse
// @Router       /api/v1/projects/{project_id}/outline [get]
func (h *Handler) GetOutline(c *gin.Context) {
	projectID := c.Param("project_id")

	outline, err := h.bookService.GetOutline(c.Request.Context(), projectID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    toOutlineInfo(outline),
	})
}
