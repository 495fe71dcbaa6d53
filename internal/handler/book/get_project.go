package book

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetProject returns a project with its current outline.
// @Summary      Get project
// @Tags         projects
// @Produce      json
// @Param        project_id  path      string  true  "project id"
// @Success      200         {object}  map[string]interface{}
// @Failure      404         {object}  ErrorResponse
// @Failure      500         {object}  ErrorResponse
// @Router       /api/v1/projects/{project_id} [get]
func (h *Handler) GetProject(c *gin.Context) {
	projectID := c.Param("project_id")

	proj, err := h.bookService.GetProject(c.Request.Context(), projectID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    toProjectInfo(proj),
	})
}
