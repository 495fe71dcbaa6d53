package book

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DeleteProject removes a project with its chapters and sources.
// @Summary      Delete project
// @Description  Deletes the project together with all of its chapters and source documents.
// @Tags         projects
// @Produce      json
// @Param        project_id  path      string  true  "project id"
// @Success      200         {object}  map[string]interface{}
// @Failure      404         {object}  ErrorResponse
// @Failure      500         {object}  ErrorResponse
// @Router       /api/v1/projects/{project_id} [delete]
func (h *Handler) DeleteProject(c *gin.Context) {
	projectID := c.Param("project_id")

	if err := h.bookService.DeleteProject(c.Request.Context(), projectID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "Project deleted",
	})
}
