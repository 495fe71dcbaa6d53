package book

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListProjects returns all projects, newest first.
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/projects [get]
func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.bookService.ListProjects(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"projects": toProjectInfoList(projects),
			"total":    len(projects),
		},
	})
}
