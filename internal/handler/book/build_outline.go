package book

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BuildOutline regenerates the project outline.
// @Summary      Build outline
// @Description  Generates a fresh outline from the project's source documents and replaces the whole chapter set with pending stubs. Existing drafts are discarded. On failure nothing is changed.
// @Tags         outline
// @Produce      json
// @Param        project_id  path      string  true  "project id"
// @Success      200         {object}  map[string]interface{}
// @Failure      400         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse
// @Failure      502         {object}  ErrorResponse
// @Router       /api/v1/projects/{project_id}/outline [post]
func (h *Handler) BuildOutline(c *gin.Context) {
	projectID := c.Param("project_id")

	outline, chapters, err := h.bookService.BuildOutline(c.Request.Context(), projectID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "Outline rebuilt",
		"data": gin.H{
			"outline":  toOutlineInfo(outline),
			"chapters": toChapterInfoList(chapters, false),
		},
	})
}
