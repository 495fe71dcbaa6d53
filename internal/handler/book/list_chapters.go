package book

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListChapters returns the project's chapters in outline order.
// @Summary      List chapters
// @Tags         chapters
// @Produce      json
// @Param        project_id     path      string  true   "project id"
// @Param        include_draft  query     bool    false  "include draft text"
// @Success      200            {object}  map[string]interface{}
// @Failure      404            {object}  ErrorResponse
// @Failure      500            {object}  ErrorResponse
// @Router       /api/v1/projects/{project_id}/chapters [get]
func (h *Handler) ListChapters(c *gin.Context) {
	projectID := c.Param("project_id")
	includeDraft := c.Query("include_draft") == "true"

	chapters, err := h.bookService.ListChapters(c.Request.Context(), projectID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"chapters": toChapterInfoList(chapters, includeDraft),
			"total":    len(chapters),
		},
	})
}
