package book

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GenerateNextDraft drafts the next pending chapter.
// @Summary      Generate next draft
// @Description  Drafts the lowest-order chapter that has no draft yet. When every chapter is already drafted the call succeeds without generating anything.
// @Tags         drafts
// @Produce      json
// @Param        project_id  path      string  true  "project id"
// @Success      200         {object}  map[string]interface{}
// @Failure      404         {object}  ErrorResponse
// @Failure      502         {object}  ErrorResponse
// @Router       /api/v1/projects/{project_id}/drafts/next [post]
func (h *Handler) GenerateNextDraft(c *gin.Context) {
	projectID := c.Param("project_id")

	ch, done, err := h.bookService.GenerateNextDraft(c.Request.Context(), projectID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if done {
		c.JSON(http.StatusOK, gin.H{
			"code":    0,
			"message": "All chapters already have drafts.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "Chapter drafted",
		"data":    toChapterInfo(ch, true),
	})
}
