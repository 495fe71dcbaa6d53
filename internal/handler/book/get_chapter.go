package book

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetChapter returns one chapter with its draft.
// @Summary      Get chapter
// @Tags         chapters
// @Produce      json
// @Param        chapter_id  path      string  true  "chapter id"
// @Success      200         {object}  map[string]interface{}
// @Failure      404         {object}  ErrorResponse
// @Failure      500         {object}  ErrorResponse
// @Router       /api/v1/chapters/{chapter_id} [get]
func (h *Handler) GetChapter(c *gin.Context) {
	chapterID := c.Param("chapter_id")

	ch, err := h.bookService.GetChapter(c.Request.Context(), chapterID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    toChapterInfo(ch, true),
	})
}
