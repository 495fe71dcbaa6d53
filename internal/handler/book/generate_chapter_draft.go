package book

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GenerateChapterDraft drafts one specific chapter.
// @Summary      Generate chapter draft
// @Description  Generates draft text for the chapter and stores it, replacing any previous draft. On failure the existing draft is kept.
// @Tags         drafts
// @Produce      json
// @Param        chapter_id  path      string  true  "chapter id"
// @Success      200         {object}  map[string]interface{}
// @Failure      404         {object}  ErrorResponse
// @Failure      502         {object}  ErrorResponse
// @Router       /api/v1/chapters/{chapter_id}/draft [post]
func (h *Handler) GenerateChapterDraft(c *gin.Context) {
	chapterID := c.Param("chapter_id")

	ch, err := h.bookService.GenerateChapterDraft(c.Request.Context(), chapterID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "Chapter drafted",
		"data":    toChapterInfo(ch, true),
	})
}
