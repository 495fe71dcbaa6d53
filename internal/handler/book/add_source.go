package book

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookservice "quill/internal/service/book"
)

// AddSource appends source material to a project.
// @Summary      Add source document
// @Description  Appends a piece of source text to the project. Sources feed outline and draft generation in the order they were added.
// @Tags         sources
// @Accept       json
// @Produce      json
// @Param        project_id  path      string                        true  "project id"
// @Param        request     body      bookservice.AddSourceRequest  true  "source text"
// @Success      201         {object}  map[string]interface{}
// @Failure      400         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse
// @Failure      500         {object}  ErrorResponse
// @Router       /api/v1/projects/{project_id}/sources [post]
func (h *Handler) AddSource(c *gin.Context) {
	projectID := c.Param("project_id")

	var req bookservice.AddSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	doc, err := h.bookService.AddSource(c.Request.Context(), projectID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "Source document added",
		"data":    toSourceInfo(doc, false),
	})
}
