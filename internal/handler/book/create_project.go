package book

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/pkg/ctxutil"
	bookservice "quill/internal/service/book"
)

// CreateProject creates a book project.
// @Summary      Create project
// @Description  Creates a book project from its metadata. Sources are added separately.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        request  body      bookservice.CreateProjectRequest  true  "project metadata"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/v1/projects [post]
func (h *Handler) CreateProject(c *gin.Context) {
	var req bookservice.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	if userID, ok := ctxutil.GetUserID(ctx); ok {
		req.UserID = userID
	}

	proj, err := h.bookService.CreateProject(ctx, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "Project created",
		"data":    toProjectInfo(proj),
	})
}
