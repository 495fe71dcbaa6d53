package resource

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	modelresource "quill/internal/model/resource"
	httputil "quill/internal/pkg/http"
	bookservice "quill/internal/service/book"
	resourceservice "quill/internal/service/resource"
)

// ErrorResponse is the shared error body.
type ErrorResponse = httputil.ErrorResponse

// ResourceInfo is the uploaded-file DTO.
type ResourceInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Ext         string `json:"ext"`
	StorageType string `json:"storage_type"`
	FileSize    int64  `json:"file_size"`
	ContentType string `json:"content_type"`
	CreatedAt   string `json:"created_at"`
}

func toResourceInfo(res *modelresource.Resource) ResourceInfo {
	return ResourceInfo{
		ID:          res.ID,
		Name:        res.Name,
		Ext:         res.Ext,
		StorageType: res.StorageType,
		FileSize:    res.FileSize,
		ContentType: res.ContentType,
		CreatedAt:   res.CreatedAt.Format(time.RFC3339),
	}
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, bookservice.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    40401,
			Message: "Resource not found",
			Detail:  err.Error(),
		})
	case errors.Is(err, resourceservice.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40004,
			Message: "Unsupported audio format",
			Detail:  err.Error(),
		})
	case errors.Is(err, bookservice.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40002,
			Message: "Validation failed",
			Detail:  err.Error(),
		})
	case errors.Is(err, bookservice.ErrUpstream):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Code:    50202,
			Message: "Transcription service failed",
			Detail:  err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "Internal server error",
			Detail:  err.Error(),
		})
	}
}
