package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CreatorRama/form-builder-service/internal/services"
	"github.com/CreatorRama/form-builder-service/internal/utils"
)

type UploadHandler struct {
	BaseHandler
	service services.UploadService
}

func NewUploadHandler(service services.UploadService, logger utils.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// UploadImage stores a form or question image
// @Summary Upload an image
// @Description Accepts a multipart image upload and returns its public URL
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 201 {object} services.UploadResult
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /upload [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing image file",
			Details: err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Failed to open uploaded file",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Failed to read uploaded file",
			Details: err.Error(),
		})
		return
	}

	result, err := h.service.Save(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Upload rejected",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, result)
}
