package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CreatorRama/form-builder-service/internal/repositories"
	"github.com/CreatorRama/form-builder-service/internal/services"
	"github.com/CreatorRama/form-builder-service/internal/utils"
)

type ResponseHandler struct {
	BaseHandler
	service       services.ResponseService
	exportService services.ExportService
}

func NewResponseHandler(service services.ResponseService, exportService services.ExportService, logger utils.Logger) *ResponseHandler {
	return &ResponseHandler{
		BaseHandler:   NewBaseHandler(logger),
		service:       service,
		exportService: exportService,
	}
}

// SubmitResponse records a respondent's answers for a form
// @Summary Submit a form response
// @Tags responses
// @Accept json
// @Produce json
// @Param request body services.SubmitResponseRequest true "Response submission"
// @Success 201 {object} models.Response
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Form not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /responses [post]
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	var req services.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	response, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListFormResponses lists responses submitted for a form
// @Summary List responses for a form
// @Tags responses
// @Produce json
// @Param formId path int true "Form ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} services.ResponseListResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Form not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /responses/form/{formId} [get]
func (h *ResponseHandler) ListFormResponses(c *gin.Context) {
	formID, ok := parseIDParam(c, "formId")
	if !ok {
		return
	}

	filters := repositories.ResponseFilters{
		Limit:     parseIntQuery(c, "limit", 50),
		Offset:    parseIntQuery(c, "offset", 0),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	list, err := h.service.ListByForm(c.Request.Context(), formID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// ExportFormResponses streams an xlsx export of a form's responses
// @Summary Export form responses as xlsx
// @Tags responses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param formId path int true "Form ID"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Form not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /responses/form/{formId}/export [get]
func (h *ResponseHandler) ExportFormResponses(c *gin.Context) {
	formID, ok := parseIDParam(c, "formId")
	if !ok {
		return
	}

	file, filename, err := h.exportService.ExportFormResponses(c.Request.Context(), formID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := file.Write(c.Writer); err != nil {
		h.logger.LogError(err, "Failed to stream xlsx export", "form_id", formID)
	}
}
