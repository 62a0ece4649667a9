package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CreatorRama/form-builder-service/internal/services"
	"github.com/CreatorRama/form-builder-service/internal/utils"
)

type HandlerManager struct {
	formHandler     *FormHandler
	responseHandler *ResponseHandler
	uploadHandler   *UploadHandler
	serviceManager  services.ServiceManager
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		formHandler:     NewFormHandler(serviceManager.Form(), logger),
		responseHandler: NewResponseHandler(serviceManager.Response(), serviceManager.Export(), logger),
		uploadHandler:   NewUploadHandler(serviceManager.Upload(), logger),
		serviceManager:  serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.HealthCheck)

	api := router.Group("/api")
	{
		forms := api.Group("/forms")
		{
			forms.POST("", hm.formHandler.CreateForm)
			forms.GET("", hm.formHandler.ListForms)
			forms.GET("/:id", hm.formHandler.GetForm)
			forms.PUT("/:id", hm.formHandler.UpdateForm)
			forms.DELETE("/:id", hm.formHandler.DeleteForm)
		}

		responses := api.Group("/responses")
		{
			responses.POST("", hm.responseHandler.SubmitResponse)
			responses.GET("/form/:formId", hm.responseHandler.ListFormResponses)
			responses.GET("/form/:formId/export", hm.responseHandler.ExportFormResponses)
		}

		api.POST("/upload", hm.uploadHandler.UploadImage)
	}
}

// HealthCheck reports service and backing store health
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"error":     err.Error(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "form-builder-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
