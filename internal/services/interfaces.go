package services

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/CreatorRama/form-builder-service/internal/models"
	"github.com/CreatorRama/form-builder-service/internal/repositories"
)

// ===== REQUEST / RESPONSE DTOs =====

type CreateFormRequest struct {
	Title       string            `json:"title" validate:"required,min=1,max=255"`
	Description string            `json:"description" validate:"max=2000"`
	HeaderImage string            `json:"headerImage" validate:"omitempty,url"`
	Questions   []models.Question `json:"questions"`
}

// UpdateFormRequest carries partial updates; nil fields are untouched.
type UpdateFormRequest struct {
	Title       *string            `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string            `json:"description" validate:"omitempty,max=2000"`
	HeaderImage *string            `json:"headerImage" validate:"omitempty,url"`
	Questions   *[]models.Question `json:"questions"`
}

type SubmitResponseRequest struct {
	FormID  uint                   `json:"formId" validate:"required"`
	Answers []models.ResponseEntry `json:"answers"`
}

type FormListResponse struct {
	Forms  []models.Form `json:"forms"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

type ResponseListResponse struct {
	Responses []models.Response `json:"responses"`
	Total     int64             `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// ===== SERVICE INTERFACES =====

type FormService interface {
	Create(ctx context.Context, req *CreateFormRequest) (*models.Form, error)
	GetByID(ctx context.Context, id uint) (*models.Form, error)
	List(ctx context.Context, filters repositories.FormFilters) (*FormListResponse, error)
	Update(ctx context.Context, id uint, req *UpdateFormRequest) (*models.Form, error)
	Delete(ctx context.Context, id uint) error
}

type ResponseService interface {
	Submit(ctx context.Context, req *SubmitResponseRequest) (*models.Response, error)
	ListByForm(ctx context.Context, formID uint, filters repositories.ResponseFilters) (*ResponseListResponse, error)
}

type UploadService interface {
	Save(ctx context.Context, filename string, data []byte) (*UploadResult, error)
}

type ExportService interface {
	ExportFormResponses(ctx context.Context, formID uint) (*excelize.File, string, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	Form() FormService
	Response() ResponseService
	Upload() UploadService
	Export() ExportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
