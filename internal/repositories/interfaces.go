package repositories

import (
	"context"

	"github.com/CreatorRama/form-builder-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type FormFilters struct {
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "created_at", "title"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

type ResponseFilters struct {
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "submitted_at"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

// ===== REPOSITORY INTERFACES =====

type FormRepository interface {
	Create(ctx context.Context, form *models.Form) error
	GetByID(ctx context.Context, id uint) (*models.Form, error)
	List(ctx context.Context, filters FormFilters) ([]models.Form, int64, error)
	Update(ctx context.Context, form *models.Form) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type ResponseRepository interface {
	Create(ctx context.Context, response *models.Response) error
	GetByForm(ctx context.Context, formID uint, filters ResponseFilters) ([]models.Response, int64, error)
}
