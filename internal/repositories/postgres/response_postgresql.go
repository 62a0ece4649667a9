package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/CreatorRama/form-builder-service/internal/cache"
	"github.com/CreatorRama/form-builder-service/internal/models"
	"github.com/CreatorRama/form-builder-service/internal/repositories"
)

type ResponsePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewResponsePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ResponseRepository {
	return &ResponsePostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// Create inserts a submitted response and invalidates cached listings for
// its form.
func (r *ResponsePostgreSQL) Create(ctx context.Context, response *models.Response) error {
	if err := r.db.WithContext(ctx).Create(response).Error; err != nil {
		return fmt.Errorf("failed to create response: %w", err)
	}

	cache.InvalidateResponseCache(ctx, r.cacheManager, response.FormID)
	return nil
}

// cachedResponsePage is the cached shape for a single listing page.
type cachedResponsePage struct {
	Responses []models.Response `json:"responses"`
	Total     int64             `json:"total"`
}

// GetByForm returns responses for a form with caching per page.
func (r *ResponsePostgreSQL) GetByForm(ctx context.Context, formID uint, filters repositories.ResponseFilters) ([]models.Response, int64, error) {
	cacheKey := fmt.Sprintf("form:%d:limit:%d:offset:%d:sort:%s:%s",
		formID, filters.Limit, filters.Offset, filters.SortBy, filters.SortOrder)

	var page cachedResponsePage
	err := r.cacheManager.Response.CacheOrExecute(ctx, cacheKey, &page, cache.ResponseCacheConfig.TTL, func() (interface{}, error) {
		query := r.db.WithContext(ctx).Model(&models.Response{}).Where("form_id = ?", formID)

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return nil, fmt.Errorf("failed to count responses: %w", err)
		}

		query = applyResponseOrdering(query, filters)
		if filters.Limit > 0 {
			query = query.Limit(filters.Limit)
		}
		if filters.Offset > 0 {
			query = query.Offset(filters.Offset)
		}

		var responses []models.Response
		if err := query.Find(&responses).Error; err != nil {
			return nil, fmt.Errorf("failed to list responses: %w", err)
		}
		return &cachedResponsePage{Responses: responses, Total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	return page.Responses, page.Total, nil
}

func applyResponseOrdering(query *gorm.DB, filters repositories.ResponseFilters) *gorm.DB {
	sortBy := filters.SortBy
	if sortBy != "submitted_at" {
		sortBy = "submitted_at"
	}

	sortOrder := strings.ToLower(filters.SortOrder)
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	return query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))
}
