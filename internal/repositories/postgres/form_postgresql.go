package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/CreatorRama/form-builder-service/internal/cache"
	"github.com/CreatorRama/form-builder-service/internal/models"
	"github.com/CreatorRama/form-builder-service/internal/repositories"
)

type FormPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewFormPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.FormRepository {
	return &FormPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// Create inserts a new form and invalidates cached listings.
func (f *FormPostgreSQL) Create(ctx context.Context, form *models.Form) error {
	if err := f.db.WithContext(ctx).Create(form).Error; err != nil {
		return fmt.Errorf("failed to create form: %w", err)
	}

	cache.SafeInvalidatePattern(ctx, f.cacheManager.Form, "list:*")
	return nil
}

// GetByID retrieves a form by ID with caching.
func (f *FormPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Form, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var form models.Form

	err := f.cacheManager.Form.CacheOrExecute(ctx, cacheKey, &form, cache.FormCacheConfig.TTL, func() (interface{}, error) {
		var dbForm models.Form
		if err := f.db.WithContext(ctx).First(&dbForm, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("form %d: %w", id, repositories.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to get form: %w", err)
		}
		return &dbForm, nil
	})
	if err != nil {
		return nil, err
	}

	return &form, nil
}

// List returns forms ordered per filters along with the total count.
// Listings are not cached per-page; only single-form reads go through cache.
func (f *FormPostgreSQL) List(ctx context.Context, filters repositories.FormFilters) ([]models.Form, int64, error) {
	query := f.db.WithContext(ctx).Model(&models.Form{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count forms: %w", err)
	}

	query = applyFormOrdering(query, filters)
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var forms []models.Form
	if err := query.Find(&forms).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list forms: %w", err)
	}
	return forms, total, nil
}

// Update saves the full form document and drops every cached view of it.
func (f *FormPostgreSQL) Update(ctx context.Context, form *models.Form) error {
	if err := f.db.WithContext(ctx).Save(form).Error; err != nil {
		return fmt.Errorf("failed to update form: %w", err)
	}

	cache.InvalidateFormCache(ctx, f.cacheManager, form.ID)
	return nil
}

// Delete removes a form and its responses.
func (f *FormPostgreSQL) Delete(ctx context.Context, id uint) error {
	err := f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_id = ?", id).Delete(&models.Response{}).Error; err != nil {
			return fmt.Errorf("failed to delete form responses: %w", err)
		}

		result := tx.Delete(&models.Form{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete form: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("form %d: %w", id, repositories.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateFormCache(ctx, f.cacheManager, id)
	return nil
}

// Exists reports whether a form with the given ID is present.
func (f *FormPostgreSQL) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := f.db.WithContext(ctx).Model(&models.Form{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check form existence: %w", err)
	}
	return count > 0, nil
}

func applyFormOrdering(query *gorm.DB, filters repositories.FormFilters) *gorm.DB {
	sortBy := filters.SortBy
	switch sortBy {
	case "title", "created_at", "updated_at":
	default:
		sortBy = "created_at"
	}

	sortOrder := strings.ToLower(filters.SortOrder)
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	return query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))
}
