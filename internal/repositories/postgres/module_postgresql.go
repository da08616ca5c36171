package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SIH-2025/edusafe-service/internal/cache"
	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/internal/repositories"
)

// moduleListColumns is the list projection: everything except the lesson
// bodies, which clients fetch per-module.
var moduleListColumns = []string{
	"id", "title", "description", "difficulty", "duration", "estimated_hours",
	"category", "tags", "thumbnail", "intro_video_url", "is_published",
	"is_active", "instructor_id", "notes", "created_at", "updated_at",
}

var moduleSortColumns = map[string]string{
	"createdAt":      "created_at",
	"created_at":     "created_at",
	"title":          "title",
	"difficulty":     "difficulty",
	"estimatedHours": "estimated_hours",
}

type ModulePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewModulePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.ModuleRepository {
	return &ModulePostgreSQL{db: db, cacheManager: cacheManager}
}

func (m *ModulePostgreSQL) Create(ctx context.Context, module *models.Module) error {
	if err := m.db.WithContext(ctx).Create(module).Error; err != nil {
		return fmt.Errorf("failed to create module: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, m.cacheManager.Module, "visible:*")
	return nil
}

func (m *ModulePostgreSQL) Update(ctx context.Context, module *models.Module) error {
	if err := m.db.WithContext(ctx).Save(module).Error; err != nil {
		return fmt.Errorf("failed to update module: %w", err)
	}
	cache.SafeDelete(ctx, m.cacheManager.Module, "visible:"+module.ID)
	return nil
}

func (m *ModulePostgreSQL) GetByID(ctx context.Context, id string) (*models.Module, error) {
	var module models.Module
	err := m.db.WithContext(ctx).
		Preload("Instructor").
		Where("id = ?", id).
		First(&module).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}
	return &module, nil
}

// GetVisibleByID reads the published learner-facing module, cached briefly
// because lesson and quiz requests re-check visibility on every call.
func (m *ModulePostgreSQL) GetVisibleByID(ctx context.Context, id string) (*models.Module, error) {
	var module models.Module
	err := m.cacheManager.Module.CacheOrExecute(ctx, "visible:"+id, &module, cache.ModuleCacheConfig.TTL, func() (interface{}, error) {
		var stored models.Module
		err := m.db.WithContext(ctx).
			Preload("Instructor").
			Where("id = ? AND is_published = ? AND is_active = ?", id, true, true).
			First(&stored).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, repositories.ErrNotFound
			}
			return nil, fmt.Errorf("failed to get module: %w", err)
		}
		return &stored, nil
	})
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (m *ModulePostgreSQL) GetActiveByID(ctx context.Context, id string) (*models.Module, error) {
	var module models.Module
	err := m.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&module).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}
	return &module, nil
}

func (m *ModulePostgreSQL) List(ctx context.Context, filters repositories.ModuleFilters) ([]*models.Module, int64, error) {
	query := m.db.WithContext(ctx).
		Model(&models.Module{}).
		Where("is_published = ? AND is_active = ?", true, true)

	if filters.Difficulty != nil {
		query = query.Where("difficulty = ?", *filters.Difficulty)
	}
	if filters.Category != nil {
		query = query.Where("category ILIKE ?", "%"+*filters.Category+"%")
	}
	if filters.Search != nil {
		pattern := "%" + *filters.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count modules: %w", err)
	}

	column, ok := moduleSortColumns[filters.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if filters.SortOrder == "asc" {
		direction = "ASC"
	}

	var modules []*models.Module
	err := query.
		Select(moduleListColumns).
		Preload("Instructor").
		Order(column + " " + direction).
		Offset(filters.Offset).
		Limit(filters.Limit).
		Find(&modules).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list modules: %w", err)
	}

	return modules, total, nil
}
