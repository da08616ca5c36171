package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/SIH-2025/edusafe-service/internal/cache"
	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/internal/repositories"
)

var reportSortColumns = map[string]string{
	"createdAt":  "created_at",
	"created_at": "created_at",
	"priority":   "priority",
	"status":     "status",
	"title":      "title",
}

type ReportPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewReportPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.ReportRepository {
	return &ReportPostgreSQL{db: db, cacheManager: cacheManager}
}

func (r *ReportPostgreSQL) Create(ctx context.Context, report *models.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, r.cacheManager.Stats, "reports:*")
	return nil
}

func (r *ReportPostgreSQL) Update(ctx context.Context, report *models.Report) error {
	if err := r.db.WithContext(ctx).Save(report).Error; err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, r.cacheManager.Stats, "reports:*")
	return nil
}

func (r *ReportPostgreSQL) GetByID(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).
		Preload("ReportedBy").
		Where("id = ?", id).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}

func (r *ReportPostgreSQL) List(ctx context.Context, filters repositories.ReportFilters) ([]*models.Report, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Report{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.Priority != nil {
		query = query.Where("priority = ?", *filters.Priority)
	}
	if filters.ReportedByID != nil {
		query = query.Where("reported_by_id = ?", *filters.ReportedByID)
	}
	if filters.Search != nil {
		pattern := "%" + *filters.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR location ILIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	column, ok := reportSortColumns[filters.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if filters.SortOrder == "asc" {
		direction = "ASC"
	}

	var reports []*models.Report
	err := query.
		Preload("ReportedBy").
		Order(column + " " + direction).
		Offset(filters.Offset).
		Limit(filters.Limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}

	return reports, total, nil
}

// Stats aggregates the dashboard summary: status counts, category/priority
// breakdowns (descending by count), and the count of reports created since
// recentSince. Cached briefly because every admin dashboard load hits it.
func (r *ReportPostgreSQL) Stats(ctx context.Context, recentSince time.Time) (*repositories.ReportStats, error) {
	var stats repositories.ReportStats

	err := r.cacheManager.Stats.CacheOrExecute(ctx, "reports:summary", &stats, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		var out repositories.ReportStats

		base := func() *gorm.DB { return r.db.WithContext(ctx).Model(&models.Report{}) }

		if err := base().Count(&out.TotalReports).Error; err != nil {
			return nil, fmt.Errorf("failed to count reports: %w", err)
		}
		if err := base().Where("status = ?", models.StatusPending).Count(&out.PendingReports).Error; err != nil {
			return nil, fmt.Errorf("failed to count pending reports: %w", err)
		}
		if err := base().Where("status = ?", models.StatusInvestigating).Count(&out.InvestigatingReports).Error; err != nil {
			return nil, fmt.Errorf("failed to count investigating reports: %w", err)
		}
		if err := base().Where("status = ?", models.StatusResolved).Count(&out.ResolvedReports).Error; err != nil {
			return nil, fmt.Errorf("failed to count resolved reports: %w", err)
		}
		if err := base().Where("created_at >= ?", recentSince).Count(&out.RecentReports).Error; err != nil {
			return nil, fmt.Errorf("failed to count recent reports: %w", err)
		}

		if err := base().
			Select("category AS key, COUNT(*) AS count").
			Group("category").
			Order("count DESC").
			Scan(&out.CategoryStats).Error; err != nil {
			return nil, fmt.Errorf("failed to aggregate category stats: %w", err)
		}
		if err := base().
			Select("priority AS key, COUNT(*) AS count").
			Group("priority").
			Order("count DESC").
			Scan(&out.PriorityStats).Error; err != nil {
			return nil, fmt.Errorf("failed to aggregate priority stats: %w", err)
		}

		return &out, nil
	})
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
