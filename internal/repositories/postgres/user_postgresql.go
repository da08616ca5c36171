package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SIH-2025/edusafe-service/internal/cache"
	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/internal/repositories"
)

type UserPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.UserRepository {
	return &UserPostgreSQL{db: db, cacheManager: cacheManager}
}

func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (u *UserPostgreSQL) Update(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, u.cacheManager.Leaderboard, "top:*")
	return nil
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var users []*models.User
	err := u.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	for _, user := range users {
		out[user.ID] = user
	}
	return out, nil
}

// AwardPoints increments the user's cumulative points with a single atomic
// UPDATE so concurrent awards cannot lose an update.
func (u *UserPostgreSQL) AwardPoints(ctx context.Context, userID string, points int) (int, error) {
	var user models.User
	res := u.db.WithContext(ctx).
		Model(&user).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "points"}}}).
		Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", points))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to award points: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, repositories.ErrNotFound
	}

	cache.SafeInvalidatePattern(ctx, u.cacheManager.Leaderboard, "top:*")
	return user.Points, nil
}

func (u *UserPostgreSQL) TopStudents(ctx context.Context, limit int) ([]*models.User, error) {
	var users []*models.User

	cacheKey := fmt.Sprintf("top:%d", limit)
	err := u.cacheManager.Leaderboard.CacheOrExecute(ctx, cacheKey, &users, cache.LeaderboardCacheConfig.TTL, func() (interface{}, error) {
		var dbUsers []*models.User
		err := u.db.WithContext(ctx).
			Where("role = ?", models.RoleStudent).
			Order("points DESC").
			Limit(limit).
			Find(&dbUsers).Error
		if err != nil {
			return nil, fmt.Errorf("failed to query leaderboard: %w", err)
		}
		return dbUsers, nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}
