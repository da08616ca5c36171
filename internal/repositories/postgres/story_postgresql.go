package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/internal/repositories"
)

type StoryPostgreSQL struct {
	db *gorm.DB
}

func NewStoryPostgreSQL(db *gorm.DB) repositories.StoryRepository {
	return &StoryPostgreSQL{db: db}
}

func (s *StoryPostgreSQL) Create(ctx context.Context, story *models.Story) error {
	if err := s.db.WithContext(ctx).Create(story).Error; err != nil {
		return fmt.Errorf("failed to create story: %w", err)
	}
	return nil
}

func (s *StoryPostgreSQL) Update(ctx context.Context, story *models.Story) error {
	if err := s.db.WithContext(ctx).Save(story).Error; err != nil {
		return fmt.Errorf("failed to update story: %w", err)
	}
	return nil
}

func (s *StoryPostgreSQL) GetByID(ctx context.Context, id string) (*models.Story, error) {
	var story models.Story
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&story).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return &story, nil
}

func (s *StoryPostgreSQL) List(ctx context.Context) ([]*models.Story, error) {
	var stories []*models.Story
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&stories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return stories, nil
}
