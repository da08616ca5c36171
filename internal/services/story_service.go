package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SIH-2025/edusafe-service/internal/events"
	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/internal/repositories"
	"github.com/SIH-2025/edusafe-service/internal/validator"
)

type storyService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewStoryService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) StoryService {
	return &storyService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *storyService) Create(ctx context.Context, req *CreateStoryRequest, actor *models.User) (*StoryResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	story := &models.Story{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		Image:      req.Image,
		AuthorID:   actor.ID,
		AuthorName: actor.Username,
	}

	if err := s.repo.Story().Create(ctx, story); err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}

	s.logger.Info("Story created", "story_id", story.ID, "author_id", actor.ID)

	return &StoryResponse{Story: story, Author: actor.Ref()}, nil
}

func (s *storyService) List(ctx context.Context) ([]*StoryResponse, error) {
	stories, err := s.repo.Story().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}

	ids := make([]string, 0, len(stories))
	for _, st := range stories {
		ids = append(ids, st.AuthorID)
	}
	authors := map[string]*models.User{}
	if len(ids) > 0 {
		authors, err = s.repo.User().GetByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load story authors: %w", err)
		}
	}

	out := make([]*StoryResponse, len(stories))
	for i, st := range stories {
		out[i] = &StoryResponse{Story: st, Author: authors[st.AuthorID].Ref()}
	}
	return out, nil
}

func (s *storyService) GetByID(ctx context.Context, id string) (*StoryResponse, error) {
	story, err := s.repo.Story().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "story", ID: id}
		}
		return nil, fmt.Errorf("failed to get story: %w", err)
	}

	var author *models.UserRef
	if u, err := s.repo.User().GetByID(ctx, story.AuthorID); err == nil {
		author = u.Ref()
	}
	return &StoryResponse{Story: story, Author: author}, nil
}

func (s *storyService) Like(ctx context.Context, id string, actor *models.User) (*LikeResult, error) {
	story, err := s.repo.Story().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "story", ID: id}
		}
		return nil, fmt.Errorf("failed to get story: %w", err)
	}

	if story.Like(actor.ID) {
		if err := s.repo.Story().Update(ctx, story); err != nil {
			return nil, fmt.Errorf("failed to save like: %w", err)
		}

		if err := s.publisher.Publish(ctx, events.Event{
			Type: events.TypeStoryLiked,
			Data: events.StoryLikedEvent{StoryID: story.ID, UserID: actor.ID},
		}); err != nil {
			s.logger.Error("Failed to publish story liked event", "error", err)
		}
	}

	return &LikeResult{StoryID: story.ID, Likes: story.Likes, Liked: true}, nil
}

func (s *storyService) Unlike(ctx context.Context, id string, actor *models.User) (*LikeResult, error) {
	story, err := s.repo.Story().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "story", ID: id}
		}
		return nil, fmt.Errorf("failed to get story: %w", err)
	}

	if story.Unlike(actor.ID) {
		if err := s.repo.Story().Update(ctx, story); err != nil {
			return nil, fmt.Errorf("failed to save unlike: %w", err)
		}
	}

	return &LikeResult{StoryID: story.ID, Likes: story.Likes, Liked: false}, nil
}

func (s *storyService) LikeStatus(ctx context.Context, id string, actor *models.User) (*LikeResult, error) {
	story, err := s.repo.Story().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "story", ID: id}
		}
		return nil, fmt.Errorf("failed to get story: %w", err)
	}

	return &LikeResult{StoryID: story.ID, Likes: story.Likes, Liked: story.HasLiked(actor.ID)}, nil
}
