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

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type moduleService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewModuleService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ModuleService {
	return &moduleService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *moduleService) Create(ctx context.Context, req *CreateModuleRequest, actor *models.User) (*ModuleResponse, error) {
	s.logger.Info("Creating module", "instructor_id", actor.ID, "title", req.Title)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}
	if actor.Role != models.RoleTeacher && actor.Role != models.RoleAdmin {
		return nil, NewPermissionError(actor.ID, "module", "create", "insufficient role permissions")
	}

	module := &models.Module{
		Title:          req.Title,
		Description:    req.Description,
		Difficulty:     models.Difficulty(req.Difficulty),
		Duration:       req.Duration,
		EstimatedHours: req.EstimatedHours,
		Category:       req.Category,
		Tags:           req.Tags,
		Thumbnail:      req.Thumbnail,
		IntroVideoURL:  req.IntroVideoURL,
		IsPublished:    true,
		IsActive:       true,
		InstructorID:   actor.ID,
		Notes:          req.Notes,
	}
	if req.IsPublished != nil {
		module.IsPublished = *req.IsPublished
	}
	if req.IsActive != nil {
		module.IsActive = *req.IsActive
	}
	for _, l := range req.Lessons {
		lesson := models.Lesson{
			Title:         l.Title,
			Content:       l.Content,
			Type:          models.LessonType(l.Type),
			Order:         l.Order,
			EstimatedTime: l.EstimatedTime,
			VideoURL:      l.VideoURL,
		}
		if lesson.Type == "" {
			lesson.Type = models.LessonText
		}
		module.Lessons = append(module.Lessons, lesson)
	}

	if err := s.repo.Module().Create(ctx, module); err != nil {
		return nil, fmt.Errorf("failed to create module: %w", err)
	}

	s.logger.Info("Module created", "module_id", module.ID, "lessons", len(module.Lessons))

	module.ComputeVirtuals()
	return &ModuleResponse{Module: module, Instructor: actor.Ref()}, nil
}

func (s *moduleService) Update(ctx context.Context, id string, req *UpdateModuleRequest, actor *models.User) (*ModuleResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}
	if actor.Role != models.RoleTeacher && actor.Role != models.RoleAdmin {
		return nil, NewPermissionError(actor.ID, "module", "update", "insufficient role permissions")
	}

	module, err := s.repo.Module().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "module", ID: id}
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	// Teachers may only edit their own modules; admins edit any.
	if actor.Role == models.RoleTeacher && module.InstructorID != actor.ID {
		return nil, NewPermissionError(actor.ID, "module", "update", "not the module instructor")
	}

	applyModuleUpdate(module, req)

	if err := s.repo.Module().Update(ctx, module); err != nil {
		return nil, fmt.Errorf("failed to update module: %w", err)
	}

	s.logger.Info("Module updated", "module_id", module.ID, "actor_id", actor.ID)

	module.ComputeVirtuals()
	return &ModuleResponse{Module: module, Instructor: s.instructorRef(ctx, module)}, nil
}

// applyModuleUpdate copies only the allow-listed fields that were present in
// the request body.
func applyModuleUpdate(module *models.Module, req *UpdateModuleRequest) {
	if req.Title != nil {
		module.Title = *req.Title
	}
	if req.Description != nil {
		module.Description = *req.Description
	}
	if req.Difficulty != nil {
		module.Difficulty = models.Difficulty(*req.Difficulty)
	}
	if req.Duration != nil {
		module.Duration = *req.Duration
	}
	if req.EstimatedHours != nil {
		module.EstimatedHours = *req.EstimatedHours
	}
	if req.Category != nil {
		module.Category = *req.Category
	}
	if req.Tags != nil {
		module.Tags = req.Tags
	}
	if req.Thumbnail != nil {
		module.Thumbnail = req.Thumbnail
	}
	if req.IntroVideoURL != nil {
		module.IntroVideoURL = req.IntroVideoURL
	}
	if req.IsPublished != nil {
		module.IsPublished = *req.IsPublished
	}
	if req.IsActive != nil {
		module.IsActive = *req.IsActive
	}
	if req.Notes != nil {
		module.Notes = req.Notes
	}
}

func (s *moduleService) GetByID(ctx context.Context, id string, actor *models.User) (*ModuleResponse, error) {
	var (
		module *models.Module
		err    error
	)
	if actor != nil && (actor.Role == models.RoleTeacher || actor.Role == models.RoleAdmin) {
		module, err = s.repo.Module().GetActiveByID(ctx, id)
	} else {
		module, err = s.repo.Module().GetVisibleByID(ctx, id)
	}
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "module", ID: id}
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	module.ComputeVirtuals()
	return &ModuleResponse{Module: module, Instructor: s.instructorRef(ctx, module)}, nil
}

func (s *moduleService) List(ctx context.Context, params ListModulesParams) (*ModuleListResponse, error) {
	page, limit := clampPaging(params.Page, params.Limit)

	filters := repositories.ModuleFilters{
		Difficulty: params.Difficulty,
		Category:   params.Category,
		Search:     params.Search,
		Limit:      limit,
		Offset:     (page - 1) * limit,
		SortBy:     params.SortBy,
		SortOrder:  params.SortOrder,
	}

	modules, total, err := s.repo.Module().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}

	out := make([]*ModuleResponse, len(modules))
	for i, m := range modules {
		m.ComputeVirtuals()
		out[i] = &ModuleResponse{Module: m, Instructor: m.Instructor.Ref()}
	}

	return &ModuleListResponse{
		Modules: out,
		Pagination: ModulePagination{
			Pagination:   NewPagination(page, limit, total),
			TotalModules: total,
		},
	}, nil
}

func (s *moduleService) GetLessons(ctx context.Context, id string) (*LessonsResponse, error) {
	module, err := s.repo.Module().GetVisibleByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "module", ID: id}
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	lessons := make([]models.Lesson, len(module.Lessons))
	copy(lessons, module.Lessons)
	sortLessons(lessons)

	return &LessonsResponse{ModuleTitle: module.Title, Lessons: lessons}, nil
}

// sortLessons orders lessons by their Order field, keeping insertion order
// for ties.
func sortLessons(lessons []models.Lesson) {
	for i := 1; i < len(lessons); i++ {
		for j := i; j > 0 && lessons[j].Order < lessons[j-1].Order; j-- {
			lessons[j], lessons[j-1] = lessons[j-1], lessons[j]
		}
	}
}

// MarkCompleted awards completion points. The module only needs to be active;
// learners may finish a module its author has since unpublished.
func (s *moduleService) MarkCompleted(ctx context.Context, id string, actor *models.User) (*CompletionResult, error) {
	module, err := s.repo.Module().GetActiveByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "module", ID: id}
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	award := module.CompletionAward()

	newTotal, err := s.repo.User().AwardPoints(ctx, actor.ID, award)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "user", ID: actor.ID}
		}
		return nil, fmt.Errorf("failed to award completion points: %w", err)
	}

	s.logger.Info("Module completed", "module_id", module.ID, "user_id", actor.ID, "points_awarded", award)

	if err := s.publisher.Publish(ctx, events.Event{
		Type: events.TypeModuleCompleted,
		Data: events.ModuleCompletedEvent{
			ModuleID:      module.ID,
			UserID:        actor.ID,
			PointsAwarded: award,
		},
	}); err != nil {
		s.logger.Error("Failed to publish module completion event", "error", err)
	}

	return &CompletionResult{
		ModuleID:        module.ID,
		PointsAwarded:   award,
		UserTotalPoints: newTotal,
	}, nil
}

func (s *moduleService) instructorRef(ctx context.Context, module *models.Module) *models.UserRef {
	if module.Instructor != nil {
		return module.Instructor.Ref()
	}
	if module.InstructorID == "" {
		return nil
	}
	instructor, err := s.repo.User().GetByID(ctx, module.InstructorID)
	if err != nil {
		return nil
	}
	return instructor.Ref()
}

// clampPaging applies the shared page/limit defaults and bounds.
func clampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
