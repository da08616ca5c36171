package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SIH-2025/edusafe-service/internal/events"
	"github.com/SIH-2025/edusafe-service/internal/repositories"
	"github.com/SIH-2025/edusafe-service/internal/validator"
)

// serviceManager implements ServiceManager over the shared dependencies.
type serviceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher

	moduleService  ModuleService
	quizService    QuizService
	reportService  ReportService
	storyService   StoryService
	userService    UserService
	chatbotService ChatbotService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

// Initialize wires every service instance. Safe to call more than once.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.moduleService = NewModuleService(sm.repo, sm.logger, sm.validator, sm.publisher)
	sm.quizService = NewQuizService(sm.repo, sm.logger, sm.validator, sm.publisher)
	sm.reportService = NewReportService(sm.repo, sm.logger, sm.validator, sm.publisher)
	sm.storyService = NewStoryService(sm.repo, sm.logger, sm.validator, sm.publisher)
	sm.userService = NewUserService(sm.repo, sm.logger, sm.validator)
	sm.chatbotService = NewChatbotService()

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if err := sm.publisher.Close(); err != nil {
		sm.logger.Error("Failed to close event publisher", "error", err)
	}

	sm.shutdown = true
	return nil
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}
	return sm.repo.Ping(ctx)
}

func (sm *serviceManager) Module() ModuleService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.moduleService
}

func (sm *serviceManager) Quiz() QuizService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.quizService
}

func (sm *serviceManager) Report() ReportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.reportService
}

func (sm *serviceManager) Story() StoryService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.storyService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.userService
}

func (sm *serviceManager) Chatbot() ChatbotService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.chatbotService
}
