package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/internal/repositories"
	"github.com/SIH-2025/edusafe-service/internal/services"
	"github.com/SIH-2025/edusafe-service/internal/utils"
)

type HandlerManager struct {
	moduleHandler  *ModuleHandler
	quizHandler    *QuizHandler
	reportHandler  *ReportHandler
	storyHandler   *StoryHandler
	userHandler    *UserHandler
	chatbotHandler *ChatbotHandler
	authMiddleware *JWTAuthMiddleware
	repo           repositories.Repository
	uploadDir      string
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	authMiddleware *JWTAuthMiddleware,
	repo repositories.Repository,
	uploadDir string,
) *HandlerManager {
	return &HandlerManager{
		moduleHandler:  NewModuleHandler(serviceManager.Module(), logger),
		quizHandler:    NewQuizHandler(serviceManager.Quiz(), logger),
		reportHandler:  NewReportHandler(serviceManager.Report(), uploadDir, logger),
		storyHandler:   NewStoryHandler(serviceManager.Story(), logger),
		userHandler:    NewUserHandler(serviceManager.User(), logger),
		chatbotHandler: NewChatbotHandler(serviceManager.Chatbot(), logger),
		authMiddleware: authMiddleware,
		repo:           repo,
		uploadDir:      uploadDir,
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/", hm.banner)
	router.GET("/health", hm.healthCheck)
	router.Static("/uploads", hm.uploadDir)

	auth := hm.authMiddleware.AuthMiddleware()
	optionalAuth := hm.authMiddleware.OptionalAuthMiddleware()
	staffOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin)

	api := router.Group("/api")
	{
		modules := api.Group("/modules")
		{
			// Public learning surface; optional auth lets staff see
			// unpublished modules.
			modules.GET("", hm.moduleHandler.ListModules)
			modules.GET("/:id", optionalAuth, hm.moduleHandler.GetModule)
			modules.GET("/:id/lessons", hm.moduleHandler.GetLessons)
			modules.GET("/:id/quiz", hm.quizHandler.GetQuiz)

			// Authoring - teachers and admins only
			modules.POST("", auth, staffOnly, hm.moduleHandler.CreateModule)
			modules.PUT("/:id", auth, staffOnly, hm.moduleHandler.UpdateModule)
			modules.GET("/:id/quiz/admin", auth, staffOnly, hm.quizHandler.GetQuizAdmin)
			modules.POST("/:id/quiz/questions", auth, staffOnly, hm.quizHandler.AddQuestion)

			// Learner progress - any authenticated user
			modules.POST("/:id/complete", auth, hm.moduleHandler.MarkCompleted)
			modules.POST("/:id/quiz/submit", auth, hm.quizHandler.SubmitQuiz)
		}

		reports := api.Group("/reports", auth)
		{
			reports.POST("", hm.reportHandler.CreateReport)
			reports.GET("", staffOnly, hm.reportHandler.ListReports)
			reports.GET("/my-reports", hm.reportHandler.ListMyReports)
			reports.GET("/stats/summary", staffOnly, hm.reportHandler.GetStats)
			reports.GET("/stats/export", staffOnly, hm.reportHandler.ExportStats)
			reports.GET("/:id", hm.reportHandler.GetReport)
			reports.PATCH("/:id/resolve", staffOnly, hm.reportHandler.ResolveReport)
		}

		users := api.Group("/users")
		{
			users.GET("/leaderboard", hm.userHandler.GetLeaderboard)
			users.GET("/me", auth, hm.userHandler.GetProfile)
			users.PUT("/me", auth, hm.userHandler.UpdateProfile)
		}

		stories := api.Group("/stories")
		{
			stories.GET("", hm.storyHandler.ListStories)
			stories.GET("/:id", hm.storyHandler.GetStory)
			stories.POST("", auth, hm.storyHandler.CreateStory)
			stories.POST("/:id/like", auth, hm.storyHandler.LikeStory)
			stories.DELETE("/:id/like", auth, hm.storyHandler.UnlikeStory)
			stories.GET("/:id/like-status", auth, hm.storyHandler.GetLikeStatus)
		}

		chatbot := api.Group("/chatbot")
		{
			chatbot.POST("/message", hm.chatbotHandler.SendMessage)
			chatbot.GET("/quick-questions", hm.chatbotHandler.GetQuickQuestions)
		}
	}
}

// banner reports the service identity and database status.
func (hm *HandlerManager) banner(c *gin.Context) {
	database := "connected"
	if err := hm.repo.Ping(c.Request.Context()); err != nil {
		database = "disconnected"
	}
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "EduSafe API",
		Data:    gin.H{"database": database},
	})
}

// healthCheck reports liveness plus database reachability.
func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.repo.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, APIResponse{
			Success: false,
			Error:   "database unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    gin.H{"status": "ok", "database": "connected"},
	})
}
