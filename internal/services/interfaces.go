package services

import (
	"context"

	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/internal/repositories"
	"github.com/SIH-2025/edusafe-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type CreateModuleRequest = validator.CreateModuleRequest
type UpdateModuleRequest = validator.UpdateModuleRequest
type AddQuestionRequest = validator.AddQuestionRequest
type SubmitQuizRequest = validator.SubmitQuizRequest
type AnswerInput = validator.AnswerInput
type CreateReportRequest = validator.CreateReportRequest
type ResolveReportRequest = validator.ResolveReportRequest
type UpdateProfileRequest = validator.UpdateProfileRequest
type CreateStoryRequest = validator.CreateStoryRequest
type ChatMessageRequest = validator.ChatMessageRequest

// Pagination mirrors the paging block the list endpoints return.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"-"`
}

// NewPagination derives the paging block from a page/limit pair and the total
// match count. Page and limit are assumed already clamped.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
		Limit:       limit,
		Total:       total,
	}
}

type ModuleResponse struct {
	*models.Module
	Instructor *models.UserRef `json:"instructor,omitempty"`
}

type ModulePagination struct {
	Pagination
	TotalModules int64 `json:"totalModules"`
}

type ModuleListResponse struct {
	Modules    []*ModuleResponse `json:"modules"`
	Pagination ModulePagination  `json:"pagination"`
}

// ListModulesParams carries the already-parsed list query. Invalid difficulty
// or sort values are rejected before this struct is built.
type ListModulesParams struct {
	Difficulty *models.Difficulty
	Category   *string
	Search     *string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

type LessonsResponse struct {
	ModuleTitle string          `json:"moduleTitle"`
	Lessons     []models.Lesson `json:"lessons"`
}

// CompletionResult is returned by the completion award operation.
type CompletionResult struct {
	ModuleID        string `json:"moduleId"`
	PointsAwarded   int    `json:"pointsAwarded"`
	UserTotalPoints int    `json:"userTotalPoints"`
}

// AnswerResult is the per-question scoring detail of a quiz submission.
type AnswerResult struct {
	QuestionID     string `json:"questionId"`
	Correct        bool   `json:"correct"`
	PointsAwarded  int    `json:"pointsAwarded"`
	PointsPossible int    `json:"pointsPossible"`
}

type QuizSubmissionResult struct {
	CorrectCount    int            `json:"correctCount"`
	TotalQuestions  int            `json:"totalQuestions"`
	ScorePoints     int            `json:"scorePoints"`
	TotalPoints     int            `json:"totalPoints"`
	Percentage      int            `json:"percentage"`
	Passed          bool           `json:"passed"`
	PointsAwarded   int            `json:"pointsAwarded"`
	UserTotalPoints int            `json:"userTotalPoints"`
	Detailed        []AnswerResult `json:"detailed"`
}

type ReportResponse struct {
	*models.Report
	ReportedBy *models.UserRef `json:"reportedBy,omitempty"`
	ResolvedBy *models.UserRef `json:"resolvedBy,omitempty"`
}

type ReportPagination struct {
	Pagination
	TotalReports int64 `json:"totalReports"`
}

type ReportListResponse struct {
	Reports    []*ReportResponse `json:"reports"`
	Pagination ReportPagination  `json:"pagination"`
}

type ListReportsParams struct {
	Status   *models.ReportStatus
	Category *models.ReportCategory
	Priority *models.ReportPriority
	Search   *string
	Page     int
	Limit    int
	SortBy   string
	SortOrder string
}

// ResolveResult carries the updated report plus whether this call performed
// the resolution or found it already done.
type ResolveResult struct {
	Report          *ReportResponse
	AlreadyResolved bool
}

type StoryResponse struct {
	*models.Story
	Author *models.UserRef `json:"author,omitempty"`
}

type LikeResult struct {
	StoryID string `json:"storyId"`
	Likes   int    `json:"likes"`
	Liked   bool   `json:"liked"`
}

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	ID       string `json:"id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
	Role     string `json:"role"`
}

type ChatReply struct {
	Reply string `json:"reply"`
}

// ===== SERVICE INTERFACES =====

type ModuleService interface {
	Create(ctx context.Context, req *CreateModuleRequest, actor *models.User) (*ModuleResponse, error)
	Update(ctx context.Context, id string, req *UpdateModuleRequest, actor *models.User) (*ModuleResponse, error)
	GetByID(ctx context.Context, id string, actor *models.User) (*ModuleResponse, error)
	List(ctx context.Context, params ListModulesParams) (*ModuleListResponse, error)
	GetLessons(ctx context.Context, id string) (*LessonsResponse, error)
	MarkCompleted(ctx context.Context, id string, actor *models.User) (*CompletionResult, error)
}

type QuizService interface {
	AddQuestion(ctx context.Context, moduleID string, req *AddQuestionRequest, actor *models.User) (*models.RedactedQuiz, error)
	GetForLearner(ctx context.Context, moduleID string) (*models.RedactedQuiz, error)
	GetForReview(ctx context.Context, moduleID string, actor *models.User) (*models.Quiz, error)
	Submit(ctx context.Context, moduleID string, req *SubmitQuizRequest, actor *models.User) (*QuizSubmissionResult, error)
}

type ReportService interface {
	Create(ctx context.Context, req *CreateReportRequest, imageURL *string, actor *models.User) (*ReportResponse, error)
	List(ctx context.Context, params ListReportsParams, actor *models.User) (*ReportListResponse, error)
	ListMine(ctx context.Context, params ListReportsParams, actor *models.User) (*ReportListResponse, error)
	GetByID(ctx context.Context, id string, actor *models.User) (*ReportResponse, error)
	Resolve(ctx context.Context, id string, req *ResolveReportRequest, actor *models.User) (*ResolveResult, error)
	Stats(ctx context.Context, actor *models.User) (*repositories.ReportStats, error)
	// ExportStats renders the stats summary as an xlsx workbook.
	ExportStats(ctx context.Context, actor *models.User) ([]byte, error)
}

type StoryService interface {
	Create(ctx context.Context, req *CreateStoryRequest, actor *models.User) (*StoryResponse, error)
	List(ctx context.Context) ([]*StoryResponse, error)
	GetByID(ctx context.Context, id string) (*StoryResponse, error)
	Like(ctx context.Context, id string, actor *models.User) (*LikeResult, error)
	Unlike(ctx context.Context, id string, actor *models.User) (*LikeResult, error)
	LikeStatus(ctx context.Context, id string, actor *models.User) (*LikeResult, error)
}

type UserService interface {
	Leaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error)
	GetProfile(ctx context.Context, actor *models.User) (*models.User, error)
	UpdateProfile(ctx context.Context, req *UpdateProfileRequest, actor *models.User) (*models.User, error)
}

type ChatbotService interface {
	Reply(ctx context.Context, message string) *ChatReply
	QuickQuestions() []string
}

// ServiceManager wires every service over the shared dependencies.
type ServiceManager interface {
	Module() ModuleService
	Quiz() QuizService
	Report() ReportService
	Story() StoryService
	User() UserService
	Chatbot() ChatbotService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
	HealthCheck(ctx context.Context) error
}
