package repositories

import (
	"context"
	"time"

	"github.com/SIH-2025/edusafe-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type ModuleFilters struct {
	Difficulty *models.Difficulty `json:"difficulty"`
	Category   *string            `json:"category"`
	Search     *string            `json:"search"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
	SortBy     string             `json:"sort_by"`    // "created_at", "title", "difficulty"
	SortOrder  string             `json:"sort_order"` // "asc", "desc"
}

type ReportFilters struct {
	Status       *models.ReportStatus   `json:"status"`
	Category     *models.ReportCategory `json:"category"`
	Priority     *models.ReportPriority `json:"priority"`
	Search       *string                `json:"search"`
	ReportedByID *string                `json:"reported_by_id"`
	Limit        int                    `json:"limit"`
	Offset       int                    `json:"offset"`
	SortBy       string                 `json:"sort_by"`
	SortOrder    string                 `json:"sort_order"`
}

// ===== SHARED STATISTICS STRUCTS =====

type GroupCount struct {
	Key   string `json:"_id" gorm:"column:key"`
	Count int64  `json:"count" gorm:"column:count"`
}

type ReportStats struct {
	TotalReports         int64        `json:"totalReports"`
	PendingReports       int64        `json:"pendingReports"`
	InvestigatingReports int64        `json:"investigatingReports"`
	ResolvedReports      int64        `json:"resolvedReports"`
	RecentReports        int64        `json:"recentReports"`
	CategoryStats        []GroupCount `json:"categoryStats"`
	PriorityStats        []GroupCount `json:"priorityStats"`
}

// ===== REPOSITORY INTERFACES =====

type ModuleRepository interface {
	Create(ctx context.Context, module *models.Module) error
	Update(ctx context.Context, module *models.Module) error
	GetByID(ctx context.Context, id string) (*models.Module, error)
	// GetVisibleByID returns the module only if it is published and active.
	GetVisibleByID(ctx context.Context, id string) (*models.Module, error)
	// GetActiveByID returns the module only if it is active (publish state ignored).
	GetActiveByID(ctx context.Context, id string) (*models.Module, error)
	// List returns published+active modules matching the filters, with lesson
	// bodies excluded from the projection, and the total match count.
	List(ctx context.Context, filters ModuleFilters) ([]*models.Module, int64, error)
}

type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	Update(ctx context.Context, quiz *models.Quiz) error
	GetByModule(ctx context.Context, moduleID string) (*models.Quiz, error)
	// GetVisibleByModule returns the quiz only if it is published and active.
	GetVisibleByModule(ctx context.Context, moduleID string) (*models.Quiz, error)
}

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	Update(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id string) (*models.Report, error)
	List(ctx context.Context, filters ReportFilters) ([]*models.Report, int64, error)
	Stats(ctx context.Context, recentSince time.Time) (*ReportStats, error)
}

type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	Update(ctx context.Context, story *models.Story) error
	GetByID(ctx context.Context, id string) (*models.Story, error)
	List(ctx context.Context) ([]*models.Story, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
	// AwardPoints atomically increments the user's cumulative points and
	// returns the new total.
	AwardPoints(ctx context.Context, userID string, points int) (int, error)
	// TopStudents returns up to limit users with role student ordered by
	// points descending.
	TopStudents(ctx context.Context, limit int) ([]*models.User, error)
}

// Repository aggregates the per-domain repositories.
type Repository interface {
	Module() ModuleRepository
	Quiz() QuizRepository
	Report() ReportRepository
	Story() StoryRepository
	User() UserRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}
