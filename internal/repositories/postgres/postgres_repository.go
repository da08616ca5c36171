package postgres

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SIH-2025/edusafe-service/internal/cache"
	"github.com/SIH-2025/edusafe-service/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface.
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	module repositories.ModuleRepository
	quiz   repositories.QuizRepository
	report repositories.ReportRepository
	story  repositories.StoryRepository
	user   repositories.UserRepository
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates a new repository manager with all
// sub-repositories.
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	return newWithDB(config.DB, config.RedisClient)
}

func newWithDB(db *gorm.DB, redisClient *redis.Client) *PostgreSQLRepository {
	cacheManager := cache.NewCacheManager(redisClient)

	return &PostgreSQLRepository{
		db:           db,
		redisClient:  redisClient,
		cacheManager: cacheManager,
		module:       NewModulePostgreSQL(db, cacheManager),
		quiz:         NewQuizPostgreSQL(db),
		report:       NewReportPostgreSQL(db, cacheManager),
		story:        NewStoryPostgreSQL(db),
		user:         NewUserPostgreSQL(db, cacheManager),
	}
}

func (r *PostgreSQLRepository) Module() repositories.ModuleRepository { return r.module }
func (r *PostgreSQLRepository) Quiz() repositories.QuizRepository     { return r.quiz }
func (r *PostgreSQLRepository) Report() repositories.ReportRepository { return r.report }
func (r *PostgreSQLRepository) Story() repositories.StoryRepository   { return r.story }
func (r *PostgreSQLRepository) User() repositories.UserRepository     { return r.user }

// WithTransaction runs fn against a repository bound to a single database
// transaction; fn returning an error rolls the transaction back.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newWithDB(tx, r.redisClient))
	})
}

// Ping verifies database reachability.
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying database connection pool.
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
