package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/internal/repositories"
)

// fakeRepository is an in-memory repositories.Repository used by the service
// tests.
type fakeRepository struct {
	modules *fakeModuleRepo
	quizzes *fakeQuizRepo
	reports *fakeReportRepo
	stories *fakeStoryRepo
	users   *fakeUserRepo
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		modules: &fakeModuleRepo{items: map[string]*models.Module{}},
		quizzes: &fakeQuizRepo{items: map[string]*models.Quiz{}},
		reports: &fakeReportRepo{items: map[string]*models.Report{}},
		stories: &fakeStoryRepo{items: map[string]*models.Story{}},
		users:   &fakeUserRepo{items: map[string]*models.User{}},
	}
}

func (f *fakeRepository) Module() repositories.ModuleRepository { return f.modules }
func (f *fakeRepository) Quiz() repositories.QuizRepository     { return f.quizzes }
func (f *fakeRepository) Report() repositories.ReportRepository { return f.reports }
func (f *fakeRepository) Story() repositories.StoryRepository   { return f.stories }
func (f *fakeRepository) User() repositories.UserRepository     { return f.users }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

type fakeModuleRepo struct {
	items map[string]*models.Module
}

func (r *fakeModuleRepo) Create(ctx context.Context, module *models.Module) error {
	if module.ID == "" {
		module.ID = models.NewID()
	}
	for i := range module.Lessons {
		if module.Lessons[i].ID == "" {
			module.Lessons[i].ID = models.NewID()
		}
	}
	r.items[module.ID] = module
	return nil
}

func (r *fakeModuleRepo) Update(ctx context.Context, module *models.Module) error {
	if _, ok := r.items[module.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.items[module.ID] = module
	return nil
}

func (r *fakeModuleRepo) GetByID(ctx context.Context, id string) (*models.Module, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return m, nil
}

func (r *fakeModuleRepo) GetVisibleByID(ctx context.Context, id string) (*models.Module, error) {
	m, ok := r.items[id]
	if !ok || !m.IsPublished || !m.IsActive {
		return nil, repositories.ErrNotFound
	}
	return m, nil
}

func (r *fakeModuleRepo) GetActiveByID(ctx context.Context, id string) (*models.Module, error) {
	m, ok := r.items[id]
	if !ok || !m.IsActive {
		return nil, repositories.ErrNotFound
	}
	return m, nil
}

func (r *fakeModuleRepo) List(ctx context.Context, filters repositories.ModuleFilters) ([]*models.Module, int64, error) {
	var matched []*models.Module
	for _, m := range r.items {
		if !m.IsPublished || !m.IsActive {
			continue
		}
		if filters.Difficulty != nil && m.Difficulty != *filters.Difficulty {
			continue
		}
		if filters.Category != nil && m.Category != *filters.Category {
			continue
		}
		if filters.Search != nil && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(*filters.Search)) {
			continue
		}
		matched = append(matched, m)
	}

	total := int64(len(matched))
	if filters.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filters.Offset:]
	if filters.Limit > 0 && len(matched) > filters.Limit {
		matched = matched[:filters.Limit]
	}
	return matched, total, nil
}

type fakeQuizRepo struct {
	items map[string]*models.Quiz // keyed by module id
}

func (r *fakeQuizRepo) Create(ctx context.Context, quiz *models.Quiz) error {
	if quiz.ID == "" {
		quiz.ID = models.NewID()
	}
	r.items[quiz.ModuleID] = quiz
	return nil
}

func (r *fakeQuizRepo) Update(ctx context.Context, quiz *models.Quiz) error {
	if _, ok := r.items[quiz.ModuleID]; !ok {
		return repositories.ErrNotFound
	}
	r.items[quiz.ModuleID] = quiz
	return nil
}

func (r *fakeQuizRepo) GetByModule(ctx context.Context, moduleID string) (*models.Quiz, error) {
	q, ok := r.items[moduleID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return q, nil
}

func (r *fakeQuizRepo) GetVisibleByModule(ctx context.Context, moduleID string) (*models.Quiz, error) {
	q, ok := r.items[moduleID]
	if !ok || !q.IsPublished || !q.IsActive {
		return nil, repositories.ErrNotFound
	}
	return q, nil
}

type fakeReportRepo struct {
	items map[string]*models.Report
	stats *repositories.ReportStats
}

func (r *fakeReportRepo) Create(ctx context.Context, report *models.Report) error {
	if report.ID == "" {
		report.ID = models.NewID()
	}
	if report.Status == "" {
		report.Status = models.StatusPending
	}
	if report.Priority == "" {
		report.Priority = models.PriorityMedium
	}
	report.CreatedAt = time.Now().UTC()
	r.items[report.ID] = report
	return nil
}

func (r *fakeReportRepo) Update(ctx context.Context, report *models.Report) error {
	if _, ok := r.items[report.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.items[report.ID] = report
	return nil
}

func (r *fakeReportRepo) GetByID(ctx context.Context, id string) (*models.Report, error) {
	rep, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return rep, nil
}

func (r *fakeReportRepo) List(ctx context.Context, filters repositories.ReportFilters) ([]*models.Report, int64, error) {
	var matched []*models.Report
	for _, rep := range r.items {
		if filters.Status != nil && rep.Status != *filters.Status {
			continue
		}
		if filters.Category != nil && rep.Category != *filters.Category {
			continue
		}
		if filters.Priority != nil && rep.Priority != *filters.Priority {
			continue
		}
		if filters.ReportedByID != nil && rep.ReportedByID != *filters.ReportedByID {
			continue
		}
		matched = append(matched, rep)
	}

	total := int64(len(matched))
	if filters.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filters.Offset:]
	if filters.Limit > 0 && len(matched) > filters.Limit {
		matched = matched[:filters.Limit]
	}
	return matched, total, nil
}

func (r *fakeReportRepo) Stats(ctx context.Context, recentSince time.Time) (*repositories.ReportStats, error) {
	if r.stats != nil {
		return r.stats, nil
	}

	stats := &repositories.ReportStats{}
	for _, rep := range r.items {
		stats.TotalReports++
		switch rep.Status {
		case models.StatusPending:
			stats.PendingReports++
		case models.StatusInvestigating:
			stats.InvestigatingReports++
		case models.StatusResolved:
			stats.ResolvedReports++
		}
		if rep.CreatedAt.After(recentSince) {
			stats.RecentReports++
		}
	}
	return stats, nil
}

type fakeStoryRepo struct {
	items map[string]*models.Story
}

func (r *fakeStoryRepo) Create(ctx context.Context, story *models.Story) error {
	if story.ID == "" {
		story.ID = models.NewID()
	}
	r.items[story.ID] = story
	return nil
}

func (r *fakeStoryRepo) Update(ctx context.Context, story *models.Story) error {
	if _, ok := r.items[story.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.items[story.ID] = story
	return nil
}

func (r *fakeStoryRepo) GetByID(ctx context.Context, id string) (*models.Story, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return s, nil
}

func (r *fakeStoryRepo) List(ctx context.Context) ([]*models.Story, error) {
	out := make([]*models.Story, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	return out, nil
}

type fakeUserRepo struct {
	items map[string]*models.User
	// topStudents, when set, overrides the leaderboard query result.
	topStudents []*models.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = models.NewID()
	}
	r.items[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.items[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.items[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User, len(ids))
	for _, id := range ids {
		if u, ok := r.items[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (r *fakeUserRepo) AwardPoints(ctx context.Context, userID string, points int) (int, error) {
	u, ok := r.items[userID]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	u.Points += points
	return u.Points, nil
}

func (r *fakeUserRepo) TopStudents(ctx context.Context, limit int) ([]*models.User, error) {
	if r.topStudents != nil {
		if len(r.topStudents) > limit {
			return r.topStudents[:limit], nil
		}
		return r.topStudents, nil
	}

	var out []*models.User
	for _, u := range r.items {
		if u.Role == models.RoleStudent {
			out = append(out, u)
		}
	}
	// Selection sort by points descending; small fixtures only.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Points > out[i].Points {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func studentUser(id string) *models.User {
	return &models.User{ID: id, Username: "student-" + id, Email: id + "@test.local", Role: models.RoleStudent}
}

func teacherUser(id string) *models.User {
	return &models.User{ID: id, Username: "teacher-" + id, Email: id + "@test.local", Role: models.RoleTeacher}
}

func adminUser(id string) *models.User {
	return &models.User{ID: id, Username: "admin-" + id, Email: id + "@test.local", Role: models.RoleAdmin}
}
