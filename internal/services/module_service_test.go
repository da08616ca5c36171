package services

import (
	"context"
	"testing"

	"github.com/SIH-2025/edusafe-service/internal/events"
	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/internal/validator"
)

func newModuleServiceForTest(repo *fakeRepository) (ModuleService, *events.MockEventPublisher) {
	publisher := events.NewMockEventPublisher(testLogger())
	return NewModuleService(repo, testLogger(), validator.New(), publisher), publisher
}

func TestModuleCreate(t *testing.T) {
	repo := newFakeRepository()
	svc, _ := newModuleServiceForTest(repo)
	actor := teacherUser("t1")

	resp, err := svc.Create(context.Background(), &CreateModuleRequest{
		Title:          "Fire Safety",
		Description:    "Learn fire safety",
		Difficulty:     "beginner",
		Duration:       "2 hours",
		EstimatedHours: 2,
		Lessons: []validator.LessonInput{
			{Title: "Intro", Order: 1, EstimatedTime: 10},
			{Title: "Drills", Type: "video", Order: 2, EstimatedTime: 20},
		},
	}, actor)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !resp.IsPublished || !resp.IsActive {
		t.Error("new module should default to published and active")
	}
	if resp.InstructorID != actor.ID {
		t.Errorf("InstructorID = %q, want actor id", resp.InstructorID)
	}
	if resp.Lessons[0].Type != models.LessonText {
		t.Errorf("lesson type = %q, want text default", resp.Lessons[0].Type)
	}
	if resp.LessonCount != 2 || resp.TotalEstimatedTime != 30 {
		t.Errorf("virtuals = %d lessons / %d minutes, want 2/30", resp.LessonCount, resp.TotalEstimatedTime)
	}
	if resp.Instructor == nil || resp.Instructor.ID != actor.ID {
		t.Errorf("Instructor ref = %+v, want actor", resp.Instructor)
	}
}

func TestModuleCreateRequiresStaff(t *testing.T) {
	repo := newFakeRepository()
	svc, _ := newModuleServiceForTest(repo)

	_, err := svc.Create(context.Background(), &CreateModuleRequest{
		Title:          "Fire Safety",
		Description:    "desc",
		Difficulty:     "beginner",
		Duration:       "2 hours",
		EstimatedHours: 2,
	}, studentUser("u1"))
	if !IsPermissionError(err) {
		t.Errorf("Create() as student error = %v, want permission error", err)
	}
}

func TestModuleUpdateOwnership(t *testing.T) {
	repo := newFakeRepository()
	repo.modules.items["mod1"] = &models.Module{
		ID: "mod1", Title: "Old", Description: "d", Difficulty: models.DifficultyBeginner,
		Duration: "1 hour", EstimatedHours: 1,
		IsPublished: true, IsActive: true, InstructorID: "t1",
	}
	svc, _ := newModuleServiceForTest(repo)

	newTitle := "New Title"

	// Another teacher cannot touch it.
	_, err := svc.Update(context.Background(), "mod1", &UpdateModuleRequest{Title: &newTitle}, teacherUser("t2"))
	if !IsPermissionError(err) {
		t.Fatalf("Update() by non-owner teacher error = %v, want permission error", err)
	}

	// The owning teacher can.
	resp, err := svc.Update(context.Background(), "mod1", &UpdateModuleRequest{Title: &newTitle}, teacherUser("t1"))
	if err != nil {
		t.Fatalf("Update() by owner error = %v", err)
	}
	if resp.Title != "New Title" {
		t.Errorf("Title = %q, want %q", resp.Title, "New Title")
	}
	if resp.Description != "d" {
		t.Errorf("Description = %q, absent fields must be untouched", resp.Description)
	}

	// Admins can edit anyone's module.
	other := "Admin Edit"
	if _, err := svc.Update(context.Background(), "mod1", &UpdateModuleRequest{Title: &other}, adminUser("a1")); err != nil {
		t.Errorf("Update() by admin error = %v", err)
	}
}

func TestModuleGetByIDVisibility(t *testing.T) {
	repo := newFakeRepository()
	repo.modules.items["hidden"] = &models.Module{ID: "hidden", IsPublished: false, IsActive: true}
	repo.modules.items["inactive"] = &models.Module{ID: "inactive", IsPublished: true, IsActive: false}
	svc, _ := newModuleServiceForTest(repo)

	// Anonymous and students see published+active only.
	if _, err := svc.GetByID(context.Background(), "hidden", nil); !IsNotFoundError(err) {
		t.Errorf("GetByID(hidden) anonymous error = %v, want not-found", err)
	}
	if _, err := svc.GetByID(context.Background(), "hidden", studentUser("u1")); !IsNotFoundError(err) {
		t.Errorf("GetByID(hidden) as student error = %v, want not-found", err)
	}

	// Staff see unpublished modules.
	if _, err := svc.GetByID(context.Background(), "hidden", teacherUser("t1")); err != nil {
		t.Errorf("GetByID(hidden) as teacher error = %v, want ok", err)
	}

	// Nobody sees inactive modules.
	if _, err := svc.GetByID(context.Background(), "inactive", adminUser("a1")); !IsNotFoundError(err) {
		t.Errorf("GetByID(inactive) as admin error = %v, want not-found", err)
	}
}

func TestModuleGetLessonsSorted(t *testing.T) {
	repo := newFakeRepository()
	repo.modules.items["mod1"] = &models.Module{
		ID: "mod1", Title: "Fire Safety", IsPublished: true, IsActive: true,
		Lessons: []models.Lesson{
			{Title: "third", Order: 3},
			{Title: "first", Order: 1},
			{Title: "second-a", Order: 2},
			{Title: "second-b", Order: 2},
		},
	}
	svc, _ := newModuleServiceForTest(repo)

	resp, err := svc.GetLessons(context.Background(), "mod1")
	if err != nil {
		t.Fatalf("GetLessons() error = %v", err)
	}
	if resp.ModuleTitle != "Fire Safety" {
		t.Errorf("ModuleTitle = %q", resp.ModuleTitle)
	}

	gotOrder := []string{}
	for _, l := range resp.Lessons {
		gotOrder = append(gotOrder, l.Title)
	}
	want := []string{"first", "second-a", "second-b", "third"}
	for i := range want {
		if gotOrder[i] != want[i] {
			t.Fatalf("lesson order = %v, want %v", gotOrder, want)
		}
	}

	// The stored module keeps its original slice.
	if repo.modules.items["mod1"].Lessons[0].Title != "third" {
		t.Error("GetLessons() mutated the stored module")
	}
}

func TestModuleMarkCompleted(t *testing.T) {
	repo := newFakeRepository()
	repo.modules.items["mod1"] = &models.Module{
		ID: "mod1", IsPublished: true, IsActive: true,
		Lessons: make([]models.Lesson, 3),
	}
	actor := studentUser("u1")
	repo.users.items[actor.ID] = actor

	svc, publisher := newModuleServiceForTest(repo)

	result, err := svc.MarkCompleted(context.Background(), "mod1", actor)
	if err != nil {
		t.Fatalf("MarkCompleted() error = %v", err)
	}
	if result.PointsAwarded != 6 {
		t.Errorf("PointsAwarded = %d, want 6 (3 lessons x 2, above floor)", result.PointsAwarded)
	}
	if result.UserTotalPoints != 6 {
		t.Errorf("UserTotalPoints = %d, want 6", result.UserTotalPoints)
	}

	// Completion is not idempotent; repeating awards again.
	result, err = svc.MarkCompleted(context.Background(), "mod1", actor)
	if err != nil {
		t.Fatalf("second MarkCompleted() error = %v", err)
	}
	if result.UserTotalPoints != 12 {
		t.Errorf("UserTotalPoints after repeat = %d, want 12", result.UserTotalPoints)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 2 || published[0].Type != events.TypeModuleCompleted {
		t.Errorf("published events = %+v, want two module.completed", published)
	}
}

func TestModuleMarkCompletedGates(t *testing.T) {
	repo := newFakeRepository()
	// Unpublished-but-active modules stay completable; learners may finish a
	// module its author has since unpublished.
	repo.modules.items["draft"] = &models.Module{ID: "draft", IsPublished: false, IsActive: true}
	repo.modules.items["retired"] = &models.Module{ID: "retired", IsPublished: true, IsActive: false}
	actor := studentUser("u1")
	repo.users.items[actor.ID] = actor
	svc, _ := newModuleServiceForTest(repo)

	result, err := svc.MarkCompleted(context.Background(), "draft", actor)
	if err != nil {
		t.Fatalf("MarkCompleted() on unpublished module error = %v", err)
	}
	if result.PointsAwarded != 5 {
		t.Errorf("PointsAwarded = %d, want floor 5", result.PointsAwarded)
	}

	if _, err := svc.MarkCompleted(context.Background(), "retired", actor); !IsNotFoundError(err) {
		t.Errorf("MarkCompleted() on inactive module error = %v, want not-found", err)
	}
}

func TestClampPaging(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", page: 0, limit: 0, wantPage: 1, wantLimit: 20},
		{name: "negative page", page: -3, limit: 10, wantPage: 1, wantLimit: 10},
		{name: "limit capped", page: 2, limit: 500, wantPage: 2, wantLimit: 100},
		{name: "in range untouched", page: 3, limit: 50, wantPage: 3, wantLimit: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := clampPaging(tt.page, tt.limit)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("clampPaging(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.limit, page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		total    int64
		wantPages int
		wantNext bool
		wantPrev bool
	}{
		{name: "first of three", page: 1, limit: 10, total: 25, wantPages: 3, wantNext: true, wantPrev: false},
		{name: "middle", page: 2, limit: 10, total: 25, wantPages: 3, wantNext: true, wantPrev: true},
		{name: "last", page: 3, limit: 10, total: 25, wantPages: 3, wantNext: false, wantPrev: true},
		{name: "exact fit", page: 1, limit: 10, total: 10, wantPages: 1, wantNext: false, wantPrev: false},
		{name: "empty result", page: 1, limit: 10, total: 0, wantPages: 0, wantNext: false, wantPrev: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.HasNextPage != tt.wantNext {
				t.Errorf("HasNextPage = %v, want %v", p.HasNextPage, tt.wantNext)
			}
			if p.HasPrevPage != tt.wantPrev {
				t.Errorf("HasPrevPage = %v, want %v", p.HasPrevPage, tt.wantPrev)
			}
		})
	}
}
