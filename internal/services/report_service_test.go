package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/SIH-2025/edusafe-service/internal/events"
	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/internal/validator"
)

func newReportServiceForTest(repo *fakeRepository) (ReportService, *events.MockEventPublisher) {
	publisher := events.NewMockEventPublisher(testLogger())
	return NewReportService(repo, testLogger(), validator.New(), publisher), publisher
}

func TestReportCreate(t *testing.T) {
	repo := newFakeRepository()
	svc, publisher := newReportServiceForTest(repo)
	actor := studentUser("u1")
	repo.users.items[actor.ID] = actor

	lat, lng := 12.97, 77.59
	resp, err := svc.Create(context.Background(), &CreateReportRequest{
		Title:       "Broken railing",
		Description: "Second floor railing is loose",
		Location:    "Building B",
		Category:    "Infrastructure",
		GeoLat:      &lat,
		GeoLng:      &lng,
	}, nil, actor)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if resp.Status != models.StatusPending {
		t.Errorf("Status = %q, want Pending default", resp.Status)
	}
	if resp.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q, want Medium default", resp.Priority)
	}
	if resp.Geo == nil || resp.Geo.Lat == nil || *resp.Geo.Lat != lat {
		t.Errorf("Geo = %+v, want lat/lng preserved", resp.Geo)
	}
	if resp.ReportedBy == nil || resp.ReportedBy.ID != actor.ID {
		t.Errorf("ReportedBy = %+v, want actor ref", resp.ReportedBy)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.TypeReportCreated {
		t.Errorf("published = %+v, want one report.created", published)
	}
}

func TestReportCreateValidation(t *testing.T) {
	repo := newFakeRepository()
	svc, _ := newReportServiceForTest(repo)

	_, err := svc.Create(context.Background(), &CreateReportRequest{
		Title:    "x",
		Category: "Nonsense",
	}, nil, studentUser("u1"))
	if !IsValidationError(err) {
		t.Fatalf("Create() error = %v, want validation error", err)
	}
	// Description, location and category violations all surface together.
	if errs := err.(ValidationErrors); len(errs) != 3 {
		t.Errorf("got %d validation errors (%v), want 3", len(errs), errs.Messages())
	}
}

func TestReportListRequiresStaff(t *testing.T) {
	repo := newFakeRepository()
	svc, _ := newReportServiceForTest(repo)

	if _, err := svc.List(context.Background(), ListReportsParams{}, studentUser("u1")); !IsPermissionError(err) {
		t.Errorf("List() as student error = %v, want permission error", err)
	}
	if _, err := svc.List(context.Background(), ListReportsParams{}, teacherUser("t1")); err != nil {
		t.Errorf("List() as teacher error = %v, want ok", err)
	}
}

func TestReportListMineFiltersToActor(t *testing.T) {
	repo := newFakeRepository()
	reporter := studentUser("u1")
	other := studentUser("u2")
	repo.users.items[reporter.ID] = reporter
	repo.users.items[other.ID] = other

	repo.reports.items["r1"] = &models.Report{ID: "r1", Title: "mine", ReportedByID: "u1", Status: models.StatusPending}
	repo.reports.items["r2"] = &models.Report{ID: "r2", Title: "theirs", ReportedByID: "u2", Status: models.StatusPending}

	svc, _ := newReportServiceForTest(repo)

	resp, err := svc.ListMine(context.Background(), ListReportsParams{}, reporter)
	if err != nil {
		t.Fatalf("ListMine() error = %v", err)
	}
	if len(resp.Reports) != 1 || resp.Reports[0].ID != "r1" {
		t.Errorf("ListMine() = %+v, want only r1", resp.Reports)
	}
	if resp.Pagination.TotalReports != 1 {
		t.Errorf("TotalReports = %d, want 1", resp.Pagination.TotalReports)
	}
}

func TestReportGetByIDAccess(t *testing.T) {
	repo := newFakeRepository()
	reporter := studentUser("u1")
	repo.users.items[reporter.ID] = reporter
	repo.reports.items["r1"] = &models.Report{
		ID: "r1", Title: "t", ReportedByID: "u1", IsPublic: true, Status: models.StatusPending,
	}
	svc, _ := newReportServiceForTest(repo)

	tests := []struct {
		name    string
		actor   *models.User
		wantErr bool
	}{
		{name: "reporter", actor: reporter, wantErr: false},
		{name: "teacher", actor: teacherUser("t1"), wantErr: false},
		{name: "admin", actor: adminUser("a1"), wantErr: false},
		// Public flag does not open the report to other students.
		{name: "other student", actor: studentUser("u2"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetByID(context.Background(), "r1", tt.actor)
			if tt.wantErr && !IsPermissionError(err) {
				t.Errorf("GetByID() error = %v, want permission error", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("GetByID() error = %v, want ok", err)
			}
		})
	}
}

func TestReportResolve(t *testing.T) {
	repo := newFakeRepository()
	reporter := studentUser("u1")
	resolver := teacherUser("t1")
	repo.users.items[reporter.ID] = reporter
	repo.users.items[resolver.ID] = resolver
	repo.reports.items["r1"] = &models.Report{
		ID: "r1", Title: "t", ReportedByID: "u1", Status: models.StatusPending,
	}

	svc, publisher := newReportServiceForTest(repo)

	result, err := svc.Resolve(context.Background(), "r1", &ResolveReportRequest{}, resolver)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if result.AlreadyResolved {
		t.Error("first Resolve() reported AlreadyResolved")
	}
	if result.Report.Status != models.StatusResolved {
		t.Errorf("Status = %q, want Resolved", result.Report.Status)
	}
	if result.Report.Resolution == nil {
		t.Fatal("Resolution not written")
	}
	if result.Report.Resolution.Description != "Resolved" {
		t.Errorf("Description = %q, want %q default", result.Report.Resolution.Description, "Resolved")
	}
	if result.Report.Resolution.ResolvedByID != resolver.ID {
		t.Errorf("ResolvedByID = %q, want resolver", result.Report.Resolution.ResolvedByID)
	}
	if result.Report.ResolvedBy == nil || result.Report.ResolvedBy.ID != resolver.ID {
		t.Errorf("ResolvedBy ref = %+v, want resolver", result.Report.ResolvedBy)
	}

	firstResolvedAt := result.Report.Resolution.ResolvedAt

	// A second resolve keeps the original resolution.
	other := adminUser("a1")
	repo.users.items[other.ID] = other
	result, err = svc.Resolve(context.Background(), "r1", &ResolveReportRequest{Description: "trying again"}, other)
	if err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}
	if !result.AlreadyResolved {
		t.Error("second Resolve() did not report AlreadyResolved")
	}
	if result.Report.Resolution.ResolvedByID != resolver.ID {
		t.Errorf("ResolvedByID = %q, original resolver must be kept", result.Report.Resolution.ResolvedByID)
	}
	if result.Report.Resolution.Description != "Resolved" {
		t.Errorf("Description = %q, original description must be kept", result.Report.Resolution.Description)
	}
	if !result.Report.Resolution.ResolvedAt.Equal(firstResolvedAt) {
		t.Error("ResolvedAt changed on repeat resolve")
	}

	// Only the first resolve publishes.
	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.TypeReportResolved {
		t.Errorf("published = %+v, want exactly one report.resolved", published)
	}
}

func TestReportResolveRequiresStaff(t *testing.T) {
	repo := newFakeRepository()
	repo.reports.items["r1"] = &models.Report{ID: "r1", ReportedByID: "u1", Status: models.StatusPending}
	svc, _ := newReportServiceForTest(repo)

	if _, err := svc.Resolve(context.Background(), "r1", &ResolveReportRequest{}, studentUser("u1")); !IsPermissionError(err) {
		t.Errorf("Resolve() as student error = %v, want permission error", err)
	}
}

func TestReportStats(t *testing.T) {
	repo := newFakeRepository()
	now := time.Now().UTC()
	repo.reports.items["r1"] = &models.Report{ID: "r1", Status: models.StatusPending, CreatedAt: now}
	repo.reports.items["r2"] = &models.Report{ID: "r2", Status: models.StatusResolved, CreatedAt: now.Add(-30 * 24 * time.Hour)}
	repo.reports.items["r3"] = &models.Report{ID: "r3", Status: models.StatusInvestigating, CreatedAt: now}

	svc, _ := newReportServiceForTest(repo)

	if _, err := svc.Stats(context.Background(), studentUser("u1")); !IsPermissionError(err) {
		t.Fatalf("Stats() as student error = %v, want permission error", err)
	}

	stats, err := svc.Stats(context.Background(), teacherUser("t1"))
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalReports != 3 || stats.PendingReports != 1 || stats.InvestigatingReports != 1 || stats.ResolvedReports != 1 {
		t.Errorf("stats = %+v", stats)
	}
	// r2 is a month old and falls outside the 7-day window.
	if stats.RecentReports != 2 {
		t.Errorf("RecentReports = %d, want 2", stats.RecentReports)
	}
}

func TestReportExportStats(t *testing.T) {
	repo := newFakeRepository()
	repo.reports.items["r1"] = &models.Report{ID: "r1", Status: models.StatusPending, CreatedAt: time.Now().UTC()}
	svc, _ := newReportServiceForTest(repo)

	data, err := svc.ExportStats(context.Background(), adminUser("a1"))
	if err != nil {
		t.Fatalf("ExportStats() error = %v", err)
	}
	// xlsx files are zip archives; check the magic bytes.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("ExportStats() output does not look like an xlsx workbook")
	}

	if _, err := svc.ExportStats(context.Background(), studentUser("u1")); !IsPermissionError(err) {
		t.Errorf("ExportStats() as student error = %v, want permission error", err)
	}
}
