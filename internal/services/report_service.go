package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SIH-2025/edusafe-service/internal/events"
	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/internal/repositories"
	"github.com/SIH-2025/edusafe-service/internal/validator"
)

// recentReportWindow is the lookback used for the "recent reports" stat.
const recentReportWindow = 7 * 24 * time.Hour

type reportService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewReportService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ReportService {
	return &reportService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *reportService) Create(ctx context.Context, req *CreateReportRequest, imageURL *string, actor *models.User) (*ReportResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	report := &models.Report{
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		ImageURL:     imageURL,
		Category:     models.ReportCategory(req.Category),
		Priority:     models.ReportPriority(req.Priority),
		Tags:         req.Tags,
		IsAnonymous:  req.IsAnonymous,
		IsPublic:     req.IsPublic,
		ReportedByID: actor.ID,
	}
	if req.GeoLat != nil || req.GeoLng != nil || req.GeoAccuracy != nil {
		report.Geo = &models.GeoPoint{
			Lat:      req.GeoLat,
			Lng:      req.GeoLng,
			Accuracy: req.GeoAccuracy,
		}
	}

	if err := s.repo.Report().Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	s.logger.Info("Report created",
		"report_id", report.ID,
		"category", report.Category,
		"priority", report.Priority,
		"reported_by", actor.ID)

	if err := s.publisher.Publish(ctx, events.Event{
		Type: events.TypeReportCreated,
		Data: events.ReportCreatedEvent{
			ReportID: report.ID,
			Category: string(report.Category),
			Priority: string(report.Priority),
		},
	}); err != nil {
		s.logger.Error("Failed to publish report created event", "error", err)
	}

	return &ReportResponse{Report: report, ReportedBy: actor.Ref()}, nil
}

func (s *reportService) List(ctx context.Context, params ListReportsParams, actor *models.User) (*ReportListResponse, error) {
	if actor.Role != models.RoleTeacher && actor.Role != models.RoleAdmin {
		return nil, NewPermissionError(actor.ID, "report", "list", "insufficient role permissions")
	}
	return s.list(ctx, params, nil)
}

func (s *reportService) ListMine(ctx context.Context, params ListReportsParams, actor *models.User) (*ReportListResponse, error) {
	return s.list(ctx, params, &actor.ID)
}

func (s *reportService) list(ctx context.Context, params ListReportsParams, reportedByID *string) (*ReportListResponse, error) {
	page, limit := clampPaging(params.Page, params.Limit)

	filters := repositories.ReportFilters{
		Status:       params.Status,
		Category:     params.Category,
		Priority:     params.Priority,
		Search:       params.Search,
		ReportedByID: reportedByID,
		Limit:        limit,
		Offset:       (page - 1) * limit,
		SortBy:       params.SortBy,
		SortOrder:    params.SortOrder,
	}

	reports, total, err := s.repo.Report().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	out, err := s.buildResponses(ctx, reports)
	if err != nil {
		return nil, err
	}

	return &ReportListResponse{
		Reports: out,
		Pagination: ReportPagination{
			Pagination:   NewPagination(page, limit, total),
			TotalReports: total,
		},
	}, nil
}

// buildResponses attaches reporter and resolver projections, batching the
// user lookups.
func (s *reportService) buildResponses(ctx context.Context, reports []*models.Report) ([]*ReportResponse, error) {
	ids := make([]string, 0, len(reports)*2)
	for _, r := range reports {
		ids = append(ids, r.ReportedByID)
		if r.Resolution != nil {
			ids = append(ids, r.Resolution.ResolvedByID)
		}
	}

	users := map[string]*models.User{}
	if len(ids) > 0 {
		var err error
		users, err = s.repo.User().GetByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load report users: %w", err)
		}
	}

	out := make([]*ReportResponse, len(reports))
	for i, r := range reports {
		resp := &ReportResponse{Report: r, ReportedBy: users[r.ReportedByID].Ref()}
		if r.Resolution != nil {
			resp.ResolvedBy = users[r.Resolution.ResolvedByID].Ref()
		}
		out[i] = resp
	}
	return out, nil
}

func (s *reportService) GetByID(ctx context.Context, id string, actor *models.User) (*ReportResponse, error) {
	report, err := s.repo.Report().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "report", ID: id}
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	privileged := actor.Role == models.RoleTeacher || actor.Role == models.RoleAdmin
	if !privileged && report.ReportedByID != actor.ID {
		return nil, NewPermissionError(actor.ID, "report", "read", "not reporter or staff")
	}

	responses, err := s.buildResponses(ctx, []*models.Report{report})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

func (s *reportService) Resolve(ctx context.Context, id string, req *ResolveReportRequest, actor *models.User) (*ResolveResult, error) {
	if actor.Role != models.RoleTeacher && actor.Role != models.RoleAdmin {
		return nil, NewPermissionError(actor.ID, "report", "resolve", "insufficient role permissions")
	}

	report, err := s.repo.Report().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "report", ID: id}
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	// Resolution is written once; resolving an already-resolved report keeps
	// the original resolver and timestamp.
	if report.Status == models.StatusResolved && report.Resolution != nil {
		responses, err := s.buildResponses(ctx, []*models.Report{report})
		if err != nil {
			return nil, err
		}
		return &ResolveResult{Report: responses[0], AlreadyResolved: true}, nil
	}

	description := req.Description
	if description == "" {
		description = "Resolved"
	}

	report.Status = models.StatusResolved
	report.Resolution = &models.Resolution{
		ResolvedByID: actor.ID,
		Description:  description,
		ResolvedAt:   time.Now().UTC(),
	}

	if err := s.repo.Report().Update(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to resolve report: %w", err)
	}

	s.logger.Info("Report resolved", "report_id", report.ID, "resolved_by", actor.ID)

	if err := s.publisher.Publish(ctx, events.Event{
		Type: events.TypeReportResolved,
		Data: events.ReportResolvedEvent{
			ReportID:   report.ID,
			ResolvedBy: actor.ID,
		},
	}); err != nil {
		s.logger.Error("Failed to publish report resolved event", "error", err)
	}

	responses, err := s.buildResponses(ctx, []*models.Report{report})
	if err != nil {
		return nil, err
	}
	return &ResolveResult{Report: responses[0]}, nil
}

func (s *reportService) Stats(ctx context.Context, actor *models.User) (*repositories.ReportStats, error) {
	if actor.Role != models.RoleTeacher && actor.Role != models.RoleAdmin {
		return nil, NewPermissionError(actor.ID, "report", "stats", "insufficient role permissions")
	}

	stats, err := s.repo.Report().Stats(ctx, time.Now().UTC().Add(-recentReportWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to compute report stats: %w", err)
	}
	return stats, nil
}

func (s *reportService) ExportStats(ctx context.Context, actor *models.User) ([]byte, error) {
	stats, err := s.Stats(ctx, actor)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report Statistics"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total reports", stats.TotalReports},
		{"Pending", stats.PendingReports},
		{"Investigating", stats.InvestigatingReports},
		{"Resolved", stats.ResolvedReports},
		{"Reported in last 7 days", stats.RecentReports},
		{},
		{"Category", "Count"},
	}
	for _, c := range stats.CategoryStats {
		rows = append(rows, []interface{}{c.Key, c.Count})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Priority", "Count"})
	for _, p := range stats.PriorityStats {
		rows = append(rows, []interface{}{p.Key, p.Count})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
