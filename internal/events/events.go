package events

import (
	"context"
	"time"
)

// Event types published by the service.
const (
	TypeModuleCompleted = "module.completed"
	TypeQuizSubmitted   = "quiz.submitted"
	TypeReportCreated   = "report.created"
	TypeReportResolved  = "report.resolved"
	TypeStoryLiked      = "story.liked"
)

// Event is the envelope carried on the event bus.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// ModuleCompletedEvent is emitted after completion points are awarded.
type ModuleCompletedEvent struct {
	ModuleID      string `json:"module_id"`
	UserID        string `json:"user_id"`
	PointsAwarded int    `json:"points_awarded"`
}

// QuizSubmittedEvent is emitted after a quiz submission is scored.
type QuizSubmittedEvent struct {
	ModuleID      string `json:"module_id"`
	QuizID        string `json:"quiz_id"`
	UserID        string `json:"user_id"`
	Percentage    int    `json:"percentage"`
	Passed        bool   `json:"passed"`
	PointsAwarded int    `json:"points_awarded"`
}

// ReportCreatedEvent is emitted when a new incident report is filed.
type ReportCreatedEvent struct {
	ReportID string `json:"report_id"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}

// ReportResolvedEvent is emitted on the first resolution of a report.
type ReportResolvedEvent struct {
	ReportID   string `json:"report_id"`
	ResolvedBy string `json:"resolved_by"`
}

// StoryLikedEvent is emitted when a story gains a like.
type StoryLikedEvent struct {
	StoryID string `json:"story_id"`
	UserID  string `json:"user_id"`
}

// EventPublisher publishes domain events. Implementations must be safe for
// concurrent use; publish failures are logged, never surfaced to API callers.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
