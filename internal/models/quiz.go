package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	SingleChoice   QuestionType = "single-choice"
	MultipleChoice QuestionType = "multiple-choice"
	TrueFalse      QuestionType = "true-false"
)

type QuestionDifficulty string

const (
	QuestionEasy   QuestionDifficulty = "easy"
	QuestionMedium QuestionDifficulty = "medium"
	QuestionHard   QuestionDifficulty = "hard"
)

// Option is embedded in its owning Question. IsCorrect is redacted at the
// projection boundary for learner-facing reads.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question is embedded in its owning Quiz, append-only with a display order.
type Question struct {
	ID          string             `json:"id"`
	Text        string             `json:"questionText"`
	Options     []Option           `json:"options"`
	Explanation string             `json:"explanation"`
	Points      int                `json:"points"`
	Type        QuestionType       `json:"type"`
	Order       int                `json:"order"`
	TimeLimit   int                `json:"timeLimit"` // seconds
	Difficulty  QuestionDifficulty `json:"difficulty"`
}

// PointsOrDefault mirrors the legacy behavior of treating missing or
// non-positive point values as one point.
func (q *Question) PointsOrDefault() int {
	if q.Points <= 0 {
		return 1
	}
	return q.Points
}

// Option returns the embedded option with the given id, or nil.
func (q *Question) Option(id string) *Option {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i]
		}
	}
	return nil
}

// Quiz is the single assessment bound one-to-one to a module.
type Quiz struct {
	ID                 string                      `json:"id" gorm:"primaryKey;size:24"`
	ModuleID           string                      `json:"moduleId" gorm:"not null;size:24;uniqueIndex"`
	Title              string                      `json:"title" gorm:"not null;size:200"`
	Description        string                      `json:"description" gorm:"type:text"`
	Questions          []Question                  `json:"questions" gorm:"serializer:json;type:jsonb"`
	TimeLimit          int                         `json:"timeLimit" gorm:"not null;default:30"` // minutes
	PassingScore       int                         `json:"passingScore" gorm:"not null;default:70"`
	MaxAttempts        int                         `json:"maxAttempts" gorm:"not null;default:3"`
	ShowCorrectAnswers bool                        `json:"showCorrectAnswers" gorm:"not null;default:true"`
	ShowExplanations   bool                        `json:"showExplanations" gorm:"not null;default:true"`
	RandomizeQuestions bool                        `json:"randomizeQuestions" gorm:"not null;default:false"`
	RandomizeOptions   bool                        `json:"randomizeOptions" gorm:"not null;default:false"`
	Tags               datatypes.JSONSlice[string] `json:"tags"`
	Category           string                      `json:"category" gorm:"size:100"`
	InstructorID       string                      `json:"instructorId" gorm:"not null;size:24;index"`
	IsPublished        bool                        `json:"isPublished" gorm:"not null;default:true"`
	IsActive           bool                        `json:"isActive" gorm:"not null;default:true"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Computed (not stored)
	QuestionCount int `json:"questionCount,omitempty" gorm:"-"`
	TotalPoints   int `json:"totalPoints,omitempty" gorm:"-"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = NewID()
	}
	return nil
}

// Question returns the embedded question with the given id, or nil.
func (q *Quiz) Question(id string) *Question {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i]
		}
	}
	return nil
}

// SumPoints totals the point values of every question in the quiz.
func (q *Quiz) SumPoints() int {
	total := 0
	for i := range q.Questions {
		total += q.Questions[i].PointsOrDefault()
	}
	return total
}

// ComputeVirtuals fills the derived question count and total points.
func (q *Quiz) ComputeVirtuals() {
	q.QuestionCount = len(q.Questions)
	q.TotalPoints = q.SumPoints()
}

// RedactedOption is a learner-facing option projection. The correctness flag
// is absent from the type itself, so redacted payloads cannot carry it in any
// form.
type RedactedOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type RedactedQuestion struct {
	ID          string             `json:"id"`
	Text        string             `json:"questionText"`
	Options     []RedactedOption   `json:"options"`
	Explanation string             `json:"explanation"`
	Points      int                `json:"points"`
	Type        QuestionType       `json:"type"`
	Order       int                `json:"order"`
	TimeLimit   int                `json:"timeLimit"`
	Difficulty  QuestionDifficulty `json:"difficulty"`
}

// RedactedQuiz mirrors Quiz with correctness flags stripped.
type RedactedQuiz struct {
	ID                 string             `json:"id"`
	ModuleID           string             `json:"moduleId"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	Questions          []RedactedQuestion `json:"questions"`
	TimeLimit          int                `json:"timeLimit"`
	PassingScore       int                `json:"passingScore"`
	MaxAttempts        int                `json:"maxAttempts"`
	ShowCorrectAnswers bool               `json:"showCorrectAnswers"`
	ShowExplanations   bool               `json:"showExplanations"`
	RandomizeQuestions bool               `json:"randomizeQuestions"`
	RandomizeOptions   bool               `json:"randomizeOptions"`
	Tags               []string           `json:"tags"`
	Category           string             `json:"category"`
	QuestionCount      int                `json:"questionCount"`
	TotalPoints        int                `json:"totalPoints"`
}

// Redacted projects the quiz for learner-facing reads, removing every
// option's correctness flag at the projection boundary.
func (q *Quiz) Redacted() *RedactedQuiz {
	out := &RedactedQuiz{
		ID:                 q.ID,
		ModuleID:           q.ModuleID,
		Title:              q.Title,
		Description:        q.Description,
		TimeLimit:          q.TimeLimit,
		PassingScore:       q.PassingScore,
		MaxAttempts:        q.MaxAttempts,
		ShowCorrectAnswers: q.ShowCorrectAnswers,
		ShowExplanations:   q.ShowExplanations,
		RandomizeQuestions: q.RandomizeQuestions,
		RandomizeOptions:   q.RandomizeOptions,
		Tags:               q.Tags,
		Category:           q.Category,
		QuestionCount:      len(q.Questions),
		TotalPoints:        q.SumPoints(),
	}
	out.Questions = make([]RedactedQuestion, len(q.Questions))
	for i, question := range q.Questions {
		rq := RedactedQuestion{
			ID:          question.ID,
			Text:        question.Text,
			Explanation: question.Explanation,
			Points:      question.Points,
			Type:        question.Type,
			Order:       question.Order,
			TimeLimit:   question.TimeLimit,
			Difficulty:  question.Difficulty,
		}
		rq.Options = make([]RedactedOption, len(question.Options))
		for j, opt := range question.Options {
			rq.Options[j] = RedactedOption{ID: opt.ID, Text: opt.Text}
		}
		out.Questions[i] = rq
	}
	return out
}
