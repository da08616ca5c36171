package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

type LessonType string

const (
	LessonText  LessonType = "text"
	LessonVideo LessonType = "video"
	LessonQuiz  LessonType = "quiz"
)

// Lesson is embedded in its owning Module and has no independent lifecycle.
// The Order field drives display sequencing; ties keep insertion order.
type Lesson struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Type          LessonType `json:"type"`
	Order         int        `json:"order"`
	EstimatedTime int        `json:"estimatedTime"` // minutes
	VideoURL      *string    `json:"videoUrl,omitempty"`

	// Legacy inline quiz questions, superseded by the standalone Quiz.
	Questions []LegacyQuizQuestion `json:"questions,omitempty"`
}

type LegacyQuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type Module struct {
	ID             string                     `json:"id" gorm:"primaryKey;size:24"`
	Title          string                     `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description    string                     `json:"description" gorm:"type:text;not null" validate:"required"`
	Difficulty     Difficulty                 `json:"difficulty" gorm:"not null;size:20;index" validate:"required,oneof=beginner intermediate advanced"`
	Duration       string                     `json:"duration" gorm:"not null;size:50" validate:"required"`
	EstimatedHours float64                    `json:"estimatedHours" gorm:"not null" validate:"required,gt=0"`
	Category       string                     `json:"category" gorm:"size:100;index"`
	Tags           datatypes.JSONSlice[string] `json:"tags"`
	Thumbnail      *string                    `json:"thumbnail,omitempty" gorm:"size:500"`
	IntroVideoURL  *string                    `json:"introVideoUrl,omitempty" gorm:"size:500"`
	IsPublished    bool                       `json:"isPublished" gorm:"not null;default:true;index"`
	IsActive       bool                       `json:"isActive" gorm:"not null;default:true;index"`
	InstructorID   string                     `json:"instructorId" gorm:"not null;size:24;index"`
	Lessons        []Lesson                   `json:"lessons" gorm:"serializer:json;type:jsonb"`
	Notes          *string                    `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Instructor *User `json:"-" gorm:"foreignKey:InstructorID"`

	// Computed (not stored)
	LessonCount        int `json:"lessonCount,omitempty" gorm:"-"`
	TotalEstimatedTime int `json:"totalEstimatedTime,omitempty" gorm:"-"`
}

func (Module) TableName() string {
	return "modules"
}

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = NewID()
	}
	for i := range m.Lessons {
		if m.Lessons[i].ID == "" {
			m.Lessons[i].ID = NewID()
		}
	}
	return nil
}

// ComputeVirtuals fills the derived lesson count and total estimated time.
func (m *Module) ComputeVirtuals() {
	m.LessonCount = len(m.Lessons)
	total := 0
	for _, l := range m.Lessons {
		total += l.EstimatedTime
	}
	m.TotalEstimatedTime = total
}

// CompletionAward is the number of points awarded for completing the module:
// two per lesson, clamped to [5, 50].
func (m *Module) CompletionAward() int {
	award := len(m.Lessons) * 2
	if award < 5 {
		award = 5
	}
	if award > 50 {
		award = 50
	}
	return award
}
