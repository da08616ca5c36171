package validator

// Request DTOs shared between the handlers and the services.

type CreateModuleRequest struct {
	Title          string   `json:"title" validate:"required,min=1,max=200"`
	Description    string   `json:"description" validate:"required"`
	Difficulty     string   `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	Duration       string   `json:"duration" validate:"required"`
	EstimatedHours float64  `json:"estimatedHours" validate:"required,gt=0"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	Thumbnail      *string  `json:"thumbnail"`
	IntroVideoURL  *string  `json:"introVideoUrl"`
	IsPublished    *bool    `json:"isPublished"`
	IsActive       *bool    `json:"isActive"`
	Notes          *string  `json:"notes"`
	Lessons        []LessonInput `json:"lessons"`
}

type LessonInput struct {
	Title         string  `json:"title" validate:"required"`
	Content       string  `json:"content"`
	Type          string  `json:"type" validate:"omitempty,oneof=text video quiz"`
	Order         int     `json:"order"`
	EstimatedTime int     `json:"estimatedTime"`
	VideoURL      *string `json:"videoUrl"`
}

// UpdateModuleRequest carries the allow-listed updatable fields. Absent
// fields are left untouched; unknown fields are ignored by construction.
type UpdateModuleRequest struct {
	Title          *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Description    *string  `json:"description"`
	Difficulty     *string  `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Duration       *string  `json:"duration"`
	EstimatedHours *float64 `json:"estimatedHours" validate:"omitempty,gt=0"`
	Category       *string  `json:"category"`
	Tags           []string `json:"tags"`
	Thumbnail      *string  `json:"thumbnail"`
	IntroVideoURL  *string  `json:"introVideoUrl"`
	IsPublished    *bool    `json:"isPublished"`
	IsActive       *bool    `json:"isActive"`
	Notes          *string  `json:"notes"`
}

type OptionInput struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type AddQuestionRequest struct {
	QuestionText string        `json:"questionText" validate:"required"`
	Options      []OptionInput `json:"options" validate:"required,min=2,dive"`
	Explanation  string        `json:"explanation"`
	Points       int           `json:"points"`
	Type         string        `json:"type" validate:"omitempty,oneof=single-choice multiple-choice true-false"`
	TimeLimit    int           `json:"timeLimit"`
	Difficulty   string        `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

type AnswerInput struct {
	QuestionID string `json:"questionId" validate:"required"`
	OptionID   string `json:"optionId" validate:"required"`
}

type SubmitQuizRequest struct {
	Answers []AnswerInput `json:"answers" validate:"required,min=1,dive"`
}

type CreateReportRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Category    string   `json:"category" validate:"required,report_category"`
	Priority    string   `json:"priority" validate:"omitempty,report_priority"`
	Tags        []string `json:"tags"`
	IsAnonymous bool     `json:"isAnonymous"`
	IsPublic    bool     `json:"isPublic"`
	GeoLat      *float64 `json:"geoLat"`
	GeoLng      *float64 `json:"geoLng"`
	GeoAccuracy *float64 `json:"geoAccuracy"`
}

type ResolveReportRequest struct {
	Description string `json:"description"`
}

type UpdateProfileRequest struct {
	Username     *string `json:"username"`
	Age          *int    `json:"age"`
	BloodGroup   *string `json:"bloodGroup"`
	ParentMobile *string `json:"parentMobile"`
	DateOfBirth  *string `json:"dateOfBirth"`
	ProfilePhoto *string `json:"profilePhoto"`
}

type CreateStoryRequest struct {
	Title   string   `json:"title" validate:"required,min=1,max=200"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
	Image   *string  `json:"image"`
}

type ChatMessageRequest struct {
	Message string `json:"message" validate:"required"`
}
