package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/SIH-2025/edusafe-service/internal/events"
	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/internal/repositories"
	"github.com/SIH-2025/edusafe-service/internal/validator"
)

type quizService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewQuizService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) QuizService {
	return &quizService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *quizService) AddQuestion(ctx context.Context, moduleID string, req *AddQuestionRequest, actor *models.User) (*models.RedactedQuiz, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}
	if actor.Role != models.RoleTeacher && actor.Role != models.RoleAdmin {
		return nil, NewPermissionError(actor.ID, "quiz", "update", "insufficient role permissions")
	}

	questionType := models.QuestionType(req.Type)
	if questionType == "" {
		questionType = models.SingleChoice
	}
	if err := validateOptionSet(questionType, req.Options); err != nil {
		return nil, err
	}

	// Omitted fields fall back to one point, sixty seconds, medium.
	points := req.Points
	if points <= 0 {
		points = 1
	}
	timeLimit := req.TimeLimit
	if timeLimit <= 0 {
		timeLimit = 60
	}
	difficulty := models.QuestionDifficulty(req.Difficulty)
	if difficulty == "" {
		difficulty = models.QuestionMedium
	}

	var quiz *models.Quiz
	err := s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		module, err := r.Module().GetActiveByID(ctx, moduleID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return &NotFoundError{Resource: "module", ID: moduleID}
			}
			return fmt.Errorf("failed to get module: %w", err)
		}

		quiz, err = r.Quiz().GetByModule(ctx, moduleID)
		if err != nil {
			if !repositories.IsNotFoundError(err) {
				return fmt.Errorf("failed to get quiz: %w", err)
			}
			quiz = &models.Quiz{
				ModuleID:           module.ID,
				Title:              module.Title + " Quiz",
				Description:        "Assessment for " + module.Title,
				TimeLimit:          30,
				PassingScore:       70,
				MaxAttempts:        3,
				ShowCorrectAnswers: true,
				ShowExplanations:   true,
				Category:           module.Category,
				InstructorID:       actor.ID,
				IsPublished:        true,
				IsActive:           true,
			}
			if err := r.Quiz().Create(ctx, quiz); err != nil {
				return fmt.Errorf("failed to create quiz: %w", err)
			}
		}

		question := models.Question{
			ID:          models.NewID(),
			Text:        req.QuestionText,
			Explanation: req.Explanation,
			Points:      points,
			Type:        questionType,
			Order:       len(quiz.Questions) + 1,
			TimeLimit:   timeLimit,
			Difficulty:  difficulty,
		}
		for _, opt := range req.Options {
			question.Options = append(question.Options, models.Option{
				ID:        models.NewID(),
				Text:      opt.Text,
				IsCorrect: opt.IsCorrect,
			})
		}
		quiz.Questions = append(quiz.Questions, question)

		if err := r.Quiz().Update(ctx, quiz); err != nil {
			return fmt.Errorf("failed to save question: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Question added", "module_id", moduleID, "quiz_id", quiz.ID, "questions", len(quiz.Questions))

	return quiz.Redacted(), nil
}

// validateOptionSet enforces the correctness-shape rules per question type.
func validateOptionSet(questionType models.QuestionType, options []validator.OptionInput) error {
	correct := 0
	for _, opt := range options {
		if opt.IsCorrect {
			correct++
		}
	}
	if correct == 0 {
		return NewValidationError("options", "At least one option must be marked correct")
	}
	switch questionType {
	case models.SingleChoice:
		if correct != 1 {
			return NewValidationError("options", "single-choice questions must have exactly one correct option")
		}
	case models.TrueFalse:
		if len(options) != 2 {
			return NewValidationError("options", "true-false questions must have exactly two options")
		}
		if correct != 1 {
			return NewValidationError("options", "true-false questions must have exactly one correct option")
		}
	}
	return nil
}

func (s *quizService) GetForLearner(ctx context.Context, moduleID string) (*models.RedactedQuiz, error) {
	if _, err := s.repo.Module().GetVisibleByID(ctx, moduleID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "module", ID: moduleID}
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	quiz, err := s.repo.Quiz().GetVisibleByModule(ctx, moduleID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "quiz", ID: moduleID}
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	return quiz.Redacted(), nil
}

func (s *quizService) GetForReview(ctx context.Context, moduleID string, actor *models.User) (*models.Quiz, error) {
	if actor.Role != models.RoleTeacher && actor.Role != models.RoleAdmin {
		return nil, NewPermissionError(actor.ID, "quiz", "review", "insufficient role permissions")
	}

	quiz, err := s.repo.Quiz().GetByModule(ctx, moduleID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "quiz", ID: moduleID}
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	quiz.ComputeVirtuals()
	return quiz, nil
}

func (s *quizService) Submit(ctx context.Context, moduleID string, req *SubmitQuizRequest, actor *models.User) (*QuizSubmissionResult, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.Module().GetVisibleByID(ctx, moduleID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "module", ID: moduleID}
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	quiz, err := s.repo.Quiz().GetVisibleByModule(ctx, moduleID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "quiz", ID: moduleID}
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	result := scoreSubmission(quiz, req.Answers)

	if result.PointsAwarded > 0 {
		newTotal, err := s.repo.User().AwardPoints(ctx, actor.ID, result.PointsAwarded)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, &NotFoundError{Resource: "user", ID: actor.ID}
			}
			return nil, fmt.Errorf("failed to award quiz points: %w", err)
		}
		result.UserTotalPoints = newTotal
	} else {
		result.UserTotalPoints = actor.Points
	}

	s.logger.Info("Quiz submitted",
		"module_id", moduleID,
		"quiz_id", quiz.ID,
		"user_id", actor.ID,
		"percentage", result.Percentage,
		"passed", result.Passed)

	if err := s.publisher.Publish(ctx, events.Event{
		Type: events.TypeQuizSubmitted,
		Data: events.QuizSubmittedEvent{
			ModuleID:      moduleID,
			QuizID:        quiz.ID,
			UserID:        actor.ID,
			Percentage:    result.Percentage,
			Passed:        result.Passed,
			PointsAwarded: result.PointsAwarded,
		},
	}); err != nil {
		s.logger.Error("Failed to publish quiz submission event", "error", err)
	}

	return result, nil
}

// scoreSubmission grades a set of answers against the quiz. Unknown question
// or option ids score zero rather than failing the submission. Points are
// banked only on a passing submission.
func scoreSubmission(quiz *models.Quiz, answers []AnswerInput) *QuizSubmissionResult {
	result := &QuizSubmissionResult{
		TotalQuestions: len(quiz.Questions),
		TotalPoints:    quiz.SumPoints(),
		Detailed:       make([]AnswerResult, 0, len(answers)),
	}

	for _, answer := range answers {
		detail := AnswerResult{QuestionID: answer.QuestionID, PointsPossible: 1}

		if question := quiz.Question(answer.QuestionID); question != nil {
			detail.PointsPossible = question.PointsOrDefault()
			if option := question.Option(answer.OptionID); option != nil && option.IsCorrect {
				detail.Correct = true
				detail.PointsAwarded = detail.PointsPossible
			}
		}

		if detail.Correct {
			result.CorrectCount++
			result.ScorePoints += detail.PointsAwarded
		}
		result.Detailed = append(result.Detailed, detail)
	}

	if result.TotalPoints > 0 {
		result.Percentage = int(math.Round(float64(result.ScorePoints) / float64(result.TotalPoints) * 100))
	}
	result.Passed = result.Percentage >= quiz.PassingScore
	if result.Passed {
		result.PointsAwarded = result.ScorePoints
	}

	return result
}
