package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SIH-2025/edusafe-service/internal/services"
	"github.com/SIH-2025/edusafe-service/internal/utils"
)

type QuizHandler struct {
	BaseHandler
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		quizService: quizService,
	}
}

// GetQuiz returns the module's quiz with correctness flags stripped.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id := h.requireIDParam(c, "id")
	if id == "" {
		return
	}

	quiz, err := h.quizService.GetForLearner(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, quiz)
}

// GetQuizAdmin returns the full quiz including answers, for staff review.
func (h *QuizHandler) GetQuizAdmin(c *gin.Context) {
	id := h.requireIDParam(c, "id")
	if id == "" {
		return
	}

	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	quiz, err := h.quizService.GetForReview(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, quiz)
}

// AddQuestion appends a question to the module's quiz, creating the quiz on
// first use.
func (h *QuizHandler) AddQuestion(c *gin.Context) {
	id := h.requireIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Validation failed", []string{"Invalid request payload"})
		return
	}

	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	h.LogRequest(c, "Adding quiz question", "module_id", id)

	quiz, err := h.quizService.AddQuestion(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondCreated(c, quiz, "Question added successfully")
}

// SubmitQuiz scores the caller's answers and awards the earned points.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	id := h.requireIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Validation failed", []string{"Invalid request payload"})
		return
	}

	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	result, err := h.quizService.Submit(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondMessage(c, result, "Quiz submitted successfully")
}
