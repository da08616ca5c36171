package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SIH-2025/edusafe-service/internal/services"
	"github.com/SIH-2025/edusafe-service/internal/utils"
)

type ChatbotHandler struct {
	BaseHandler
	chatbotService services.ChatbotService
}

func NewChatbotHandler(chatbotService services.ChatbotService, logger utils.Logger) *ChatbotHandler {
	return &ChatbotHandler{
		BaseHandler:    NewBaseHandler(logger),
		chatbotService: chatbotService,
	}
}

// SendMessage answers a chat message from the rule table.
func (h *ChatbotHandler) SendMessage(c *gin.Context) {
	var req services.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		h.respondError(c, http.StatusBadRequest, "Validation failed", []string{"Message is required"})
		return
	}

	h.respondOK(c, h.chatbotService.Reply(c.Request.Context(), req.Message))
}

// GetQuickQuestions lists the canned prompts clients can offer.
func (h *ChatbotHandler) GetQuickQuestions(c *gin.Context) {
	h.respondOK(c, h.chatbotService.QuickQuestions())
}
