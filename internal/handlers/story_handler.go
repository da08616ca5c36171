package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SIH-2025/edusafe-service/internal/services"
	"github.com/SIH-2025/edusafe-service/internal/utils"
)

type StoryHandler struct {
	BaseHandler
	storyService services.StoryService
}

func NewStoryHandler(storyService services.StoryService, logger utils.Logger) *StoryHandler {
	return &StoryHandler{
		BaseHandler:  NewBaseHandler(logger),
		storyService: storyService,
	}
}

func (h *StoryHandler) ListStories(c *gin.Context) {
	stories, err := h.storyService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, stories)
}

func (h *StoryHandler) CreateStory(c *gin.Context) {
	var req services.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Validation failed", []string{"Invalid request payload"})
		return
	}

	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	story, err := h.storyService.Create(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondCreated(c, story, "Story shared successfully")
}

func (h *StoryHandler) GetStory(c *gin.Context) {
	id := h.requireIDParam(c, "id")
	if id == "" {
		return
	}

	story, err := h.storyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, story)
}

// LikeStory adds the caller's like. Liking twice leaves the count unchanged.
func (h *StoryHandler) LikeStory(c *gin.Context) {
	id := h.requireIDParam(c, "id")
	if id == "" {
		return
	}

	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	result, err := h.storyService.Like(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, result)
}

func (h *StoryHandler) UnlikeStory(c *gin.Context) {
	id := h.requireIDParam(c, "id")
	if id == "" {
		return
	}

	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	result, err := h.storyService.Unlike(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, result)
}

func (h *StoryHandler) GetLikeStatus(c *gin.Context) {
	id := h.requireIDParam(c, "id")
	if id == "" {
		return
	}

	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	result, err := h.storyService.LikeStatus(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, result)
}
