package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SIH-2025/edusafe-service/internal/services"
	"github.com/SIH-2025/edusafe-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	userService services.UserService
}

func NewUserHandler(userService services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// GetLeaderboard returns the top students by points with 1-based ranks.
func (h *UserHandler) GetLeaderboard(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 0)

	entries, err := h.userService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, entries)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Validation failed", []string{"Invalid request payload"})
		return
	}

	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondMessage(c, user, "Profile updated successfully")
}
