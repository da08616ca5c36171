package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/internal/services"
	"github.com/SIH-2025/edusafe-service/internal/utils"
)

type ModuleHandler struct {
	BaseHandler
	moduleService services.ModuleService
}

func NewModuleHandler(moduleService services.ModuleService, logger utils.Logger) *ModuleHandler {
	return &ModuleHandler{
		BaseHandler:   NewBaseHandler(logger),
		moduleService: moduleService,
	}
}

// ListModules returns the filtered, paginated list of published modules.
func (h *ModuleHandler) ListModules(c *gin.Context) {
	params := services.ListModulesParams{
		Page:      parseIntQuery(c, "page", 1),
		Limit:     parseIntQuery(c, "limit", 0),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	if raw := c.Query("difficulty"); raw != "" {
		difficulty := models.Difficulty(raw)
		if difficulty != models.DifficultyBeginner && difficulty != models.DifficultyIntermediate && difficulty != models.DifficultyAdvanced {
			h.respondError(c, http.StatusBadRequest, "Validation failed", []string{"difficulty must be one of: beginner intermediate advanced"})
			return
		}
		params.Difficulty = &difficulty
	}
	if raw := c.Query("category"); raw != "" {
		params.Category = &raw
	}
	if raw := c.Query("search"); raw != "" {
		params.Search = &raw
	}

	result, err := h.moduleService.List(c.Request.Context(), params)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, result)
}

// GetModule returns one module. Unpublished modules are visible only to
// teachers and admins.
func (h *ModuleHandler) GetModule(c *gin.Context) {
	id := h.requireIDParam(c, "id")
	if id == "" {
		return
	}

	module, err := h.moduleService.GetByID(c.Request.Context(), id, h.currentUser(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, module)
}

func (h *ModuleHandler) CreateModule(c *gin.Context) {
	var req services.CreateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Validation failed", []string{"Invalid request payload"})
		return
	}

	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	h.LogRequest(c, "Creating module", "title", req.Title)

	module, err := h.moduleService.Create(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondCreated(c, module, "Module created successfully")
}

func (h *ModuleHandler) UpdateModule(c *gin.Context) {
	id := h.requireIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.UpdateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Validation failed", []string{"Invalid request payload"})
		return
	}

	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	module, err := h.moduleService.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondMessage(c, module, "Module updated successfully")
}

// GetLessons returns the module's lessons ordered for display.
func (h *ModuleHandler) GetLessons(c *gin.Context) {
	id := h.requireIDParam(c, "id")
	if id == "" {
		return
	}

	lessons, err := h.moduleService.GetLessons(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, lessons)
}

// MarkCompleted awards completion points to the caller.
func (h *ModuleHandler) MarkCompleted(c *gin.Context) {
	id := h.requireIDParam(c, "id")
	if id == "" {
		return
	}

	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	result, err := h.moduleService.MarkCompleted(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondMessage(c, result, "Module marked as completed")
}

// parseIntQuery reads an integer query parameter, falling back on absent or
// malformed values.
func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
