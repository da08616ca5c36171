package handlers

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/internal/repositories"
	"github.com/SIH-2025/edusafe-service/internal/services"
	"github.com/SIH-2025/edusafe-service/internal/utils"
)

// APIResponse is the uniform envelope every endpoint returns.
type APIResponse struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

func (h *BaseHandler) respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

func (h *BaseHandler) respondCreated(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data, Message: message})
}

func (h *BaseHandler) respondMessage(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Message: message})
}

func (h *BaseHandler) respondError(c *gin.Context, status int, errMsg string, errs []string) {
	c.JSON(status, APIResponse{Success: false, Error: errMsg, Errors: errs})
}

// requireIDParam validates the :id path parameter as a 24-character hex
// identifier. Returns "" after writing the 400 response when invalid.
func (h *BaseHandler) requireIDParam(c *gin.Context, name string) string {
	id := c.Param(name)
	if !models.IsValidID(id) {
		h.respondError(c, http.StatusBadRequest, "Validation failed", []string{"Invalid ID format"})
		return ""
	}
	return id
}

// currentUser returns the authenticated user placed in the context by the
// auth middleware, or nil on public routes.
func (h *BaseHandler) currentUser(c *gin.Context) *models.User {
	if v, exists := c.Get("user"); exists {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// requireUser is currentUser plus a 401 response when missing.
func (h *BaseHandler) requireUser(c *gin.Context) *models.User {
	user := h.currentUser(c)
	if user == nil {
		h.respondError(c, http.StatusUnauthorized, "Authentication required", nil)
	}
	return user
}

// handleServiceError maps service-layer failures onto the error taxonomy.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs services.ValidationErrors
	if errors.As(err, &validationErrs) {
		h.respondError(c, http.StatusBadRequest, "Validation failed", validationErrs.Messages())
		return
	}

	var permErr *services.PermissionError
	if errors.As(err, &permErr) {
		h.respondError(c, http.StatusForbidden, "Access denied", nil)
		return
	}

	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		h.respondError(c, http.StatusNotFound, capitalize(notFoundErr.Resource)+" not found", nil)
		return
	}
	if repositories.IsNotFoundError(err) {
		h.respondError(c, http.StatusNotFound, "Resource not found", nil)
		return
	}

	if isUnavailable(err) {
		h.respondError(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Database connection issue.", nil)
		return
	}

	utils.FromContext(c.Request.Context(), h.logger).Error("Unhandled service error",
		"path", c.FullPath(), "error", err)
	h.respondError(c, http.StatusInternalServerError, "Internal server error", nil)
}

// isUnavailable reports whether the error chain indicates the backing store
// is unreachable.
func isUnavailable(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
