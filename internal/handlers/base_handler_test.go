package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/SIH-2025/edusafe-service/internal/repositories"
	"github.com/SIH-2025/edusafe-service/internal/services"
	"github.com/SIH-2025/edusafe-service/internal/utils"
	"github.com/SIH-2025/edusafe-service/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestBaseHandler() BaseHandler {
	return NewBaseHandler(utils.NewSlogLogger(testSlog()))
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not a valid envelope: %v (%s)", err, w.Body.String())
	}
	return resp
}

func TestRequireIDParam(t *testing.T) {
	h := newTestBaseHandler()

	tests := []struct {
		name    string
		id      string
		wantID  string
		want400 bool
	}{
		{name: "valid hex id", id: "507f1f77bcf86cd799439011", wantID: "507f1f77bcf86cd799439011"},
		{name: "too short", id: "abc", want400: true},
		{name: "non-hex", id: "507f1f77bcf86cd79943901z", want400: true},
		{name: "empty", id: "", want400: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Params = gin.Params{{Key: "id", Value: tt.id}}

			got := h.requireIDParam(c, "id")

			if got != tt.wantID {
				t.Errorf("requireIDParam() = %q, want %q", got, tt.wantID)
			}
			if tt.want400 {
				if w.Code != http.StatusBadRequest {
					t.Errorf("status = %d, want 400", w.Code)
				}
				resp := decodeEnvelope(t, w)
				if resp.Success || resp.Error != "Validation failed" {
					t.Errorf("envelope = %+v", resp)
				}
				if len(resp.Errors) != 1 || resp.Errors[0] != "Invalid ID format" {
					t.Errorf("Errors = %v, want [Invalid ID format]", resp.Errors)
				}
			}
		})
	}
}

func TestHandleServiceError(t *testing.T) {
	h := newTestBaseHandler()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantErrors []string
	}{
		{
			name:       "validation errors aggregate",
			err:        services.ValidationErrors{{Field: "title", Message: "title is required"}, {Field: "age", Message: "Valid age is required"}},
			wantStatus: http.StatusBadRequest,
			wantError:  "Validation failed",
			wantErrors: []string{"title is required", "Valid age is required"},
		},
		{
			name:       "permission error",
			err:        services.NewPermissionError("u1", "report", "read", "not reporter"),
			wantStatus: http.StatusForbidden,
			wantError:  "Access denied",
		},
		{
			name:       "typed not found capitalizes resource",
			err:        &services.NotFoundError{Resource: "module", ID: "x"},
			wantStatus: http.StatusNotFound,
			wantError:  "Module not found",
		},
		{
			name:       "repository not found",
			err:        repositories.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "Resource not found",
		},
		{
			name:       "database unreachable",
			err:        &net.OpError{Op: "dial", Err: errors.New("connection refused")},
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "Service temporarily unavailable. Database connection issue.",
		},
		{
			name:       "wrapped network error",
			err:        errors.Join(errors.New("query failed"), &net.OpError{Op: "read", Err: errors.New("reset")}),
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "Service temporarily unavailable. Database connection issue.",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal server error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.handleServiceError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			resp := decodeEnvelope(t, w)
			if resp.Success {
				t.Error("Success = true on error response")
			}
			if resp.Error != tt.wantError {
				t.Errorf("Error = %q, want %q", resp.Error, tt.wantError)
			}
			if len(tt.wantErrors) > 0 {
				if len(resp.Errors) != len(tt.wantErrors) {
					t.Fatalf("Errors = %v, want %v", resp.Errors, tt.wantErrors)
				}
				for i := range tt.wantErrors {
					if resp.Errors[i] != tt.wantErrors[i] {
						t.Errorf("Errors[%d] = %q, want %q", i, resp.Errors[i], tt.wantErrors[i])
					}
				}
			}
		})
	}
}

func TestHandleServiceErrorValidatorAlias(t *testing.T) {
	h := newTestBaseHandler()

	// Errors produced directly by the validator package carry the same type.
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.handleServiceError(c, validator.ValidationErrors{{Field: "x", Message: "x is required"}})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRespondHelpers(t *testing.T) {
	h := newTestBaseHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	h.respondCreated(c, map[string]string{"id": "x"}, "Created")

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if !resp.Success || resp.Message != "Created" || resp.Data == nil {
		t.Errorf("envelope = %+v", resp)
	}
}
