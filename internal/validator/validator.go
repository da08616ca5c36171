package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/SIH-2025/edusafe-service/internal/models"
)

var parentMobilePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// IsValidParentMobile reports whether s looks like a dialable phone number.
func IsValidParentMobile(s string) bool {
	return parentMobilePattern.MatchString(s)
}

// Validator wraps go-playground struct validation plus the EduSafe business
// rules, aggregating every violation instead of stopping at the first.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerBusinessRules()

	return v
}

// ValidationError represents a single violated field rule.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Messages flattens the errors into the human-readable list the API envelope
// carries.
func (ve ValidationErrors) Messages() []string {
	out := make([]string, len(ve))
	for i, e := range ve {
		out[i] = e.Message
	}
	return out
}

// Validate validates a struct and aggregates all violations.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	var errors ValidationErrors

	err := v.validate.Struct(s)
	if err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			errors = append(errors, ValidationError{
				Field:   fe.Field(),
				Message: v.errorMessage(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
	}

	return errors
}

func (v *Validator) registerBusinessRules() {
	v.validate.RegisterValidation("blood_group", func(fl validator.FieldLevel) bool {
		return models.IsValidBloodGroup(fl.Field().String())
	})

	v.validate.RegisterValidation("parent_mobile", func(fl validator.FieldLevel) bool {
		return parentMobilePattern.MatchString(fl.Field().String())
	})

	v.validate.RegisterValidation("object_id", func(fl validator.FieldLevel) bool {
		return models.IsValidID(fl.Field().String())
	})

	v.validate.RegisterValidation("report_category", func(fl validator.FieldLevel) bool {
		return models.IsValidReportCategory(models.ReportCategory(fl.Field().String()))
	})

	v.validate.RegisterValidation("report_priority", func(fl validator.FieldLevel) bool {
		return models.IsValidReportPriority(models.ReportPriority(fl.Field().String()))
	})
}

func (v *Validator) errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "blood_group":
		return "Valid blood group is required"
	case "parent_mobile":
		return "Valid parent mobile is required"
	case "object_id":
		return fmt.Sprintf("%s must be a 24-character hex identifier", fe.Field())
	case "report_category":
		return "Invalid category. Must be one of: Safety, Bullying, Infrastructure, Academic, Behavioral, Other"
	case "report_priority":
		return "Invalid priority. Must be one of: Low, Medium, High, Critical"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
