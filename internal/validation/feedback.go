package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/minjoonc/portfolio-backend/internal/models"
)

var validate = validator.New()

// FeedbackRequest is the inbound payload for both the HTTP POST path and the
// WebSocket chat:send path. Fields are trimmed before the schema rules apply.
type FeedbackRequest struct {
	Slug    string `json:"slug" validate:"required,max=200"`
	Name    string `json:"name,omitempty" validate:"omitempty,max=40"`
	Message string `json:"message" validate:"required,max=1000"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	HP      string `json:"hp,omitempty"`
}

// Result is a normalized, schema-valid feedback submission.
type Result struct {
	Slug    string
	Name    string
	Message string
	Email   string

	// Automated is set when the honeypot field was filled. The submission is
	// still reported as accepted to the client but must never be persisted.
	Automated bool
}

// ValidateFeedback trims, validates and normalizes a feedback payload.
// The honeypot check runs after schema validation: a filled honeypot is not a
// validation error, it silently flags the submission as automated.
func ValidateFeedback(req FeedbackRequest) (Result, error) {
	req.Slug = strings.TrimSpace(req.Slug)
	req.Name = strings.TrimSpace(req.Name)
	req.Message = strings.TrimSpace(req.Message)
	req.Email = strings.TrimSpace(req.Email)

	if err := validate.Struct(req); err != nil {
		return Result{}, formatValidationError(err)
	}

	name := req.Name
	if name == "" {
		name = models.AnonymousName
	}

	return Result{
		Slug:      req.Slug,
		Name:      name,
		Message:   req.Message,
		Email:     req.Email,
		Automated: strings.TrimSpace(req.HP) != "",
	}, nil
}

// formatValidationError flattens validator errors into one readable message.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, formatFieldError(e))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return err
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
