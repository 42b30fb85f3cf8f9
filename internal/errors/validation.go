package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

// ValidationErrors is a collection of validation errors
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

func (pe *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", pe.Field, pe.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// NewValidationErrorWithRule creates a new validation error with rule
func NewValidationErrorWithRule(field, message, rule string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
		Rule:    rule,
	}
}

// ToValidationErrors converts validator.ValidationErrors to our custom type.
// An error that already is ValidationErrors is returned as is.
func ToValidationErrors(err error) ValidationErrors {
	var errs ValidationErrors
	if stderrors.As(err, &errs) {
		return errs
	}

	var validatorErr validator.ValidationErrors
	if stderrors.As(err, &validatorErr) {
		for _, fe := range validatorErr {
			errs = append(errs, ValidationError{
				Field:   fe.Field(),
				Message: getErrorMessage(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
	}

	return errs
}

// getErrorMessage returns user-friendly error messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "ltefield":
		return fmt.Sprintf("must not exceed %s", toSnake(err.Param()))
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "dive":
		return "contains an invalid entry"

	// Custom validators
	case "confidence_rating":
		return "must be between 1 and 5"
	case "topic_category":
		return "must be a valid category (DSA, Aptitude, Core, English)"
	case "company_tag":
		return "must be a supported target company"
	case "branch":
		return "must be a valid branch (CSE, IT, ECE, EEE, MECH, CIVIL, OTHER)"
	case "not_future":
		return "must not be in the future"

	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}

// Messages for rules checked outside struct tags
var ruleMessages = map[string]string{
	"study_duration":    "must be between 1 and 720 minutes",
	"graduation_year":   "must be between 2000 and 2100",
	"topic_in_category": "does not belong to the given category",
	"unknown_topic":     "is not a known topic",
	"unknown_mock_test": "is not a known mock test",
	"question_count":    "does not match the mock test's question count",
	"duplicate_email":   "is already used by another profile",
}

// NewRuleError creates a validation error for a named business rule
func NewRuleError(field, rule string, value interface{}) *ValidationError {
	message, ok := ruleMessages[rule]
	if !ok {
		message = fmt.Sprintf("validation failed for rule '%s'", rule)
	}
	return NewValidationErrorWithRule(field, message, rule, value)
}

func toSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
