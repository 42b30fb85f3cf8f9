package validator

import (
	"github.com/SAP-F-2025/readiness-service/internal/errors"
	"github.com/SAP-F-2025/readiness-service/internal/readiness"
)

const (
	MinStudyMinutes   = 1
	MaxStudyMinutes   = 720
	MinGraduationYear = 2000
	MaxGraduationYear = 2100
)

// BusinessValidator checks rules that depend on the topic catalog.
type BusinessValidator struct {
	catalog *readiness.Catalog
}

func NewBusinessValidator(catalog *readiness.Catalog) *BusinessValidator {
	return &BusinessValidator{catalog: catalog}
}

// ValidateStudyLog checks that the topic exists in the catalog under category and
// that the duration is within a single day's range.
func (v *BusinessValidator) ValidateStudyLog(topicID, category string, durationMinutes int) ValidationErrors {
	var errs ValidationErrors

	if durationMinutes < MinStudyMinutes || durationMinutes > MaxStudyMinutes {
		errs = append(errs, *errors.NewRuleError("duration_minutes", "study_duration", durationMinutes))
	}

	topic, ok := v.catalog.Topic(topicID)
	if !ok {
		errs = append(errs, *errors.NewRuleError("topic_id", "unknown_topic", topicID))
	} else if topic.Category != category {
		errs = append(errs, *errors.NewRuleError("topic_id", "topic_in_category", topicID))
	}

	return errs
}

// ValidateMockAttempt checks the mock test exists and the question total matches it.
func (v *BusinessValidator) ValidateMockAttempt(mockTestID string, questionsTotal int) (readiness.MockTest, ValidationErrors) {
	test, ok := v.catalog.MockTest(mockTestID)
	if !ok {
		return test, ValidationErrors{*errors.NewRuleError("mock_test_id", "unknown_mock_test", mockTestID)}
	}
	if test.Questions > 0 && questionsTotal != test.Questions {
		return test, ValidationErrors{*errors.NewRuleError("questions_total", "question_count", questionsTotal)}
	}
	return test, nil
}

// ValidateGraduationYear checks the year is in the accepted range.
func (v *BusinessValidator) ValidateGraduationYear(year int) ValidationErrors {
	if year < MinGraduationYear || year > MaxGraduationYear {
		return ValidationErrors{*errors.NewRuleError("graduation_year", "graduation_year", year)}
	}
	return nil
}
