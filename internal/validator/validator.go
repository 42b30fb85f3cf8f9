package validator

import (
	"reflect"
	"strings"
	"time"

	apperrors "github.com/SAP-F-2025/readiness-service/internal/errors"
	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/readiness"
	"github.com/go-playground/validator/v10"
)

// KnownCompanies are the target companies offered during onboarding.
var KnownCompanies = []string{
	"TCS", "Infosys", "Wipro", "Cognizant", "Accenture", "HCL",
	"Tech Mahindra", "Capgemini", "Amazon", "Microsoft", "Google", "Other Service Companies",
}

type (
	ValidationError  = apperrors.ValidationError
	ValidationErrors = apperrors.ValidationErrors
)

// ToValidationErrors maps validator field errors onto json-named ValidationErrors.
func ToValidationErrors(err error) ValidationErrors {
	return apperrors.ToValidationErrors(err)
}

// Validator is the main validator instance that combines all validation types
type Validator struct {
	structValidator   *validator.Validate
	businessValidator *BusinessValidator
}

// New creates a new centralized validator instance
func New(catalog *readiness.Catalog) *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		businessValidator: NewBusinessValidator(catalog),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates struct tags and converts failures to ValidationErrors
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Business returns the business validator
func (v *Validator) Business() *BusinessValidator {
	return v.businessValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("confidence_rating", validateConfidenceRating)
	validate.RegisterValidation("topic_category", validateTopicCategory)
	validate.RegisterValidation("company_tag", validateCompanyTag)
	validate.RegisterValidation("branch", validateBranch)
	validate.RegisterValidation("not_future", validateNotFuture)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateConfidenceRating(fl validator.FieldLevel) bool {
	rating := fl.Field().Int()
	return rating >= 1 && rating <= 5
}

func validateTopicCategory(fl validator.FieldLevel) bool {
	validCategories := []models.TopicCategory{
		models.CategoryDSA,
		models.CategoryAptitude,
		models.CategoryCore,
		models.CategoryEnglish,
	}

	value := fl.Field().String()
	for _, category := range validCategories {
		if string(category) == value {
			return true
		}
	}
	return false
}

func validateCompanyTag(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, company := range KnownCompanies {
		if company == value {
			return true
		}
	}
	return false
}

func validateBranch(fl validator.FieldLevel) bool {
	validBranches := []models.Branch{
		models.BranchCSE,
		models.BranchIT,
		models.BranchECE,
		models.BranchEEE,
		models.BranchMech,
		models.BranchCivil,
		models.BranchOther,
	}

	value := fl.Field().String()
	for _, branch := range validBranches {
		if string(branch) == value {
			return true
		}
	}
	return false
}

// validateNotFuture accepts a zero time; pair with required when the field is mandatory.
func validateNotFuture(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	ts, ok := field.Interface().(time.Time)
	if !ok {
		return false
	}
	return ts.IsZero() || !ts.After(time.Now().Add(time.Minute))
}
