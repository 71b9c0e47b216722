package validation

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/eduverse/internal/pkg/apperrors"
)

// Validation rule patterns
var (
	// Course code pattern - department letters, number, optional honors suffix
	CourseCodePattern = `^[A-Z]{2,6}[0-9]{3,4}[A-Z]?$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	CourseCode *regexp.Regexp
}{
	CourseCode: regexp.MustCompile(CourseCodePattern),
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("coursecode", func(fl validator.FieldLevel) bool {
		return CompiledPatterns.CourseCode.MatchString(fl.Field().String())
	})
	return v
}

// IsCourseCode reports whether code is a well formed course code
func IsCourseCode(code string) bool {
	return CompiledPatterns.CourseCode.MatchString(code)
}

// Struct validates v against its `validate` tags. Failures are returned as an
// invalid scope error whose details map each field to a readable message.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	details := make(map[string]interface{}, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = formatFieldError(fe)
	}
	custom := apperrors.NewInvalidScopeError(formatFieldError(fieldErrs[0])).(*apperrors.CustomError)
	return custom.WithDetails(details)
}

// formatFieldError creates a human-readable validation error message
func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "coursecode":
		return e.Field() + " must be a course code such as CS101"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
