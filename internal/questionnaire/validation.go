package questionnaire

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the accepted deadline format.
const DateLayout = "2006-01-02"

// FieldError describes a single invalid or missing answer.
type FieldError struct {
	Field   Field
	Section Section
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newFieldError(spec FieldSpec, format string, args ...interface{}) *FieldError {
	return &FieldError{
		Field:   spec.Field,
		Section: spec.Section,
		Message: fmt.Sprintf(format, args...),
	}
}

// Validate checks every field of the form and returns the problems found, in
// display order. An empty result means the form can be submitted.
func Validate(f Form) []*FieldError {
	return ValidateWith(MustCatalog(), f)
}

// ValidateWith is Validate against an explicit catalog.
func ValidateWith(c *Catalog, f Form) []*FieldError {
	var errs []*FieldError

	for _, spec := range fieldSpecs {
		switch spec.Kind {
		case KindText, KindLongText:
			if spec.Required && strings.TrimSpace(f.Text(spec.Field)) == "" {
				errs = append(errs, newFieldError(spec, "%s is required", spec.Label))
			}

		case KindChoice:
			v := f.Text(spec.Field)
			if v == "" {
				if spec.Required {
					errs = append(errs, newFieldError(spec, "%s is required", spec.Label))
				}
				continue
			}
			if !c.Allows(spec.Field, v) {
				errs = append(errs, newFieldError(spec, "%q is not a valid option", v))
			}

		case KindDate:
			v := f.Text(spec.Field)
			if v == "" {
				if spec.Required {
					errs = append(errs, newFieldError(spec, "%s is required", spec.Label))
				}
				continue
			}
			if _, err := time.Parse(DateLayout, v); err != nil {
				errs = append(errs, newFieldError(spec, "%q is not a date (expected YYYY-MM-DD)", v))
			}

		case KindSet:
			values := f.Values(spec.Field)
			if spec.Required && len(values) == 0 {
				errs = append(errs, newFieldError(spec, "select at least one option"))
				continue
			}
			for _, v := range values {
				if !c.Allows(spec.Field, v) {
					errs = append(errs, newFieldError(spec, "%q is not a valid option", v))
					break
				}
			}

		case KindBool:
			if spec.Required && !f.TermsAgreement {
				errs = append(errs, newFieldError(spec, "you must agree to the design engagement terms"))
			}
		}
	}

	return errs
}

// FirstInvalid returns the first error of a Validate result, or nil when
// there is none. Its Section is where the questionnaire should jump.
func FirstInvalid(errs []*FieldError) *FieldError {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// Summarize joins field errors into one line, for CLI output and HTTP error
// bodies.
func Summarize(errs []*FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}
