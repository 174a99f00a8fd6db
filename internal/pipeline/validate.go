package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"go-order-pipeline/internal/model"

	"github.com/go-playground/validator/v10"
)

// LineValidator checks mapped order lines for values downstream stages cannot
// use. It reports; it never drops or edits a line.
type LineValidator struct {
	validate *validator.Validate
}

// NewLineValidator builds a validator for model.OrderLine.
func NewLineValidator() *LineValidator {
	return &LineValidator{validate: validator.New()}
}

// ValidateLine returns one error describing every failing field of l.
func (v *LineValidator) ValidateLine(l *model.OrderLine) error {
	err := v.validate.Struct(l)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var b strings.Builder
	for i, fe := range verrs {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(describeFieldError(fe))
	}
	return errors.New(b.String())
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "numeric":
		return fmt.Sprintf("%s must contain digits only, got %q", fe.Field(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// ValidateLines checks every line and returns the problems found, keyed by the
// index of the line in lines.
func (v *LineValidator) ValidateLines(lines []model.OrderLine) map[int]error {
	problems := make(map[int]error)
	for i := range lines {
		if err := v.ValidateLine(&lines[i]); err != nil {
			problems[i] = err
		}
	}
	return problems
}
