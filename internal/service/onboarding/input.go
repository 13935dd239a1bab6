package onboarding

import (
	"errors"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/nonutti-ng/web/internal/domain"
	"github.com/nonutti-ng/web/internal/timezone"
)

// MaxReasonLength caps the free-text motivation.
const MaxReasonLength = 1000

// SubmitInput holds the questionnaire answers.
type SubmitInput struct {
	AgeGroup     domain.AgeGroup      `json:"ageGroup" validate:"required,oneof=18_24 25_34 35_44 45_plus"`
	Gender       domain.Gender        `json:"gender" validate:"required,oneof=male female non_binary prefer_not_to_say"`
	HasDoneState domain.Participation `json:"hasDoneState" validate:"required,oneof=first_time participated_before completed_before"`
	Reason       string               `json:"reason,omitempty"`
	Timezone     string               `json:"timezone,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the answers. Reason and Timezone are checked by hand
// since their rules depend on trimming and zone lookup.
func (i SubmitInput) Validate() error {
	var errs []domain.FieldError

	if err := validate.Struct(i); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = append(errs, domain.FieldError{Field: fe.Field(), Message: message(fe)})
		}
	}

	if utf8.RuneCountInString(strings.TrimSpace(i.Reason)) > MaxReasonLength {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "too long"})
	}

	if tz := strings.TrimSpace(i.Timezone); tz != "" && !timezone.IsValid(tz) {
		errs = append(errs, domain.FieldError{Field: "timezone", Message: "unknown timezone"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "oneof":
		return "must be one of: " + fe.Param()
	}
	return "invalid"
}

// answers converts validated input into the remote payload.
func (i SubmitInput) answers() domain.OnboardingAnswers {
	a := domain.OnboardingAnswers{
		AgeGroup:     i.AgeGroup,
		Gender:       i.Gender,
		HasDoneState: i.HasDoneState,
	}
	if r := strings.TrimSpace(i.Reason); r != "" {
		a.Reason = &r
	}
	return a
}
