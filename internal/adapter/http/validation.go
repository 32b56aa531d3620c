package http

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var (
	reName   = regexp.MustCompile(`^[a-zA-Z]+$`)
	reSeries = regexp.MustCompile(`^\d{4}$`)
	reNumber = regexp.MustCompile(`^\d{6}$`)
	reSes    = regexp.MustCompile(`^\d{6}$`)
)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// latin letters only, as the loan request fields are transliterated
	_ = v.RegisterValidation("name", func(fl validator.FieldLevel) bool {
		return reName.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("passport_series", func(fl validator.FieldLevel) bool {
		return reSeries.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("passport_number", func(fl validator.FieldLevel) bool {
		return reNumber.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("ses_code", func(fl validator.FieldLevel) bool {
		return reSes.MatchString(fl.Field().String())
	})
	// applicant must be an adult at submission time
	_ = v.RegisterValidation("adult", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok || t.IsZero() {
			return false
		}
		return !t.AddDate(18, 0, 0).After(time.Now())
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "name":
			out = append(out, FieldError{Field: field, Message: "must contain latin letters only"})
		case "passport_series":
			out = append(out, FieldError{Field: field, Message: "must be exactly 4 digits"})
		case "passport_number":
			out = append(out, FieldError{Field: field, Message: "must be exactly 6 digits"})
		case "ses_code":
			out = append(out, FieldError{Field: field, Message: "must be exactly 6 digits"})
		case "adult":
			out = append(out, FieldError{Field: field, Message: "applicant must be at least 18 years old"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must be at least " + e.Param()})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
