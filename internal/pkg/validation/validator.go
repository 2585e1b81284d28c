package validation

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field (its json name) to a human-readable message.
// A form may be submitted only while it is empty.
type FieldErrors map[string]string

// HasErrors reports whether any field carries a message
func (f FieldErrors) HasErrors() bool {
	for _, msg := range f {
		if msg != "" {
			return true
		}
	}
	return false
}

// Add records a message for field unless one is already present
func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "uniemail", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	mustRegister(v, "uniphone", func(fl validator.FieldLevel) bool {
		return IsValidPhoneNumber(fl.Field().String())
	})
	mustRegister(v, "unipassword", func(fl validator.FieldLevel) bool {
		return IsValidPassword(fl.Field().String())
	})
	// absurl lets empty values through so optional links can use it directly
	mustRegister(v, "absurl", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || IsValidURL(value)
	})
	mustRegister(v, "zipcode", func(fl validator.FieldLevel) bool {
		return IsValidZipCode(fl.Field().String())
	})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: cannot register " + tag + ": " + err.Error())
	}
}

// ValidateStruct runs the struct's `validate` tags and returns the per-field
// messages. A nil or empty map means the form may be submitted.
func ValidateStruct(form interface{}) FieldErrors {
	errs := FieldErrors{}
	err := validate.Struct(form)
	if err == nil {
		return errs
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		errs.Add("form", err.Error())
		return errs
	}

	for _, fe := range validationErrs {
		errs.Add(fe.Field(), formatValidationError(fe))
	}
	return errs
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	label := humanize(e.Field())
	switch e.Tag() {
	case "required", "required_if", "notblank":
		if e.Kind() == reflect.Bool {
			return "You must accept the terms and conditions"
		}
		return label + " is required"
	case "uniemail":
		return "Valid email is required"
	case "uniphone":
		return "Valid phone is required"
	case "unipassword":
		return "Password must be 8+ chars with letters/numbers"
	case "eqfield":
		return "Passwords must match"
	case "absurl":
		return "Invalid " + label
	case "zipcode":
		return "Invalid zip code format (e.g., 12345 or 12345-6789)"
	case "gt", "gte", "min":
		return "Valid " + strings.ToLower(label) + " is required"
	case "datetime":
		return label + " must be a date (YYYY-MM-DD)"
	case "oneof":
		return label + " must be one of: " + e.Param()
	default:
		return label + " validation failed: " + e.Tag()
	}
}

// humanize turns "companyWebsiteURL" into "Company website URL"
func humanize(field string) string {
	if field == "" {
		return "Field"
	}
	runes := []rune(field)
	var b strings.Builder
	for i, r := range runes {
		if i == 0 {
			r = unicode.ToUpper(r)
		} else if unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteRune(' ')
			// keep acronyms such as URL intact
			if i+1 < len(runes) && !unicode.IsUpper(runes[i+1]) {
				r = unicode.ToLower(r)
			}
		}
		b.WriteRune(r)
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		if acronyms[strings.ToLower(w)] {
			words[i] = strings.ToUpper(w)
		}
	}
	return strings.Join(words, " ")
}

var acronyms = map[string]bool{"id": true, "otp": true, "url": true}
