package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// contactEmailPattern is intentionally permissive: a word-ish local part, an
// "@", and a domain ending in a 2-3 letter suffix.
var contactEmailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// Error is a client-correctable input failure. Message is safe to show to
// the caller as-is.
type Error struct {
	Field   string
	Message string
}

func (e Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Messages maps a validator tag to the message reported for it. The "*" key
// is used for tags without an entry.
type Messages map[string]string

// IsContactEmail reports whether value passes the contact form email check.
func IsContactEmail(value string) bool {
	return contactEmailPattern.MatchString(value)
}

// New returns a validator with the site's custom tags registered:
//
//	contactemail  the contact form email pattern
//	imageurl      any image reference except script URLs
//
// Field names in errors use the json tag so they match request payloads.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("contactemail", func(fl validator.FieldLevel) bool {
		return IsContactEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("imageurl", func(fl validator.FieldLevel) bool {
		return ValidateImageURL(fl.Field().String(), fl.FieldName()) == nil
	})
	return v
}

// Check validates s and converts the outcome into an Error. When several
// fields fail, a "required" failure wins so that missing input is reported
// before malformed input.
func Check(v *validator.Validate, s any, messages Messages) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate %T: %w", s, err)
	}

	chosen := fieldErrs[0]
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			chosen = fe
			break
		}
	}

	message, ok := messages[chosen.Tag()]
	if !ok {
		message = messages["*"]
	}
	if message == "" {
		message = fmt.Sprintf("%s failed %s validation", chosen.Field(), chosen.Tag())
	}
	return Error{Field: chosen.Field(), Message: message}
}
