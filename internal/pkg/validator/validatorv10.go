package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// Mainland China mobile number: 11 digits, "1" then 3-9.
	reCNPhone  = regexp.MustCompile(`^1[3-9]\d{9}$`)
	reOTPEmail = regexp.MustCompile(`^[\w%+.-]+@[\d.A-Za-z-]+\.[A-Za-z]{2,}$`)
)

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// V10ValidationError is a field-to-message map returned when validation fails.
//
// Keys are field names in snake_case to match typical JSON conventions.
type V10ValidationError map[string]string

// Error implements the error interface.
func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// Values returns the field error map.
func (vs V10ValidationError) Values() map[string]string {
	return vs
}

// NewV10Validator constructs a V10Validator with English translations and custom rules.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	v10CustomValidation(validate, enTrans)

	return &V10Validator{
		validate:   validate,
		translator: enTrans,
	}, nil
}

// Var validates a single value against tag. Failures are keyed "value".
func (v *V10Validator) Var(field any, tag string) error {
	return v.collect(v.validate.Var(field, tag), func(validator.FieldError) string { return "value" })
}

// Validate validates a struct. Failures are keyed by snake_case field name.
func (v *V10Validator) Validate(data any) error {
	return v.collect(v.validate.Struct(data), func(fe validator.FieldError) string { return fieldKey(fe.Field()) })
}

// collect turns validator.ValidationErrors into a translated
// V10ValidationError; other errors (bad input types) pass through.
func (v *V10Validator) collect(err error, key func(validator.FieldError) string) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(V10ValidationError, len(fieldErrs))
	for _, fe := range fieldErrs {
		k := key(fe)
		if _, seen := out[k]; !seen {
			out[k] = fe.Translate(v.translator)
		}
	}
	return out
}

//nolint:errcheck,gosec,forcetypeassert // make linter silent
func v10CustomValidation(validate *validator.Validate, enTrans ut.Translator) {
	registerRegexRule(validate, enTrans, "cnphone", reCNPhone, "{0} must be a valid mobile phone number")
	registerRegexRule(validate, enTrans, "otpemail", reOTPEmail, "{0} must be a valid email address")
}

//nolint:errcheck,gosec,forcetypeassert // make linter silent
func registerRegexRule(validate *validator.Validate, enTrans ut.Translator, tag string, re *regexp.Regexp, text string) {
	validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		return re.MatchString(s)
	})

	validate.RegisterTranslation(tag, enTrans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, false)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, err := ut.T(fe.Tag(), fe.Field())
			if err != nil {
				slog.Warn("warning: error translating", "FieldError", fe, "error", err)
				return fe.(error).Error()
			}

			return t
		},
	)
}
