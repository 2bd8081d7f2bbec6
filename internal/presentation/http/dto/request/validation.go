package request

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/sangkips/gymdesk-api/internal/domain/enum"
	"github.com/sangkips/gymdesk-api/pkg/apperror"
)

const (
	clockTag  = "clock"
	clockText = "{0} must be a time in HH:MM format"

	genderTag  = "gender"
	genderText = "{0} must be one of Male, Female, Other"
)

var (
	translator ut.Translator
	setupOnce  sync.Once
	setupErr   error
)

// RegisterValidators installs the custom binding tags and english messages on v.
// Safe to call more than once.
func RegisterValidators(v *validator.Validate) error {
	setupOnce.Do(func() {
		english := en.New()
		translator, _ = ut.New(english, english).GetTranslator("en")

		if setupErr = en_translations.RegisterDefaultTranslations(v, translator); setupErr != nil {
			return
		}

		// report json names instead of Go field names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		if setupErr = v.RegisterValidation(clockTag, clockValidation); setupErr != nil {
			return
		}
		if setupErr = v.RegisterValidation(genderTag, genderValidation); setupErr != nil {
			return
		}
		registerTranslation(v, clockTag, clockText)
		registerTranslation(v, genderTag, genderText)
	})
	return setupErr
}

func registerTranslation(v *validator.Validate, tag, text string) {
	_ = v.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// clockValidation accepts a 24h HH:MM string
func clockValidation(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

func genderValidation(fl validator.FieldLevel) bool {
	return enum.IsGender(fl.Field().String())
}

// FieldErrors converts a binding error into per-field messages.
// It returns nil when err is not a validation failure.
func FieldErrors(err error) []apperror.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Error()
		if translator != nil {
			msg = fe.Translate(translator)
		}
		out = append(out, apperror.FieldError{Field: fieldPath(fe), Message: msg})
	}
	return out
}

// fieldPath drops the top level struct name from the namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
