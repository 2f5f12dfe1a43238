package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/canstudy/tracker/internal/currency"
	"github.com/canstudy/tracker/internal/model"
	"github.com/canstudy/tracker/internal/timeline"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags
	notBlankTag   = "notblank"
	seasonTag     = "season"
	degreeTypeTag = "degree_type"
	currencyTag   = "currency"
	emailTag      = "email_address"
	personNameTag = "person_name"
)

// Error carries per-field messages keyed by JSON field name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func init() {
	Validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = Validate.RegisterValidation(seasonTag, stringValidation(timeline.IsSeason))
	_ = Validate.RegisterValidation(degreeTypeTag, stringValidation(model.IsDegreeType))
	_ = Validate.RegisterValidation(currencyTag, stringValidation(currency.IsSupported))

	_ = Validate.RegisterValidation(emailTag, checkValidation(ValidateEmail))
	_ = Validate.RegisterValidation(personNameTag, checkValidation(ValidateName))

	registerCustomValidationsTranslations(notBlankTag, seasonTag, degreeTypeTag, currencyTag, emailTag, personNameTag)
}

// Struct validates a request DTO. Field failures come back as *Error.
func Struct(s any) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}

	fields := make(map[string]string, len(vErrs))
	for _, vErr := range vErrs {
		fields[vErr.Field()] = vErr.Translate(Translator)
	}
	return &Error{Fields: fields}
}

// Field wraps a single message in an *Error for checks that happen outside struct tags.
func Field(name string, err error) error {
	return &Error{Fields: map[string]string{name: err.Error()}}
}

// registerCustomValidationsTranslations registers error messages for custom tags.
// The default translations are already registered, so a noop register func is passed.
func registerCustomValidationsTranslations(tags ...string) {
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range tags {
		_ = Validate.RegisterTranslation(tag, Translator, registerFn, translateCustomValidationErrs)
	}
}

func translateCustomValidationErrs(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return "this field cannot be blank"
	case seasonTag:
		return "must be one of september, january, may"
	case degreeTypeTag:
		return "must be one of undergrad, masters, phd"
	case currencyTag:
		return "unsupported currency"
	case emailTag:
		return checkMessage(ValidateEmail, fe)
	case personNameTag:
		return checkMessage(ValidateName, fe)
	default:
		return ""
	}
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// checkValidation adapts a func returning a descriptive error into a tag.
func checkValidation(check func(string) error) validator.Func {
	return func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		return ok && check(str) == nil
	}
}

func checkMessage(check func(string) error, fe validator.FieldError) string {
	var value string
	switch v := fe.Value().(type) {
	case string:
		value = v
	case *string:
		if v != nil {
			value = *v
		}
	}
	if err := check(value); err != nil {
		return err.Error()
	}
	return "is invalid"
}

func stringValidation(allowed func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		return ok && allowed(str)
	}
}
