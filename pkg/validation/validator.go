package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/ticket-connection/pkg/util/errorutil"
)

var (
	phoneRe = regexp.MustCompile(`^\+?[0-9\s\-()]{5,20}$`)
	innRe   = regexp.MustCompile(`^(\d{10}|\d{12})$`)
	kppRe   = regexp.MustCompile(`^\d{4}[\dA-Z]{2}\d{3}$`)
)

// Validator wraps go-playground/validator with the project's rules.
type Validator struct {
	validate *validator.Validate
}

// New builds a validator with null-type support and custom rules.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	registerNullTypes(v)
	if err := registerRules(v); err != nil {
		panic("validation: register rules: " + err.Error())
	}
	return &Validator{validate: v}
}

// RegisterStructValidation exposes struct-level rules to callers.
func (v *Validator) RegisterStructValidation(fn validator.StructLevelFunc, types ...any) {
	v.validate.RegisterStructValidation(fn, types...)
}

// Struct validates s and reports failures as a DataNotValid error whose
// details map field paths to the failing rule.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewDataNotValid("invalid payload", nil)
	}
	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[trimRoot(fe.Namespace())] = fe.Tag()
	}
	return apperrors.NewDataNotValid("validation failed", details)
}

func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.String); ok && val.Valid {
			return val.String
		}
		return nil
	}, null.String{})
}

func registerRules(v *validator.Validate) error {
	rules := map[string]*regexp.Regexp{
		"phone": phoneRe,
		"inn":   innRe,
		"kpp":   kppRe,
	}
	for tag, re := range rules {
		re := re
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}); err != nil {
			return err
		}
	}
	return nil
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func trimRoot(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
