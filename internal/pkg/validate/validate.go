// Package validate wraps go-playground/validator with the tags used by the
// request DTOs: role, weekday and clock.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"tha-drop/internal/domain/availability"
	"tha-drop/internal/domain/user"

	"github.com/go-playground/validator/v10"
)

// ValidationError maps a JSON field name to a readable message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "params"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation %q: %v", tag, err))
		}
	}
	mustRegister("role", validRole)
	mustRegister("weekday", validWeekday)
	mustRegister("clock", validClock)

	return &Validator{validate: v}
}

// Struct validates s and returns *ValidationError for rule failures.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[fieldPath(fe)] = message(fe)
	}
	return &ValidationError{Fields: out}
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "eqfield":
		return fmt.Sprintf("must match %s", fe.Param())
	case "uuid", "uuid4":
		return "must be a valid id"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "role":
		return "must be a valid role"
	case "weekday":
		return "must be a weekday name"
	case "clock":
		return "must be a time in HH:MM format"
	default:
		return fmt.Sprintf("failed on %q", fe.Tag())
	}
}

func validRole(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	if v == "" {
		return true
	}
	return user.Role(strings.ToUpper(v)).Valid()
}

func validWeekday(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	if v == "" {
		return true
	}
	_, ok := user.ParseWeekday(v)
	return ok
}

func validClock(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	if v == "" {
		return true
	}
	_, err := availability.ParseClock(v)
	return err == nil
}
