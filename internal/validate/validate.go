// Package validate runs struct-tag validation on request payloads and turns
// failures into a list of field errors keyed by JSON name.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/model"
	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return val
}

// Error lists every invalid field of a payload.
type Error struct {
	Fields []model.FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field builds an Error for a single field.
func Field(field, message string) *Error {
	return &Error{Fields: []model.FieldError{{Field: field, Message: message}}}
}

// Result is either a valid payload or the reasons it is not.
type Result[T any] struct {
	Value T
	Err   *Error
}

// OK reports whether the payload passed validation.
func (r Result[T]) OK() bool { return r.Err == nil }

// Check validates value against its `validate` tags.
func Check[T any](value T) Result[T] {
	err := v.Struct(value)
	if err == nil {
		return Result[T]{Value: value}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result[T]{Value: value, Err: Field("", err.Error())}
	}
	out := &Error{Fields: make([]model.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, model.FieldError{
			Field:   fieldPath(fe),
			Message: message(fe),
		})
	}
	return Result[T]{Value: value, Err: out}
}

// fieldPath drops the top-level struct name: "CreateGroupRequest.groupCode"
// becomes "groupCode", "guestNames[3]" stays as is.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "uuid":
		return "must be a valid id"
	case "url":
		return "must be a valid URL"
	case "hexcolor":
		return "must be a hex colour such as #C9A96E"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
