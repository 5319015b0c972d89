package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON decodes and validates the request body. On failure it writes the error
// response itself and returns false; validator violations are reported all at once,
// one entry per field, under the field's JSON name.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err == nil {
		return true
	}

	var validatorErrs validator.ValidationErrors

	if errors.As(err, &validatorErrs) {
		rootType := baseStructType(out)
		fields := make([]FieldError, 0, len(validatorErrs))

		for _, fieldErr := range validatorErrs {
			name := jsonFieldName(rootType, fieldErr.StructField())

			fields = append(fields, FieldError{
				Field:   name,
				Message: validationMessage(name, fieldErr.Tag(), fieldErr.Param()),
			})
		}

		RespondValidationFailed(ctx, fields)
		return false
	}

	// bad syntax, wrong types, empty body
	RespondBadRequest(ctx, "Invalid request body")
	return false
}

func baseStructType(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t != nil && t.Kind() == reflect.Struct {
		return t
	}

	return nil
}

func jsonFieldName(rootType reflect.Type, structField string) string {
	if rootType == nil {
		return structField
	}

	sf, ok := rootType.FieldByName(structField)

	if !ok {
		return structField
	}

	tag := sf.Tag.Get("json")

	name, _, _ := strings.Cut(tag, ",")

	if name == "" || name == "-" {
		return structField
	}

	return name
}

// validationMessage keeps the copy the submission form has always shown for its
// known fields, with rule-derived fallbacks for anything else.
func validationMessage(field, rule, param string) string {
	switch field {
	case "fullName":
		return "Full name must be at least 2 characters"
	case "email":
		return "Invalid email address"
	case "event":
		return "Event selection is required"
	case "experienceLevel":
		return "Experience level is required"
	}

	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	default:
		return "failed " + rule + " validation"
	}
}
