package apperr

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FromValidator converts validator failures into a validation error listing
// the offending JSON field names. Other errors become a generic bad request.
func FromValidator(err error) *Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Validation("errors.invalid_request")
	}
	fields := make([]string, 0, len(verrs))
	missingOnly := true
	for _, fe := range verrs {
		fields = append(fields, fieldName(fe))
		if fe.Tag() != "required" {
			missingOnly = false
		}
	}
	if missingOnly {
		return Validation("errors.missing_fields", fields...)
	}
	return Validation("errors.invalid_fields", fields...)
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		name = fe.StructField()
	}
	return strings.ToLower(name)
}
