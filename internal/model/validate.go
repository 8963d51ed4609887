package model

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct checks a model value against its declared validation
// tags. Callers run this before dispatching create/update actions so
// invalid payloads never reach the reducer.
func ValidateStruct(v any) error {
	return validate.Struct(v)
}
