package fields

import "errors"

var (
	// ErrFieldUnresolved indicates an exposed field name matched no computed
	// field, page attribute, or declared field spec. Surfaced at schema
	// build, never at request time.
	ErrFieldUnresolved = errors.New("fields: field cannot be resolved")

	ErrDefinitionRequired = errors.New("fields: page definition is required")
	ErrResolverRequired   = errors.New("fields: resolver is required")
)

// UnresolvedFieldError reports which definition and field failed resolution.
type UnresolvedFieldError struct {
	Definition string
	Field      string
}

func (e *UnresolvedFieldError) Error() string {
	return "fields: " + e.Definition + "." + e.Field +
		" matches no computed field, page attribute, or declared field"
}

func (e *UnresolvedFieldError) Unwrap() error {
	return ErrFieldUnresolved
}
