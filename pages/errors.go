package pages

import (
	"errors"
	"fmt"
)

var (
	ErrDefinitionLabelRequired  = errors.New("pages: definition label is required")
	ErrDefinitionExists         = errors.New("pages: definition already registered")
	ErrDefinitionUnknown        = errors.New("pages: definition not registered")
	ErrFieldNameRequired        = errors.New("pages: field name is required")
	ErrFieldDuplicate           = errors.New("pages: duplicate field name")
	ErrFieldKindInvalid         = errors.New("pages: field kind is invalid")
	ErrChoicesRequired          = errors.New("pages: choice field requires choices")
	ErrComputedResolverRequired = errors.New("pages: computed field requires a resolver")
	ErrPageNotFound             = errors.New("pages: page not found")
	ErrPathRequired             = errors.New("pages: html path is required")
)

// NotFoundError reports a missing page lookup with the key that failed.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.Key == "" {
		return ErrPageNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrPageNotFound.Error(), e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrPageNotFound
}
