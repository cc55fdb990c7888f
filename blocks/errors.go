package blocks

import "errors"

var (
	ErrDefinitionNameRequired = errors.New("blocks: definition name is required")
	ErrDefinitionExists       = errors.New("blocks: definition already registered")
	ErrDefinitionUnknown      = errors.New("blocks: definition not registered")
	ErrKindInvalid            = errors.New("blocks: block kind is invalid")
	ErrChoicesRequired        = errors.New("blocks: choice block requires choices")
	ErrChildrenRequired       = errors.New("blocks: container block requires children")
	ErrChildInvalid           = errors.New("blocks: child block reference is invalid")
	ErrStreamMalformed        = errors.New("blocks: stream payload is malformed")
)
