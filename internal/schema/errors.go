package schema

import "errors"

var ErrUnsupportedKeyword = errors.New("schema: unsupported keyword")
