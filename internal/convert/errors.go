package convert

import "errors"

// Domain errors for document conversion.
var (
	ErrInvalidDocument = errors.New("not a valid document package")
	ErrNoContent       = errors.New("document has no readable content")
)
