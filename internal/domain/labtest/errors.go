package labtest

import "errors"

var (
	ErrLabTestNotFound = errors.New("lab test not found")
	ErrInvalidStatus   = errors.New("invalid lab test status")
)
