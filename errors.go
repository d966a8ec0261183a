package formstream

import "errors"

var (
	ErrFinalized     = errors.New("formstream: form already finalized")
	ErrClosed        = errors.New("formstream: stream closed")
	ErrSourceRead    = errors.New("formstream: part source read failed")
	ErrBoundary      = errors.New("formstream: invalid boundary")
	ErrValidation    = errors.New("formstream: validation failed")
	ErrLimitExceeded = errors.New("formstream: limit exceeded")
)
