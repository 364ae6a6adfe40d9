package tripregistry

import "errors"

var (
	ErrInvalidID     = errors.New("trip record has no id")
	ErrAlreadyExists = errors.New("trip record already exists")
)
