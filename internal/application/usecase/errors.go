package usecase

import "errors"

// ErrValidation marks malformed or missing input to an HTTP-facing
// operation. The presentation layer maps it to a 400 response. Wrap it with
// a human-readable message: fmt.Errorf("%w: missing msme_id", ErrValidation).
var ErrValidation = errors.New("validation failed")
