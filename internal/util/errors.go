package util

import "errors"

var (
	ErrForbiddenSQL    = errors.New("query contains a data-modifying statement")
	ErrEmptySQL        = errors.New("no SQL statement could be extracted from the model output")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrNoCompletion    = errors.New("model returned no choices")
)
