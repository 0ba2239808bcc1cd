package analyses

import "errors"

var (
	// ErrInsufficientText means extraction produced less than the minimum
	// meaningful length; nothing is classified or persisted.
	ErrInsufficientText = errors.New("could not extract sufficient text from the file")
	// ErrDetection wraps classifier failures; nothing is persisted.
	ErrDetection = errors.New("classification failed")
)
