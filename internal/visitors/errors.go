package visitors

import "errors"

// ErrNoCredits indicates the visitor has no remaining credits; the row is
// left unchanged.
var ErrNoCredits = errors.New("no credits remaining")

// ErrNotFound indicates no credit row exists for the visitor.
var ErrNotFound = errors.New("visitor not found")
