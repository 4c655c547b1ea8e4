package model

import "errors"

// Sentinel errors for programmatic checking.
var (
	ErrNoTemplatesFound = errors.New("no template files matched the given patterns")
	ErrWriteRace        = errors.New("output file changed on disk during render")
	ErrNoPriorRender    = errors.New("no prior render output to diff against")
)
