package engine

import "errors"

var (
	// ErrInvalidConfig is returned by NewLoop for unusable settings
	ErrInvalidConfig = errors.New("invalid loop config")
	// ErrStartup wraps resource acquisition failures; the loop never entered Running
	ErrStartup = errors.New("loop startup failed")
	// ErrCollaborator wraps failures raised by input, update, render or present
	ErrCollaborator = errors.New("loop collaborator failed")
	// ErrState is returned when an operation does not apply to the current lifecycle state
	ErrState = errors.New("invalid loop state")
)
