package models

import "errors"

// Pipeline error kinds. Every failure surfaced by the orchestrator wraps
// exactly one of these so callers can match with errors.Is.
var (
	// ErrInvalidArgument: required input missing, empty or malformed.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPreconditionFailed: a stage ran before its upstream artifact exists.
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrUnauthorized: caller is not the project owner.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound: referenced project or task does not exist.
	ErrNotFound = errors.New("not found")
	// ErrGenerationFailed: the generation backend errored or returned an
	// unusable result. Safe to retry, a stage re-run overwrites its own field.
	ErrGenerationFailed = errors.New("generation failed")
	// ErrWriteConflict: the store detected a conflicting concurrent write.
	ErrWriteConflict = errors.New("write conflict")
)
