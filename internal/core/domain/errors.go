package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file type with no registered loader.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrInvalidChunkConfig indicates chunking parameters that cannot
	// terminate (overlap >= chunk size). Rejected before any file is read.
	ErrInvalidChunkConfig = errors.New("invalid chunking configuration")

	// ErrMissingAPIKey indicates no credential is configured for the
	// external LLM/embedding provider. Features requiring it are disabled.
	ErrMissingAPIKey = errors.New("API key not configured")

	// ErrSinkUnavailable indicates the ingestion sink is not configured.
	ErrSinkUnavailable = errors.New("ingestion sink unavailable")

	// ErrResetNotAllowed indicates a destructive reset was requested on a
	// store that is not configured to permit it.
	ErrResetNotAllowed = errors.New("reset not allowed")
)
