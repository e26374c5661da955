// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
const (
	// Configuration errors
	ErrConfigInvalid       = "CONFIG_INVALID"
	ErrServerNotConfigured = "SERVER_NOT_CONFIGURED"
	ErrServerNotFound      = "SERVER_NOT_FOUND"

	// Input errors
	ErrInvalidInput  = "INVALID_INPUT"
	ErrDirNotFound   = "DIRECTORY_NOT_FOUND"
	ErrFileNotFound  = "FILE_NOT_FOUND"
	ErrFileReadError = "FILE_READ_ERROR"
	ErrNothingToDo   = "NOTHING_TO_DO"

	// Remote errors
	ErrUploadFailed = "UPLOAD_FAILED"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)
