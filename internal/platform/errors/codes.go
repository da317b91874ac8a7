// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Configuration errors
	CodeInvalidConfiguration Code = "INVALID_CONFIGURATION"

	// Play errors
	CodeInvalidMove         Code = "INVALID_MOVE"
	CodeUnsupportedStrategy Code = "UNSUPPORTED_STRATEGY_FOR_AUTO_DECISION"
)

// ExitCode maps domain codes to process exit codes for command entrypoints.
func (c Code) ExitCode() int {
	switch c {
	// Usage errors - the caller asked for something invalid
	case CodeInvalidConfiguration,
		CodeInvalidMove:
		return 2

	// Precondition errors - the roster cannot be simulated as given
	case CodeUnsupportedStrategy:
		return 3

	default:
		return 1
	}
}
