package i18n

// Codes mirrored from internal/platform/errors, which imports this package.
const (
	CodeUnknown              = "UNKNOWN"
	CodeInvalidConfiguration = "INVALID_CONFIGURATION"
	CodeInvalidMove          = "INVALID_MOVE"
	CodeUnsupportedStrategy  = "UNSUPPORTED_STRATEGY_FOR_AUTO_DECISION"
)
