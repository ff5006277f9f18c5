package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// External service errors
	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeServiceUnavailable:   "Service temporarily unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal server error",
	CodeUnknownError:  "An unknown error occurred",

	// Input validation
	CodeInvalidAddress:   "Provide a valid contract address",
	CodeUnsupportedChain: "Unsupported or missing chain",
	CodeTokenNotFound:    "Token not found",
	CodeNoPriceData:      "No price data available for this token",

	// Provider errors
	CodeProviderUnavailable: "Price provider unavailable",
	CodeProviderTimeout:     "Price provider request timed out",
	CodeMalformedPayload:    "Provider returned a malformed payload",
	CodeMetadataFetchFailed: "Failed to fetch token metadata",
	CodePoolFetchFailed:     "Failed to fetch DEX pools",
	CodeTickerFetchFailed:   "Failed to fetch exchange ticker",
	CodeSecurityFetchFailed: "Failed to fetch security report",

	// Analytics errors
	CodeSpreadCalculationError: "Spread calculation error",
	CodeInsufficientLiquidity:  "Insufficient liquidity for trade size",
	CodeInvalidTradeSize:       "Invalid trade size",

	// Cache errors
	CodeCacheMiss:    "Cache miss",
	CodeCacheExpired: "Cache entry expired",

	// Circuit breaker errors
	CodeCircuitOpen:     "Circuit breaker is open",
	CodeCircuitHalfOpen: "Circuit breaker is half-open",
}
