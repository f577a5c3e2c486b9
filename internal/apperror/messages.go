package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeInvalidState:    "Invalid state for this operation",
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

	// Listing collection errors
	CodeCollectorBrowserFailed: "Failed to start headless browser",
	CodeCollectorNavigation:    "Failed to navigate to listing page",
	CodeCollectorParseFailed:   "Failed to parse listing page",
	CodeListingInvalidPrice:    "Listing price is missing or invalid",

	// eBay provider errors
	CodeEbayAuthFailed:  "eBay OAuth token request failed",
	CodeEbayAPIError:    "eBay API error",
	CodeEbayRateLimited: "eBay rate limit exceeded",
	CodeEbayEmptyResult: "eBay returned no sold items",
	CodeEbayBadResponse: "eBay response could not be decoded",

	// 130point provider errors
	CodePoint130APIError:    "130point sales lookup failed",
	CodePoint130BadResponse: "130point response could not be decoded",

	// FX errors
	CodeFXRateUnavailable: "Exchange rate unavailable",
	CodeFXInvalidRate:     "Exchange rate is zero or negative",
	CodeFXCurrencyUnknown: "Unknown currency code",

	// Pricing/aggregation errors
	CodeAggregationFailed:   "Sold price aggregation failed",
	CodeNoPriceEvidence:     "No sold price evidence available",
	CodeProfitComputeFailed: "Profit computation failed",
	CodeNegativeListedPrice: "Listed price is negative",
	CodeScoreComputeFailed:  "Score computation failed",

	// Result sink errors
	CodeExportWriteFailed: "Failed to write result export",
	CodeStoreWriteFailed:  "Failed to persist results",
	CodeStoreMigration:    "Result store migration failed",

	// Circuit breaker errors
	CodeCircuitOpen:     "Circuit breaker is open",
	CodeCircuitHalfOpen: "Circuit breaker is half-open",
}
