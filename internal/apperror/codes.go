package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// External service errors
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Card arbitrage specific error codes
const (
	// Listing collection (Buyee) errors
	CodeCollectorBrowserFailed Code = "COLLECTOR_BROWSER_FAILED"
	CodeCollectorNavigation    Code = "COLLECTOR_NAVIGATION_FAILED"
	CodeCollectorParseFailed   Code = "COLLECTOR_PARSE_FAILED"
	CodeListingInvalidPrice    Code = "LISTING_INVALID_PRICE"

	// eBay provider errors
	CodeEbayAuthFailed  Code = "EBAY_AUTH_FAILED"
	CodeEbayAPIError    Code = "EBAY_API_ERROR"
	CodeEbayRateLimited Code = "EBAY_RATE_LIMITED"
	CodeEbayEmptyResult Code = "EBAY_EMPTY_RESULT"
	CodeEbayBadResponse Code = "EBAY_BAD_RESPONSE"

	// 130point provider errors
	CodePoint130APIError    Code = "POINT130_API_ERROR"
	CodePoint130BadResponse Code = "POINT130_BAD_RESPONSE"

	// FX errors
	CodeFXRateUnavailable Code = "FX_RATE_UNAVAILABLE"
	CodeFXInvalidRate     Code = "FX_INVALID_RATE"
	CodeFXCurrencyUnknown Code = "FX_CURRENCY_UNKNOWN"

	// Pricing/aggregation errors
	CodeAggregationFailed   Code = "AGGREGATION_FAILED"
	CodeNoPriceEvidence     Code = "NO_PRICE_EVIDENCE"
	CodeProfitComputeFailed Code = "PROFIT_COMPUTE_FAILED"
	CodeNegativeListedPrice Code = "NEGATIVE_LISTED_PRICE"
	CodeScoreComputeFailed  Code = "SCORE_COMPUTE_FAILED"

	// Result sink errors
	CodeExportWriteFailed Code = "EXPORT_WRITE_FAILED"
	CodeStoreWriteFailed  Code = "STORE_WRITE_FAILED"
	CodeStoreMigration    Code = "STORE_MIGRATION_FAILED"

	// Circuit breaker errors
	CodeCircuitOpen     Code = "CIRCUIT_OPEN"
	CodeCircuitHalfOpen Code = "CIRCUIT_HALF_OPEN"
)
