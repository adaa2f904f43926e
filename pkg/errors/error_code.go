package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInsufficientData     ErrorCode = 106
	ErrCodeInvalidType          ErrorCode = 107
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidMultiplier    ErrorCode = 111
	ErrCodeInvalidState         ErrorCode = 112

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeNoDataFound           ErrorCode = 204

	// Indicator and statistics errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302
	ErrCodeDegenerateStatistic    ErrorCode = 303

	// Backtest errors (600-699)
	ErrCodeBacktestNoData      ErrorCode = 600
	ErrCodeBacktestConfigError ErrorCode = 602
	ErrCodeBacktestCancelled   ErrorCode = 603

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeMarketDataWriteFailed ErrorCode = 701
	ErrCodeMarketDataParseFailed ErrorCode = 702
	ErrCodeInvalidTimespan       ErrorCode = 703
	ErrCodeInvalidProvider       ErrorCode = 704

	// Advisor errors (900-999)
	ErrCodeAdvisorUnavailable     ErrorCode = 900
	ErrCodeAdvisorResponseInvalid ErrorCode = 901
	ErrCodeAdvisorNotConfigured   ErrorCode = 902

	// Report errors (1000-1099)
	ErrCodeReportWriteFailed ErrorCode = 1000
)
