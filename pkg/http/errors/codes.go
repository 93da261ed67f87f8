package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeInvalidToken           = "invalid_token"
	ErrCodeTokenExpired           = "token_expired"
	ErrCodeAuthenticationRequired = "authentication_required"

	// Validation errors
	ErrCodeInvalidRequest      = "invalid_request"
	ErrCodeUnsupportedGridSize = "unsupported_grid_size"

	// Resource errors
	ErrCodeNotFound        = "not_found"
	ErrCodePuzzleNotFound  = "puzzle_not_found"
	ErrCodeSessionNotFound = "session_not_found"

	// Business logic errors
	ErrCodeSessionStartFailed    = "session_start_failed"
	ErrCodeSessionCompleteFailed = "session_complete_failed"
	ErrCodeBankExhausted         = "bank_exhausted"

	// Leaderboard errors
	ErrCodeLeaderboardFetchFailed = "leaderboard_fetch_failed"
	ErrCodeUnknownWindow          = "unknown_leaderboard_window"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
)
