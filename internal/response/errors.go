package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrWrongSecretKey     ErrCode = "WRONG_SECRET_KEY"
	ErrNotVerified        ErrCode = "NOT_VERIFIED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Verification ──────────────────────────────────────────────────
	ErrInvalidOTP ErrCode = "INVALID_OTP"
	ErrExpiredOTP ErrCode = "EXPIRED_OTP"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidBranch  ErrCode = "INVALID_BRANCH"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Attendance ────────────────────────────────────────────────────
	ErrAlreadyMarked       ErrCode = "ATTENDANCE_ALREADY_MARKED"
	ErrDuplicateAttendance ErrCode = "DUPLICATE_ATTENDANCE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Incorrect credentials."
	case ErrWrongSecretKey:
		return "Wrong secret key."
	case ErrNotVerified:
		return "Account is not verified."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid or expired."
	case ErrInvalidOTP:
		return "Invalid OTP. Please sign up again."
	case ErrExpiredOTP:
		return "OTP has expired. Please sign up again."
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidBranch:
		return "Branch is required."
	case ErrInvalidPayload:
		return "Request payload is invalid."
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrAlreadyMarked:
		return "Attendance already marked for today."
	case ErrDuplicateAttendance:
		return "Duplicate attendance detected."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
