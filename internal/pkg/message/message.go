package message

const (
	InvalidUser      = "Invalid username/password."
	InvalidInput     = "Invalid input."
	InvalidAPIKey    = "Invalid API key."
	Forbidden        = "You are not allowed to perform this action."
	NotFound         = "Resource not found."
	ServerError      = "An unexpected error occurred."
	RequestTimeout   = "Request timed out."
	Unavailable      = "Service temporarily unavailable."
	TooManyRequests  = "Too many requests."
	PayloadTooLarge  = "Request body too large."
	ResetSent        = "If an account exists for that email, a password reset link was sent."
	ResetSuccess     = "Password reset successful."
	EnvErrFmt        = "environment variable is not set: %s"
	FmtErrStatusCode = "rec.Code = %d, want: %d"
)
