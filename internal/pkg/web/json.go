package web

const (
	HeaderContentType = "Content-Type"
	HeaderRetryAfter  = "Retry-After"
	MimeJSON          = "application/json"
)
