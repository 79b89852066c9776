package observability

import "net/http"

// RequestIDHeader is the correlation header shared by every service in the
// chain. Lookup is case-insensitive through http.Header canonicalization.
const RequestIDHeader = "X-Request-ID"

// ExtractRequestID reads the correlation id from h, or "" when absent.
func ExtractRequestID(h http.Header) string {
	return h.Get(RequestIDHeader)
}

// InjectRequestID writes id to h, replacing any existing value.
func InjectRequestID(h http.Header, id string) {
	h.Set(RequestIDHeader, id)
}
