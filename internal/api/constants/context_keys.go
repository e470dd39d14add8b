package constants

// ContextKeyRequestID is the gin context key for the request ID
const ContextKeyRequestID = "RequestID"

// HeaderRequestID carries the request ID in both directions
const HeaderRequestID = "X-Request-ID"
