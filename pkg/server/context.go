package server

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// contextKeyRequestID is the context key for the per-request ID set by
// requestIDMiddleware and echoed in error responses.
const contextKeyRequestID contextKey = "requestID"
