package common

// DefaultSessionCookieName is the cookie that carries the session token
// when no name is configured.
const DefaultSessionCookieName = "jwt"

// RequestIDHeaderName is echoed on every HTTP response.
const RequestIDHeaderName = "X-Request-ID"
