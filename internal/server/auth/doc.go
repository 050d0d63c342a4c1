// Package auth implements the session layer of the server.
//
// A user signs in with email and password (VerifyPassword). The server then
// issues a signed, stateless token (TokenCodec.Encode) and hands it to the
// browser in an HttpOnly cookie (SessionCookie.Attach). Every protected
// request passes the Guard, which reads the cookie, decodes the token and
// yields a Principal that travels in the request context.
//
// Nothing is stored server side: a token stays valid until it expires, and
// signing out only asks the client to drop the cookie.
package auth
