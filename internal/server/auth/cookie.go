package auth

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
)

// SessionCookie carries the session token between client and server.
type SessionCookie struct {
	Name     string
	Path     string
	Secure   bool
	SameSite http.SameSite
	TTL      time.Duration
}

// NewSessionCookie returns a cookie transport with HttpOnly, Lax defaults
// rooted at "/". An empty name falls back to common.DefaultSessionCookieName.
func NewSessionCookie(name string, secure bool, ttl time.Duration) *SessionCookie {
	if name == "" {
		name = common.DefaultSessionCookieName
	}
	return &SessionCookie{
		Name:     name,
		Path:     "/",
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		TTL:      ttl,
	}
}

// Attach sets the session cookie to token on the response.
func (s *SessionCookie) Attach(w http.ResponseWriter, token string) {
	c := s.base()
	c.Value = token
	if s.TTL > 0 {
		c.MaxAge = int(s.TTL / time.Second)
		c.Expires = time.Now().Add(s.TTL).UTC()
	}
	http.SetCookie(w, c)
}

// Clear instructs the client to drop the session cookie.
func (s *SessionCookie) Clear(w http.ResponseWriter) {
	c := s.base()
	c.Value = ""
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0).UTC()
	http.SetCookie(w, c)
}

// Read returns the token carried by the request, if any.
func (s *SessionCookie) Read(r *http.Request) (string, bool) {
	c, err := r.Cookie(s.Name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (s *SessionCookie) base() *http.Cookie {
	path := s.Path
	if path == "" {
		path = "/"
	}
	return &http.Cookie{
		Name:     s.Name,
		Path:     path,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: s.SameSite,
	}
}
