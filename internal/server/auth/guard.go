package auth

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/filekeeper/internal/common"
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID string
}

type ctxKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFromContext returns the principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	if !ok || p.UserID == "" {
		return Principal{}, false
	}
	return p, true
}

// TokenDecoder resolves a session token to the user id it was issued for.
type TokenDecoder interface {
	Decode(token string) (string, error)
}

// TokenReader extracts the session token from a request.
type TokenReader interface {
	Read(r *http.Request) (string, bool)
}

// Guard admits requests that carry a valid session token.
type Guard struct {
	tokens TokenDecoder
	reader TokenReader
}

func NewGuard(tokens TokenDecoder, reader TokenReader) *Guard {
	return &Guard{tokens: tokens, reader: reader}
}

// Authenticate returns the principal of r. A request without a token fails
// with common.ErrNoCredentials; a token that does not decode fails with the
// codec error, which wraps common.ErrInvalidToken.
func (g *Guard) Authenticate(r *http.Request) (Principal, error) {
	token, ok := g.reader.Read(r)
	if !ok {
		return Principal{}, common.ErrNoCredentials
	}

	userID, err := g.tokens.Decode(token)
	if err != nil {
		return Principal{}, err
	}

	return Principal{UserID: userID}, nil
}
