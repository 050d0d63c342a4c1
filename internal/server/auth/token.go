package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the registered claims (iat, exp) plus the
// identity of the signed-in user.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// TokenCodec signs and verifies session tokens with a single HMAC secret.
// It holds no mutable state and is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec returns a codec signing with secret. Tokens expire ttl after
// issue; a ttl of zero or less issues tokens without expiry.
func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	key := make([]byte, len(secret))
	copy(key, secret)
	return &TokenCodec{secret: key, ttl: ttl, now: time.Now}
}

// TTL is the validity window of issued tokens.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Encode issues a token for userID.
func (c *TokenCodec) Encode(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: empty user id", common.ErrorValidation)
	}

	issued := c.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(issued),
		},
		UserID: userID,
	}
	if c.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(issued.Add(c.ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies token and returns the user id it was issued for.
//
// Every failure wraps common.ErrInvalidToken together with exactly one
// reason: common.ErrTokenMalformed, common.ErrTokenSignatureInvalid or
// common.ErrTokenExpired.
func (c *TokenCodec) Decode(token string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	}
	if c.ttl > 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		return "", invalidToken(classify(err))
	}

	if claims.UserID == "" {
		return "", invalidToken(common.ErrTokenMalformed)
	}

	return claims.UserID, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return common.ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return common.ErrTokenExpired
	default:
		return common.ErrTokenMalformed
	}
}

func invalidToken(reason error) error {
	return fmt.Errorf("%w: %w", common.ErrInvalidToken, reason)
}
