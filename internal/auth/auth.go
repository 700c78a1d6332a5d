// Package auth verifies caller identity. A verified caller is reduced to an
// opaque user id; the rest of the application never sees tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken means the request carried no credentials.
	ErrMissingToken = errors.New("missing token")
	// ErrInvalidToken means credentials were present but could not be verified.
	ErrInvalidToken = errors.New("invalid token")
)

// Verifier turns a bearer token into the id of the user it was issued to.
type Verifier interface {
	Verify(ctx context.Context, token string) (userID string, err error)
}

// JWTVerifier verifies HS256-signed tokens whose subject is the user id.
type JWTVerifier struct {
	secret []byte
	issuer string
}

var _ Verifier = (*JWTVerifier)(nil)

// NewJWTVerifier returns a verifier for tokens signed with secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), issuer: "tripjournal"}
}

// Verify parses and validates token. Every failure is reported as ErrInvalidToken.
func (v *JWTVerifier) Verify(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: no subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}

// Issue signs a token for userID that expires after ttl.
// Used by tripctl and tests; the API itself only verifies.
func (v *JWTVerifier) Issue(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    v.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Subject reads the user id from token without checking its signature.
// Clients use it to learn who they act as; servers must use a Verifier.
func Subject(token string) (string, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: no subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value.
// It returns "" if the header is absent or uses another scheme.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

type ctxKey struct{}

// WithUserID returns a copy of ctx carrying the verified user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserID returns the verified user id in ctx, or "" for an anonymous caller.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
