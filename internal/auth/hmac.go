package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HMACResolver accepts HS256 tokens signed with a shared secret and uses the
// subject claim as the user key.
type HMACResolver struct {
	secret []byte
	issuer string
}

func NewHMACResolver(secret, issuer string) *HMACResolver {
	return &HMACResolver{secret: []byte(secret), issuer: issuer}
}

func (r *HMACResolver) ResolveUserKey(_ context.Context, credential string) (string, error) {
	if credential == "" {
		return "", ErrUnauthorized
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if r.issuer != "" {
		opts = append(opts, jwt.WithIssuer(r.issuer))
	}

	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(credential, claims, func(t *jwt.Token) (any, error) {
		return r.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", ErrUnauthorized)
	}

	return claims.Subject, nil
}

// IssueHMAC signs a token for userKey valid for ttl.
func IssueHMAC(secret, issuer, userKey string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("issue token: empty secret")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userKey,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}
