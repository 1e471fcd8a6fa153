// Package auth resolves caller credentials to the user key that scopes every
// record. Token issuance belongs to an external identity provider; this
// package only verifies.
package auth

import (
	"context"
	"errors"
	"strings"
)

// ErrUnauthorized is wrapped by every resolution failure.
var ErrUnauthorized = errors.New("unauthorized")

// Resolver turns an opaque credential into a stable user key.
type Resolver interface {
	ResolveUserKey(ctx context.Context, credential string) (string, error)
}

// Credential extracts the credential from an Authorization header value,
// stripping an optional Bearer scheme.
func Credential(header string) string {
	header = strings.TrimSpace(header)

	scheme, rest, ok := strings.Cut(header, " ")
	if ok && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(rest)
	}

	return header
}

// HeaderResolver trusts the credential as the user key itself. It is meant
// for local development and for deployments behind a proxy that has already
// authenticated the caller.
type HeaderResolver struct{}

func (HeaderResolver) ResolveUserKey(_ context.Context, credential string) (string, error) {
	key := strings.TrimSpace(credential)
	if key == "" {
		return "", ErrUnauthorized
	}

	return key, nil
}
