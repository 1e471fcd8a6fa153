package auth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

const (
	firebaseIssuerPrefix = "https://securetoken.google.com/"
	// Used when the certificate endpoint sends no max-age.
	defaultKeyTTL = time.Hour
	// Certificates are fetched at most this often, whatever key ids callers send.
	minRefreshInterval = time.Minute
)

// FirebaseResolver verifies Firebase ID tokens. Signing certificates are
// fetched from certsURL and cached for as long as the endpoint allows.
type FirebaseResolver struct {
	projectID string
	certsURL  string
	client    *http.Client
	now       func() time.Time

	fetches singleflight.Group

	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey
	expires   time.Time
	lastFetch time.Time
}

type FirebaseOption func(*FirebaseResolver)

func WithHTTPClient(c *http.Client) FirebaseOption {
	return func(r *FirebaseResolver) { r.client = c }
}

func WithClock(now func() time.Time) FirebaseOption {
	return func(r *FirebaseResolver) { r.now = now }
}

func NewFirebaseResolver(projectID, certsURL string, opts ...FirebaseOption) *FirebaseResolver {
	r := &FirebaseResolver{
		projectID: projectID,
		certsURL:  certsURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *FirebaseResolver) ResolveUserKey(ctx context.Context, credential string) (string, error) {
	if credential == "" {
		return "", ErrUnauthorized
	}

	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(credential, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token has no key id")
		}

		return r.key(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(r.projectID),
		jwt.WithIssuer(firebaseIssuerPrefix+r.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(r.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", ErrUnauthorized)
	}

	return claims.Subject, nil
}

// key returns the public key for kid. The cache is refetched when it has
// expired or kid is unknown, since Google rotates certificates ahead of the
// cache expiry, but never more than once per minRefreshInterval. Until then
// stale keys stay usable. Concurrent callers share one fetch, and the fetch
// runs without holding mu.
func (r *FirebaseResolver) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if k, fresh := r.cached(kid); k != nil && fresh {
		return k, nil
	}

	_, err, _ := r.fetches.Do("certs", func() (any, error) {
		if !r.refreshDue() {
			return nil, nil
		}

		return nil, r.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		slog.Error("failed to refresh firebase certificates", "error", err)
	}

	k, _ := r.cached(kid)
	if k != nil {
		return k, nil
	}

	if err != nil {
		return nil, err
	}

	return nil, fmt.Errorf("unknown key id %q", kid)
}

func (r *FirebaseResolver) cached(kid string) (*rsa.PublicKey, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.keys[kid], r.now().Before(r.expires)
}

func (r *FirebaseResolver) refreshDue() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.now().Sub(r.lastFetch) >= minRefreshInterval
}

func (r *FirebaseResolver) refresh(ctx context.Context) error {
	r.mu.Lock()
	r.lastFetch = r.now()
	r.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.certsURL, nil)
	if err != nil {
		return fmt.Errorf("build certificates request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch certificates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch certificates: unexpected status %d", resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return fmt.Errorf("decode certificates: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))

	for kid, pem := range certs {
		k, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			return fmt.Errorf("parse certificate %q: %w", kid, err)
		}

		keys[kid] = k
	}

	r.mu.Lock()
	r.keys = keys
	r.expires = r.now().Add(maxAge(resp.Header.Get("Cache-Control")))
	r.mu.Unlock()

	return nil
}

func maxAge(cacheControl string) time.Duration {
	for directive := range strings.SplitSeq(cacheControl, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(directive), "=")
		if !ok || !strings.EqualFold(name, "max-age") {
			continue
		}

		if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}

	return defaultKeyTTL
}
