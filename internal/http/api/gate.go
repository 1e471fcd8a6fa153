package api

import (
	"net/http"

	"github.com/MrJamesThe3rd/catatusaha/internal/auth"
)

// HandlerFunc is an HTTP handler that runs on behalf of a resolved user.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, userKey string)

// Gate resolves the caller once per request and hands the user key to the
// wrapped handler. Nothing is stored on the request context.
type Gate struct {
	resolver auth.Resolver
}

func NewGate(resolver auth.Resolver) *Gate {
	return &Gate{resolver: resolver}
}

func (g *Gate) Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		credential := auth.Credential(r.Header.Get("Authorization"))

		userKey, err := g.resolver.ResolveUserKey(r.Context(), credential)
		if err != nil {
			Error(w, err)
			return
		}

		h(w, r, userKey)
	}
}
