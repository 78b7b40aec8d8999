package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/bearer"
	"github.com/dmitrymomot/authkit/pkg/session"
)

// Scheme names the authentication scheme a request was validated under.
type Scheme string

const (
	SchemeBearer Scheme = "bearer"
	SchemeCookie Scheme = "cookie"
)

// Principal is the authenticated caller attached to a request.
type Principal struct {
	IdentityID uuid.UUID
	Role       string
	Scheme     Scheme
}

// Dispatcher validates incoming requests under exactly one of two schemes.
// A request presenting a Bearer authorization header is validated as a
// stateless token and never falls back to cookies, so an expired or
// tampered token cannot ride along on a cookie session. Requests without a
// Bearer header are validated against the cookie session.
type Dispatcher struct {
	tokens   *bearer.Service
	sessions *session.Manager
}

// NewDispatcher creates a Dispatcher over the given validators.
func NewDispatcher(tokens *bearer.Service, sessions *session.Manager) *Dispatcher {
	return &Dispatcher{tokens: tokens, sessions: sessions}
}

// Authenticate validates the request and returns its principal, or
// ErrUnauthenticated (wrapped with the underlying cause) when no valid
// credential is present.
func (d *Dispatcher) Authenticate(r *http.Request) (*Principal, error) {
	if raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		claims, err := d.tokens.Validate(strings.TrimSpace(raw))
		if err != nil {
			return nil, errors.Join(ErrUnauthenticated, err)
		}
		id, err := claims.SubjectID()
		if err != nil {
			return nil, errors.Join(ErrUnauthenticated, err)
		}
		return &Principal{IdentityID: id, Role: claims.Role, Scheme: SchemeBearer}, nil
	}

	sess, err := d.sessions.Resolve(r.Context(), r)
	if err != nil {
		return nil, errors.Join(ErrUnauthenticated, err)
	}
	return &Principal{IdentityID: sess.IdentityID, Role: sess.Role, Scheme: SchemeCookie}, nil
}

// Middleware authenticates every request and stores the principal in the
// request context. Unauthenticated requests get a 401 and never reach the
// wrapped handler.
func (d *Dispatcher) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := d.Authenticate(r)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="authkit"`)
			writeJSON(w, http.StatusUnauthorized, authResponse{Message: http.StatusText(http.StatusUnauthorized)})
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), principal)))
	})
}

type principalCtxKey struct{}

func withPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFromContext returns the principal stored by Middleware.
func PrincipalFromContext(ctx context.Context) (*Principal, error) {
	p, ok := ctx.Value(principalCtxKey{}).(*Principal)
	if !ok {
		return nil, fmt.Errorf("%w: no principal in context", ErrUnauthenticated)
	}
	return p, nil
}
