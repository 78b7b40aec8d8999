package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/bearer"
	"github.com/dmitrymomot/authkit/pkg/session"
)

// sessionSchemeHeader lets a client ask for a bearer token instead of the
// default cookie session when authentication completes.
const sessionSchemeHeader = "X-Session-Scheme"

// Issuer establishes an authenticated session for an identity. The cookie
// issuer writes a Set-Cookie header and returns no token; the bearer issuer
// returns a signed token and leaves the response headers alone.
type Issuer interface {
	Establish(ctx context.Context, w http.ResponseWriter, identityID uuid.UUID, role string) (accessToken string, err error)
}

// CookieIssuer establishes server-tracked sessions bound to a signed cookie.
type CookieIssuer struct {
	sessions *session.Manager
}

// NewCookieIssuer creates a CookieIssuer over the session manager.
func NewCookieIssuer(sessions *session.Manager) *CookieIssuer {
	return &CookieIssuer{sessions: sessions}
}

// Establish implements Issuer.
func (i *CookieIssuer) Establish(ctx context.Context, w http.ResponseWriter, identityID uuid.UUID, role string) (string, error) {
	if _, err := i.sessions.Issue(ctx, w, identityID, role); err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	return "", nil
}

// BearerIssuer establishes stateless sessions as signed bearer tokens.
type BearerIssuer struct {
	tokens *bearer.Service
}

// NewBearerIssuer creates a BearerIssuer over the token service.
func NewBearerIssuer(tokens *bearer.Service) *BearerIssuer {
	return &BearerIssuer{tokens: tokens}
}

// Establish implements Issuer.
func (i *BearerIssuer) Establish(ctx context.Context, _ http.ResponseWriter, identityID uuid.UUID, role string) (string, error) {
	token, err := i.tokens.Issue(identityID, role)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
