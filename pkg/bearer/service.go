package bearer

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the token payload: registered claims plus the primary role of
// the subject.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Service signs and validates bearer tokens with a symmetric key.
type Service struct {
	signingKey []byte
	issuer     string
	audience   string
	ttl        time.Duration
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source, letting tests control issuance and
// expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Service. The key must be at least 32 bytes for HS256.
func New(signingKey []byte, issuer, audience string, ttl time.Duration, opts ...Option) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	if len(signingKey) < 32 {
		return nil, ErrSigningKeyTooWeak
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	s := &Service{
		signingKey: signingKey,
		issuer:     issuer,
		audience:   audience,
		ttl:        ttl,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs a token for the subject with its primary role claim. Every
// token gets a unique id (jti) and the configured fixed expiry.
func (s *Service) Issue(subject uuid.UUID, role string) (string, error) {
	now := s.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

// Validate parses the token and enforces signature, algorithm, issuer,
// audience and expiry. Any failure other than expiry maps to ErrInvalidToken.
func (s *Service) Validate(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Join(ErrExpiredToken, err)
		}
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// SubjectID parses the subject claim into a uuid.
func (c *Claims) SubjectID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidToken, err)
	}
	return id, nil
}
