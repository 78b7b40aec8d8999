package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/dmitrymomot/authkit/pkg/lockout"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/recovery"
	"github.com/dmitrymomot/authkit/pkg/totp"
)

// Responses shown to the caller. The credential rejection message is
// deliberately identical for unknown emails and wrong passwords so that
// responses do not reveal which emails exist.
const (
	msgInvalidCredentials = "Invalid email or password."
	msgLockedOut          = "User account locked out."
	msgInvalidAuthCode    = "Invalid authenticator code."
	msgTwoFactorSuccess   = "Two-factor authentication successful."
	msgNoChallenge        = "Unable to load two-factor authentication user."
	msgInvalidSetupCode   = "Error: Verification code is invalid."
	msgFirstActivation    = "2FA activated!"
	msgReactivation       = "2FA successfully activated!"
)

// totpShape matches a normalized authenticator code. Anything else
// submitted as a second factor is treated as a recovery code.
var totpShape = regexp.MustCompile(`^[0-9]{6}$`)

// Service drives the login state machine and authenticator provisioning.
type Service struct {
	directory  Directory
	challenges ChallengeStore
	recovery   *recovery.Manager
	lockout    *lockout.Tracker
	config     Config
	log        *slog.Logger
	now        func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithChallengeStore replaces the default in-memory challenge store.
func WithChallengeStore(store ChallengeStore) ServiceOption {
	return func(s *Service) { s.challenges = store }
}

// WithRecoveryManager replaces the default in-memory recovery-code manager.
func WithRecoveryManager(m *recovery.Manager) ServiceOption {
	return func(s *Service) { s.recovery = m }
}

// WithLockoutTracker replaces the default in-memory lockout tracker.
func WithLockoutTracker(t *lockout.Tracker) ServiceOption {
	return func(s *Service) { s.lockout = t }
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) ServiceOption {
	return func(s *Service) { s.config = cfg }
}

// WithLogger sets the structured logger. Logging is discarded by default.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) { s.log = log }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates an authentication service over the given directory.
func NewService(directory Directory, opts ...ServiceOption) (*Service, error) {
	if directory == nil {
		return nil, errors.New("auth: directory is required")
	}

	s := &Service{
		directory:  directory,
		challenges: NewMemoryChallengeStore(),
		recovery:   recovery.NewManager(recovery.NewMemoryStore()),
		config:     DefaultConfig(),
		log:        logger.Discard(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.lockout == nil {
		tracker, err := lockout.NewTracker(lockout.NewMemoryStore(), lockout.DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("auth: default lockout tracker: %w", err)
		}
		s.lockout = tracker
	}
	return s, nil
}

// Login verifies an email and password pair. On success it either
// authenticates the identity outright or, when two-factor authentication is
// enabled, parks it behind a pending challenge and returns the challenge
// token. Rejections use one generic message regardless of whether the email
// exists.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if normalizeEmail(email) == "" || password == "" {
		return nil, ErrInvalidInput
	}

	identity, err := s.directory.FindByEmail(ctx, email)
	if errors.Is(err, ErrIdentityNotFound) {
		// Indistinguishable from a wrong password.
		return &LoginResult{Message: msgInvalidCredentials}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find identity: %w", err)
	}

	key := identity.ID.String()
	locked, retryAfter, err := s.lockout.Status(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("lockout status: %w", err)
	}
	if locked {
		s.log.InfoContext(ctx, "login rejected: locked out", logger.IdentityID(identity.ID))
		return &LoginResult{Message: msgLockedOut, LockedOut: true, RetryAfter: retryAfter}, nil
	}

	ok, err := s.directory.VerifyPassword(ctx, identity.ID, password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return s.recordFailure(ctx, identity, "login")
	}

	if err := s.lockout.Reset(ctx, key); err != nil {
		return nil, fmt.Errorf("lockout reset: %w", err)
	}

	if identity.TwoFactorEnabled {
		token, err := s.challenges.Create(ctx, identity.ID, s.config.ChallengeTTL)
		if err != nil {
			return nil, fmt.Errorf("create challenge: %w", err)
		}
		s.log.InfoContext(ctx, "login pending second factor", logger.IdentityID(identity.ID))
		return &LoginResult{Succeeded: true, RequiresTwoFactor: true, ChallengeToken: token}, nil
	}

	role, err := s.primaryRole(ctx, identity)
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "login succeeded", logger.IdentityID(identity.ID))
	return &LoginResult{Succeeded: true, IdentityID: identity.ID, Role: role}, nil
}

// SubmitSecondFactor resolves a pending challenge with an authenticator
// code or a recovery code. A six-digit code is checked as TOTP; anything
// else is treated as a recovery code and consumed at most once. The
// challenge survives failed attempts until it expires or the account locks.
func (s *Service) SubmitSecondFactor(ctx context.Context, challengeToken, code string) (*SecondFactorResult, error) {
	if challengeToken == "" || totp.Normalize(code) == "" {
		return nil, ErrInvalidInput
	}

	challenge, err := s.challenges.Get(ctx, challengeToken)
	if errors.Is(err, ErrChallengeNotFound) {
		return nil, ErrNoPendingChallenge
	}
	if err != nil {
		return nil, fmt.Errorf("load challenge: %w", err)
	}

	identityID := challenge.IdentityID
	key := identityID.String()
	locked, retryAfter, err := s.lockout.Status(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("lockout status: %w", err)
	}
	if locked {
		_ = s.challenges.Delete(ctx, challengeToken)
		return &SecondFactorResult{Message: msgLockedOut, LockedOut: true, RetryAfter: retryAfter}, nil
	}

	normalized := totp.Normalize(code)
	usedRecoveryCode := !totpShape.MatchString(normalized)

	var ok bool
	if usedRecoveryCode {
		ok, err = s.recovery.Consume(ctx, identityID, code)
		if err != nil {
			return nil, fmt.Errorf("consume recovery code: %w", err)
		}
	} else {
		secret, err := s.directory.AuthenticatorSecret(ctx, identityID)
		if err != nil {
			return nil, fmt.Errorf("load authenticator secret: %w", err)
		}
		if secret != "" {
			ok, err = totp.Verify(secret, code, s.now())
			if err != nil && !errors.Is(err, totp.ErrMalformedCode) {
				return nil, fmt.Errorf("verify code: %w", err)
			}
		}
	}

	if !ok {
		tripped, err := s.lockout.Fail(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("lockout fail: %w", err)
		}
		if tripped {
			_ = s.challenges.Delete(ctx, challengeToken)
			_, retryAfter, _ := s.lockout.Status(ctx, key)
			s.log.WarnContext(ctx, "second factor tripped lockout", logger.IdentityID(identityID))
			return &SecondFactorResult{Message: msgLockedOut, LockedOut: true, RetryAfter: retryAfter}, nil
		}
		return &SecondFactorResult{Message: msgInvalidAuthCode}, nil
	}

	// Single-use: concurrent submissions race on the claim, one winner.
	if _, err := s.challenges.Claim(ctx, challengeToken); err != nil {
		if errors.Is(err, ErrChallengeNotFound) {
			return nil, ErrNoPendingChallenge
		}
		return nil, fmt.Errorf("claim challenge: %w", err)
	}

	if err := s.lockout.Reset(ctx, key); err != nil {
		return nil, fmt.Errorf("lockout reset: %w", err)
	}

	result := &SecondFactorResult{
		Succeeded:  true,
		Message:    msgTwoFactorSuccess,
		IdentityID: identityID,
	}

	identity, err := s.directory.FindByID(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("find identity: %w", err)
	}
	result.Role, err = s.primaryRole(ctx, identity)
	if err != nil {
		return nil, err
	}

	// First successful authenticator verification hands out the initial
	// recovery-code batch. A recovery-code login never regenerates, even
	// when it consumed the last code.
	if !usedRecoveryCode {
		remaining, err := s.recovery.Remaining(ctx, identityID)
		if err != nil {
			return nil, fmt.Errorf("count recovery codes: %w", err)
		}
		if remaining == 0 {
			codes, err := s.recovery.Replace(ctx, identityID, s.config.RecoveryCodeCount)
			if err != nil {
				return nil, fmt.Errorf("generate recovery codes: %w", err)
			}
			result.RecoveryCodes = codes
		}
	}

	s.log.InfoContext(ctx, "second factor succeeded", logger.IdentityID(identityID))
	return result, nil
}

// AbandonChallenge cancels a pending two-factor challenge, for clients
// that back out of the second-factor step. Unknown tokens are a no-op.
func (s *Service) AbandonChallenge(ctx context.Context, challengeToken string) error {
	if challengeToken == "" {
		return nil
	}
	return s.challenges.Delete(ctx, challengeToken)
}

// recordFailure counts a wrong password and answers with either the
// generic rejection or, when this failure tripped the threshold, the
// lockout message.
func (s *Service) recordFailure(ctx context.Context, identity *Identity, stage string) (*LoginResult, error) {
	tripped, err := s.lockout.Fail(ctx, identity.ID.String())
	if err != nil {
		return nil, fmt.Errorf("lockout fail: %w", err)
	}
	if tripped {
		_, retryAfter, _ := s.lockout.Status(ctx, identity.ID.String())
		s.log.WarnContext(ctx, stage+" tripped lockout", logger.IdentityID(identity.ID))
		return &LoginResult{Message: msgLockedOut, LockedOut: true, RetryAfter: retryAfter}, nil
	}
	return &LoginResult{Message: msgInvalidCredentials}, nil
}

func (s *Service) primaryRole(ctx context.Context, identity *Identity) (string, error) {
	roles, err := s.directory.Roles(ctx, identity.ID)
	if err != nil {
		return "", fmt.Errorf("load roles: %w", err)
	}
	if len(roles) == 0 {
		return "", nil
	}
	return roles[0], nil
}
