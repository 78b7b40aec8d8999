package auth

import (
	"time"

	"github.com/google/uuid"
)

// LoginResult reports the outcome of a password check. Exactly one of the
// following holds: the login was rejected, the account is locked out, a
// second factor is required, or the identity is fully authenticated.
type LoginResult struct {
	Succeeded         bool
	Message           string
	RequiresTwoFactor bool

	// ChallengeToken is set only when RequiresTwoFactor is true. It is the
	// client's sole handle on the pending challenge.
	ChallengeToken string

	LockedOut  bool
	RetryAfter time.Duration

	// IdentityID and Role are set only when the identity is fully
	// authenticated, i.e. Succeeded is true and RequiresTwoFactor is false.
	IdentityID uuid.UUID
	Role       string
}

// Authenticated reports whether the result permits establishing a session.
func (r LoginResult) Authenticated() bool {
	return r.Succeeded && !r.RequiresTwoFactor
}

// SecondFactorResult reports the outcome of a second-factor submission
// against a pending challenge.
type SecondFactorResult struct {
	Succeeded bool
	Message   string

	LockedOut  bool
	RetryAfter time.Duration

	// RecoveryCodes carries a freshly generated batch when this
	// verification triggered one. The plaintext codes are never
	// retrievable again.
	RecoveryCodes []string

	// IdentityID and Role are set only on success.
	IdentityID uuid.UUID
	Role       string
}

// ProvisioningMaterial is everything a client needs to enrol an
// authenticator app: the shared key for manual entry, the otpauth URI, and
// the same URI rendered as a QR code data URI.
type ProvisioningMaterial struct {
	SharedKey       string
	ProvisioningURI string
	QRCode          string
}

// ActivationResult reports the outcome of verifying a provisioning code.
type ActivationResult struct {
	Succeeded bool
	Message   string

	LockedOut  bool
	RetryAfter time.Duration

	// RecoveryCodes is populated on first-time activation, when the
	// identity had no recovery codes yet.
	RecoveryCodes []string
}
