package auth

import "errors"

var (
	// ErrInvalidInput indicates missing or unusable caller input, such as a
	// blank email, password, or verification code.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIdentityNotFound indicates the directory has no record for the
	// requested email or id.
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrChallengeNotFound indicates the challenge token does not match any
	// pending two-factor challenge, or the challenge has expired.
	ErrChallengeNotFound = errors.New("challenge not found")

	// ErrNoPendingChallenge indicates a second-factor submission arrived
	// without a live pending challenge to resolve it against.
	ErrNoPendingChallenge = errors.New("no pending two-factor challenge")

	// ErrAlreadyEnabled indicates provisioning was requested for an identity
	// that already has two-factor authentication active.
	ErrAlreadyEnabled = errors.New("two-factor authentication already enabled")

	// ErrNotProvisioned indicates a verification was attempted before any
	// authenticator secret was provisioned.
	ErrNotProvisioned = errors.New("authenticator not provisioned")

	// ErrUnauthenticated indicates the request carried no valid credential
	// under either authentication scheme.
	ErrUnauthenticated = errors.New("unauthenticated")
)
