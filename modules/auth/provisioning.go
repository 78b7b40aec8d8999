package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/otpkey"
	"github.com/dmitrymomot/authkit/pkg/qrcode"
	"github.com/dmitrymomot/authkit/pkg/totp"
)

// BeginProvisioning prepares authenticator enrolment for an identity that
// does not yet have two-factor authentication enabled. The first call
// generates and stores a secret; repeat calls before activation reuse it,
// so refreshing the setup page keeps the QR code stable.
func (s *Service) BeginProvisioning(ctx context.Context, identityID uuid.UUID) (*ProvisioningMaterial, error) {
	identity, err := s.directory.FindByID(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("find identity: %w", err)
	}
	if identity.TwoFactorEnabled {
		return nil, ErrAlreadyEnabled
	}

	secret, err := s.directory.AuthenticatorSecret(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("load authenticator secret: %w", err)
	}
	if secret == "" {
		secret, err = otpkey.Generate()
		if err != nil {
			return nil, fmt.Errorf("generate secret: %w", err)
		}
		if err := s.directory.SetAuthenticatorSecret(ctx, identityID, secret); err != nil {
			return nil, fmt.Errorf("store secret: %w", err)
		}
	}

	return s.provisioningMaterial(identity, secret)
}

// VerifyProvisioning checks a code from the freshly enrolled authenticator
// and, when it matches, activates two-factor authentication. First-time
// activation also hands out the initial recovery-code batch. Failed codes
// count toward the lockout threshold.
func (s *Service) VerifyProvisioning(ctx context.Context, identityID uuid.UUID, code string) (*ActivationResult, error) {
	if totp.Normalize(code) == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.directory.FindByID(ctx, identityID); err != nil {
		return nil, fmt.Errorf("find identity: %w", err)
	}

	secret, err := s.directory.AuthenticatorSecret(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("load authenticator secret: %w", err)
	}
	if secret == "" {
		return nil, ErrNotProvisioned
	}

	key := identityID.String()
	locked, retryAfter, err := s.lockout.Status(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("lockout status: %w", err)
	}
	if locked {
		return &ActivationResult{Message: msgLockedOut, LockedOut: true, RetryAfter: retryAfter}, nil
	}

	ok, err := totp.Verify(secret, code, s.now())
	if err != nil && !errors.Is(err, totp.ErrMalformedCode) {
		return nil, fmt.Errorf("verify code: %w", err)
	}
	if !ok {
		tripped, err := s.lockout.Fail(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("lockout fail: %w", err)
		}
		if tripped {
			_, retryAfter, _ := s.lockout.Status(ctx, key)
			return &ActivationResult{Message: msgLockedOut, LockedOut: true, RetryAfter: retryAfter}, nil
		}
		return &ActivationResult{Message: msgInvalidSetupCode}, nil
	}

	if err := s.directory.SetTwoFactorEnabled(ctx, identityID, true); err != nil {
		return nil, fmt.Errorf("enable two-factor: %w", err)
	}
	if err := s.lockout.Reset(ctx, key); err != nil {
		return nil, fmt.Errorf("lockout reset: %w", err)
	}

	result := &ActivationResult{Succeeded: true, Message: msgReactivation}
	remaining, err := s.recovery.Remaining(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("count recovery codes: %w", err)
	}
	if remaining == 0 {
		codes, err := s.recovery.Replace(ctx, identityID, s.config.RecoveryCodeCount)
		if err != nil {
			return nil, fmt.Errorf("generate recovery codes: %w", err)
		}
		result.Message = msgFirstActivation
		result.RecoveryCodes = codes
	}

	s.log.InfoContext(ctx, "two-factor authentication activated",
		logger.IdentityID(identityID), slog.Bool("first_time", len(result.RecoveryCodes) > 0))
	return result, nil
}

// ResetProvisioning discards the current authenticator secret, disables
// two-factor authentication, and starts enrolment over with a fresh secret.
// Codes produced by the old authenticator stop working immediately.
func (s *Service) ResetProvisioning(ctx context.Context, identityID uuid.UUID) (*ProvisioningMaterial, error) {
	identity, err := s.directory.FindByID(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("find identity: %w", err)
	}

	secret, err := otpkey.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}
	if err := s.directory.SetAuthenticatorSecret(ctx, identityID, secret); err != nil {
		return nil, fmt.Errorf("store secret: %w", err)
	}
	if err := s.directory.SetTwoFactorEnabled(ctx, identityID, false); err != nil {
		return nil, fmt.Errorf("disable two-factor: %w", err)
	}

	s.log.InfoContext(ctx, "authenticator reset", logger.IdentityID(identityID))
	return s.provisioningMaterial(identity, secret)
}

func (s *Service) provisioningMaterial(identity *Identity, secret string) (*ProvisioningMaterial, error) {
	shared, err := otpkey.Format(secret)
	if err != nil {
		return nil, fmt.Errorf("format shared key: %w", err)
	}
	uri, err := otpkey.ProvisioningURI(s.config.Issuer, identity.Email, secret)
	if err != nil {
		return nil, fmt.Errorf("build provisioning uri: %w", err)
	}
	qr, err := qrcode.DataURI(uri, s.config.QRSize)
	if err != nil {
		return nil, fmt.Errorf("render qr code: %w", err)
	}
	return &ProvisioningMaterial{SharedKey: shared, ProvisioningURI: uri, QRCode: qr}, nil
}
