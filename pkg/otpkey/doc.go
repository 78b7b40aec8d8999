// Package otpkey generates and formats shared authenticator secrets.
//
// A secret is a Base32-encoded random key compatible with TOTP authenticator
// apps. The package provides the display formatting (lower-cased 4-character
// groups) and the otpauth:// provisioning URI used to import the secret into
// an authenticator, either manually or through a QR code.
//
// The provisioning URI follows the Key Uri Format:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
package otpkey
