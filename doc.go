// Package authkit provides the authentication core for an administrative
// user-management application: password login with anti-enumeration
// responses, TOTP-based two-factor authentication with recovery codes,
// failure lockout, and session establishment under either a signed-cookie
// or a bearer-token scheme.
//
// The feature flow lives in modules/auth. The packages under pkg hold the
// reusable building blocks it is composed from:
//
//   - pkg/otpkey: authenticator secret generation, display formatting, and
//     otpauth provisioning URIs
//   - pkg/totp: RFC 6238 code verification with a one-step drift window
//   - pkg/recovery: hashed single-use recovery codes
//   - pkg/lockout: failure counting and temporary account locks
//   - pkg/qrcode: QR rendering for provisioning URIs
//   - pkg/session, pkg/cookie: server-tracked cookie sessions
//   - pkg/bearer: stateless signed tokens
//   - pkg/redis: connection helper for the Redis-backed stores
//   - pkg/config, pkg/logger: environment configuration and structured
//     logging
package authkit
