// Package totp validates time-based one-time passwords per RFC 6238.
//
// Codes are 6 digits over 30-second steps with HMAC-SHA1, the parameter set
// every mainstream authenticator app ships with. Verification tolerates one
// step of clock drift in either direction and compares candidate codes in
// constant time. Submitted codes are normalized first, so "123 456",
// "123-456" and "123456" are equivalent.
package totp
