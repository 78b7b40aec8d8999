// Package cookie manages HTTP cookies with tamper-evident signed values.
//
// Signed values carry an HMAC-SHA256 over the payload; verification runs in
// constant time and tries every configured secret, so keys can be rotated
// without invalidating cookies issued under the previous key. Session
// transports build on this to keep the session token out of reach of
// client-side tampering.
package cookie
