// Package auth implements the login and two-factor verification flow for an
// administrative user-management application.
//
// The flow is a small state machine: a password check either authenticates
// the identity outright, rejects it, or parks it behind a short-lived pending
// challenge when a second factor is required. Submitting a valid TOTP or
// recovery code against that challenge completes authentication. Only then
// is a session established, either as a server-tracked cookie session or a
// stateless bearer token, selected per request.
//
// User records themselves live behind the Directory interface; this package
// never owns identity storage.
package auth
