// Package bearer issues and validates stateless signed bearer tokens.
//
// Tokens are HS256 JWTs carrying the subject identity, its primary role
// claim, a unique token id and a fixed expiry. Validation pins the signing
// algorithm and checks signature, issuer, audience and expiry; there is no
// server-side lookup, which is the point of the bearer scheme.
//
// The signing key is configuration (BEARER_SIGNING_KEY), never a compile-time
// constant.
package bearer
