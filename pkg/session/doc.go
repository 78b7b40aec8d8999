// Package session provides stateful cookie-backed sessions.
//
// A session is a server-tracked record referenced by an opaque random token
// carried in a signed cookie. Resolving a request therefore always hits the
// session store, in contrast to the stateless bearer scheme. Stores exist
// for in-process memory and Redis; expiry is checked against the clock at
// resolution time.
package session
