// Package recovery manages single-use recovery codes for second-factor bypass.
//
// Codes are short, human-typable strings generated from a crypto/rand source.
// Only SHA-256 hashes are persisted; the plaintext batch is returned exactly
// once at generation time. Sets are replaced wholesale, never extended, so
// regenerating codes invalidates every previously issued one. Consumption is
// atomic: under concurrent submissions of the same code, exactly one wins.
package recovery
