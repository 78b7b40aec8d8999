// Package lockout tracks failed authentication attempts per identity and
// blocks further attempts once a threshold is reached.
//
// Counters use atomic read-modify-write semantics at the store level, so
// concurrent failures for the same identity never under-count. Two stores
// ship with the package: an in-process MemoryStore and a RedisStore for
// multi-instance deployments.
package lockout
