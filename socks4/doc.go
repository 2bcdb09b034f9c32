// Package socks4 drives the SOCKS4 and SOCKS4a request/reply handshake
// over a caller-owned socksneg.Stream.
//
// SOCKS4 has no method negotiation and no authentication beyond an
// optional user-id string; a single request/reply round-trip (plus, for
// BIND, a second reply) is the entire dialogue. A domain destination is
// framed using the SOCKS4a convention: the fixed DSTIP field carries the
// sentinel 0.0.0.x, and the actual name follows the user-id as a second
// NUL-terminated string.
package socks4
