// Package socks5 drives the SOCKS5 handshake (RFC 1928) and the RFC 1929
// username/password sub-negotiation over a caller-owned socksneg.Stream.
//
// Connect performs method selection, optional authentication, and a
// CONNECT request/reply exchange, returning the address the proxy bound on
// its side. Bind performs the same dance with a BIND request and returns a
// *BindSession that must be Accept-ed once the proxy's peer connects.
//
// The package never dials a connection itself; the stream is supplied
// already open and is returned to the caller's exclusive use once the
// handshake (or, for BIND, the second reply) completes.
package socks5
