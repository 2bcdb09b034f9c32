package socks5

import (
	"fmt"

	"github.com/dienet/socksneg"
)

const (
	protocolVersion = 0x05
	reservedByte    = 0x00
)

// Connect drives a full SOCKS5 CONNECT handshake: method negotiation,
// optional RFC 1929 authentication, the CONNECT request, and its reply. On
// success it returns the address the proxy bound; stream is left ready to
// carry the tunneled payload.
func Connect(stream socksneg.Stream, dest socksneg.Destination, creds *socksneg.Credentials) (socksneg.Destination, error) {
	return negotiate(stream, socksneg.Connect, dest, creds)
}

// Bind drives a SOCKS5 BIND handshake through its first reply and returns a
// BindSession that must be Accept-ed once the proxy's peer connects. Until
// Accept returns, the caller must not write application bytes on stream.
func Bind(stream socksneg.Stream, dest socksneg.Destination, creds *socksneg.Credentials) (socksneg.Destination, *BindSession, error) {
	bound, err := negotiate(stream, socksneg.Bind, dest, creds)
	if err != nil {
		return socksneg.Destination{}, nil, err
	}
	return bound, &BindSession{stream: stream}, nil
}

func negotiate(stream socksneg.Stream, cmd socksneg.Command, dest socksneg.Destination, creds *socksneg.Credentials) (socksneg.Destination, error) {
	// Credentials are validated before the method proposal is written, not
	// just before the sub-negotiation frame that would eventually carry
	// them, so out-of-range credentials are rejected before any byte
	// reaches the wire.
	if creds != nil {
		if err := creds.Validate(); err != nil {
			return socksneg.Destination{}, err
		}
	}

	if err := proposeMethods(stream, creds); err != nil {
		return socksneg.Destination{}, err
	}

	method, err := readSelectedMethod(stream)
	if err != nil {
		return socksneg.Destination{}, err
	}

	switch method {
	case byte(socksneg.MethodNoAuth):
		// proceed
	case byte(socksneg.MethodUserPassword):
		if creds == nil {
			return socksneg.Destination{}, socksneg.ErrNoAcceptableAuthMethods
		}
		if err := writeAuthRequest(stream, *creds); err != nil {
			return socksneg.Destination{}, err
		}
		if err := readAuthReply(stream); err != nil {
			return socksneg.Destination{}, err
		}
	case byte(socksneg.MethodNoAcceptable):
		return socksneg.Destination{}, socksneg.ErrNoAcceptableAuthMethods
	default:
		return socksneg.Destination{}, fmt.Errorf("%w: method 0x%02x", socksneg.ErrUnknownAuthMethod, method)
	}

	if err := writeRequest(stream, cmd, dest); err != nil {
		return socksneg.Destination{}, err
	}

	return readReply(stream)
}

// proposeMethods proposes NoAuth if creds is nil, or [NoAuth,
// UserPassword] if creds is present. Proposing NoAuth even when credentials
// are supplied is deliberately lenient: it lets the proxy short-circuit
// authentication when it doesn't require it.
func proposeMethods(stream socksneg.Stream, creds *socksneg.Credentials) error {
	methods := []byte{byte(socksneg.MethodNoAuth)}
	if creds != nil {
		methods = append(methods, byte(socksneg.MethodUserPassword))
	}

	buf := make([]byte, 0, 2+len(methods))
	buf = append(buf, protocolVersion, byte(len(methods)))
	buf = append(buf, methods...)
	return socksneg.WriteAll(stream, buf)
}

func readSelectedMethod(stream socksneg.Stream) (byte, error) {
	var reply [2]byte
	if err := socksneg.ReadFull(stream, reply[:]); err != nil {
		return 0, err
	}
	if reply[0] != protocolVersion {
		return 0, fmt.Errorf("%w: 0x%02x", socksneg.ErrInvalidResponseVersion, reply[0])
	}
	return reply[1], nil
}

func writeRequest(stream socksneg.Stream, cmd socksneg.Command, dest socksneg.Destination) error {
	addr, err := encodeAddress(dest)
	if err != nil {
		return err
	}
	buf := make([]byte, 0, 3+len(addr))
	buf = append(buf, protocolVersion, byte(cmd), reservedByte)
	buf = append(buf, addr...)
	return socksneg.WriteAll(stream, buf)
}

// readReply reads a fixed 4-byte reply header followed by an address body,
// then maps REP to an error. A bad version or reserved byte fails before the
// address is read; otherwise the address is fully drained even when REP
// denotes failure, so the stream's read cursor stays at a protocol-coherent
// position.
func readReply(stream socksneg.Stream) (socksneg.Destination, error) {
	var header [4]byte
	if err := socksneg.ReadFull(stream, header[:]); err != nil {
		return socksneg.Destination{}, err
	}
	ver, rep, rsv, atyp := header[0], header[1], header[2], header[3]

	if ver != protocolVersion {
		return socksneg.Destination{}, fmt.Errorf("%w: 0x%02x", socksneg.ErrInvalidResponseVersion, ver)
	}
	if rsv != reservedByte {
		return socksneg.Destination{}, fmt.Errorf("%w: 0x%02x", socksneg.ErrInvalidReservedByte, rsv)
	}

	bound, err := decodeAddressBody(stream, atyp)
	if err != nil {
		return socksneg.Destination{}, err
	}
	if replyErr := replyError(rep); replyErr != nil {
		return socksneg.Destination{}, replyErr
	}
	return bound, nil
}
