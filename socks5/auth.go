package socks5

import (
	"fmt"

	"github.com/dienet/socksneg"
)

const subNegotiationVersion = 0x01

// writeAuthRequest sends the RFC 1929 username/password sub-negotiation
// request. It rejects out-of-range credentials before writing anything.
func writeAuthRequest(stream socksneg.Stream, creds socksneg.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	buf := make([]byte, 0, 3+len(creds.Username)+len(creds.Password))
	buf = append(buf, subNegotiationVersion, byte(len(creds.Username)))
	buf = append(buf, creds.Username...)
	buf = append(buf, byte(len(creds.Password)))
	buf = append(buf, creds.Password...)
	return socksneg.WriteAll(stream, buf)
}

// readAuthReply reads the two-byte sub-negotiation reply and maps a
// non-zero status to an AuthFailureError.
func readAuthReply(stream socksneg.Stream) error {
	var reply [2]byte
	if err := socksneg.ReadFull(stream, reply[:]); err != nil {
		return err
	}
	if reply[0] != subNegotiationVersion {
		return fmt.Errorf("%w: sub-negotiation version 0x%02x", socksneg.ErrInvalidResponseVersion, reply[0])
	}
	if reply[1] != 0x00 {
		return &socksneg.AuthFailureError{Status: reply[1]}
	}
	return nil
}
