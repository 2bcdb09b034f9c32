package socks4

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"

	"github.com/dienet/socksneg"
)

const (
	protocolVersion = 0x04
	replyVersion    = 0x00

	statusGranted                 = 0x5A
	statusRejectedOrFailed        = 0x5B
	statusCannotConnectToIdentd   = 0x5C
	statusRejectedDifferentUserID = 0x5D
)

// Status-mapping sentinel errors, one per named kind in the SOCKS4 STATUS
// table. StatusError.Unwrap returns the matching sentinel.
var (
	ErrRequestRejectedOrFailed        = errors.New("socks4: request rejected or failed")
	ErrRequestRejectedCannotConnectID = errors.New("socks4: request rejected, cannot connect to identd")
	ErrRequestRejectedDifferentUserID = errors.New("socks4: request rejected, different user-id")
)

var statusKinds = map[byte]error{
	statusRejectedOrFailed:        ErrRequestRejectedOrFailed,
	statusCannotConnectToIdentd:   ErrRequestRejectedCannotConnectID,
	statusRejectedDifferentUserID: ErrRequestRejectedDifferentUserID,
}

// StatusError reports a non-grant STATUS byte. Kind is nil for a code this
// module does not recognize.
type StatusError struct {
	Status byte
	Kind   error
}

func (e *StatusError) Error() string {
	if e.Kind != nil {
		return fmt.Sprintf("socks4: %v (status 0x%02x)", e.Kind, e.Status)
	}
	return fmt.Sprintf("socks4: unknown status 0x%02x", e.Status)
}

func (e *StatusError) Unwrap() error { return e.Kind }

func statusError(status byte) error {
	if status == statusGranted {
		return nil
	}
	return &StatusError{Status: status, Kind: statusKinds[status]}
}

// readReply reads the fixed 8-byte SOCKS4 reply and maps STATUS to an
// error. The bound address is always IPv4.
func readReply(stream socksneg.Stream) (socksneg.Destination, error) {
	var buf [8]byte
	if err := socksneg.ReadFull(stream, buf[:]); err != nil {
		return socksneg.Destination{}, err
	}
	if buf[0] != replyVersion {
		return socksneg.Destination{}, fmt.Errorf("%w: 0x%02x", socksneg.ErrInvalidResponseVersion, buf[0])
	}

	port := binary.BigEndian.Uint16(buf[2:4])
	ip := net.IP(append([]byte(nil), buf[4:8]...))
	bound := socksneg.DestinationIP(ip, port)

	if err := statusError(buf[1]); err != nil {
		return socksneg.Destination{}, err
	}
	return bound, nil
}
