package socks4

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"net"

	"github.com/dienet/socksneg"
)

const domainSentinelOctet = 0x01

// encodeRequest renders a SOCKS4/4a request: the fixed 8-byte header, the
// user-id, a NUL, and (for a domain destination) the name and a second
// NUL.
func encodeRequest(cmd socksneg.Command, dest socksneg.Destination, userID []byte) ([]byte, error) {
	if bytes.IndexByte(userID, 0x00) >= 0 {
		return nil, fmt.Errorf("%w: user-id contains a NUL byte", socksneg.ErrInvalidAuthValues)
	}

	var ip net.IP
	var domain string
	if dest.IsDomain() {
		if err := dest.Validate(); err != nil {
			return nil, err
		}
		if bytes.IndexByte([]byte(dest.Name), 0x00) >= 0 {
			return nil, fmt.Errorf("%w: domain name contains a NUL byte", socksneg.ErrInvalidTargetAddress)
		}
		ip = net.IPv4(0, 0, 0, domainSentinelOctet)
		domain = dest.Name
	} else if v4 := dest.IP.To4(); v4 != nil {
		ip = v4
	} else {
		return nil, socksneg.ErrSocks4IPv6
	}

	buf := make([]byte, 0, 9+len(userID)+len(domain)+1)
	buf = append(buf, protocolVersion, byte(cmd))
	port := make([]byte, 2)
	binary.BigEndian.PutUint16(port, dest.Port)
	buf = append(buf, port...)
	buf = append(buf, ip.To4()...)
	buf = append(buf, userID...)
	buf = append(buf, 0x00)
	if dest.IsDomain() {
		buf = append(buf, domain...)
		buf = append(buf, 0x00)
	}
	return buf, nil
}
