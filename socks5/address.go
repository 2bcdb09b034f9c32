package socks5

import (
	"encoding/binary"
	"fmt"
	"net"

	"github.com/dienet/socksneg"
)

const (
	atypIPv4   = 0x01
	atypDomain = 0x03
	atypIPv6   = 0x04
)

// encodeAddress renders dest as a SOCKS5 address triple: one kind byte,
// the address body, and a two-byte big-endian port. It runs
// Destination.Validate itself and also rejects an IP that is neither 4 nor
// 16 bytes long.
func encodeAddress(dest socksneg.Destination) ([]byte, error) {
	if err := dest.Validate(); err != nil {
		return nil, err
	}

	var buf []byte
	switch {
	case dest.IsDomain():
		buf = make([]byte, 0, 4+len(dest.Name))
		buf = append(buf, atypDomain, byte(len(dest.Name)))
		buf = append(buf, dest.Name...)
	case len(dest.IP) == net.IPv4len:
		buf = make([]byte, 0, 7)
		buf = append(buf, atypIPv4)
		buf = append(buf, dest.IP...)
	case len(dest.IP) == net.IPv6len:
		buf = make([]byte, 0, 19)
		buf = append(buf, atypIPv6)
		buf = append(buf, dest.IP...)
	default:
		return nil, fmt.Errorf("%w: IP address is %d bytes, want 4 or 16", socksneg.ErrInvalidTargetAddress, len(dest.IP))
	}

	port := make([]byte, 2)
	binary.BigEndian.PutUint16(port, dest.Port)
	return append(buf, port...), nil
}

// decodeAddress reads a kind byte off stream and dispatches to
// decodeAddressBody.
func decodeAddress(stream socksneg.Stream) (socksneg.Destination, error) {
	var kind [1]byte
	if err := socksneg.ReadFull(stream, kind[:]); err != nil {
		return socksneg.Destination{}, err
	}
	return decodeAddressBody(stream, kind[0])
}

// decodeAddressBody reads the address body and port for an already-known
// kind byte. Used both by decodeAddress and by reply parsing, which reads
// ATYP as part of a fixed 4-byte header before the address body.
func decodeAddressBody(stream socksneg.Stream, atyp byte) (socksneg.Destination, error) {
	var host net.IP
	switch atyp {
	case atypIPv4:
		host = make(net.IP, net.IPv4len)
		if err := socksneg.ReadFull(stream, host); err != nil {
			return socksneg.Destination{}, err
		}
	case atypIPv6:
		host = make(net.IP, net.IPv6len)
		if err := socksneg.ReadFull(stream, host); err != nil {
			return socksneg.Destination{}, err
		}
	case atypDomain:
		var lenByte [1]byte
		if err := socksneg.ReadFull(stream, lenByte[:]); err != nil {
			return socksneg.Destination{}, err
		}
		name := make([]byte, lenByte[0])
		if len(name) > 0 {
			if err := socksneg.ReadFull(stream, name); err != nil {
				return socksneg.Destination{}, err
			}
		}
		return readPort(stream, socksneg.DestinationDomain(string(name), 0))
	default:
		return socksneg.Destination{}, fmt.Errorf("%w: 0x%02x", socksneg.ErrInvalidAddressType, atyp)
	}
	return readPort(stream, socksneg.DestinationIP(host, 0))
}

func readPort(stream socksneg.Stream, dest socksneg.Destination) (socksneg.Destination, error) {
	var portBytes [2]byte
	if err := socksneg.ReadFull(stream, portBytes[:]); err != nil {
		return socksneg.Destination{}, err
	}
	dest.Port = binary.BigEndian.Uint16(portBytes[:])
	return dest, nil
}
