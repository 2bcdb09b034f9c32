package socks4

import "github.com/dienet/socksneg"

// Connect drives a SOCKS4/4a CONNECT handshake: a single request/reply
// round trip. On success it returns the address the proxy bound; stream is
// left ready to carry the tunneled payload.
func Connect(stream socksneg.Stream, dest socksneg.Destination, userID []byte) (socksneg.Destination, error) {
	return negotiate(stream, socksneg.Connect, dest, userID)
}

// Bind drives a SOCKS4/4a BIND handshake through its first reply and
// returns a BindSession that must be Accept-ed once the proxy's peer
// connects. Until Accept returns, the caller must not write application
// bytes on stream.
func Bind(stream socksneg.Stream, dest socksneg.Destination, userID []byte) (socksneg.Destination, *BindSession, error) {
	bound, err := negotiate(stream, socksneg.Bind, dest, userID)
	if err != nil {
		return socksneg.Destination{}, nil, err
	}
	return bound, &BindSession{stream: stream}, nil
}

func negotiate(stream socksneg.Stream, cmd socksneg.Command, dest socksneg.Destination, userID []byte) (socksneg.Destination, error) {
	req, err := encodeRequest(cmd, dest, userID)
	if err != nil {
		return socksneg.Destination{}, err
	}
	if err := socksneg.WriteAll(stream, req); err != nil {
		return socksneg.Destination{}, err
	}
	return readReply(stream)
}
