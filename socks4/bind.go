package socks4

import "github.com/dienet/socksneg"

// BindSession holds exclusive ownership of a stream after a successful
// SOCKS4/4a BIND request, awaiting the second reply that carries the
// address of the peer that connected to the proxy's listener. Accept may
// be called at most once.
type BindSession struct {
	stream socksneg.Stream
	done   bool
}

// Accept reads the second BIND reply and returns the peer's address. A
// second call returns ErrInvalidState.
func (b *BindSession) Accept() (socksneg.Destination, error) {
	if b.done {
		return socksneg.Destination{}, socksneg.ErrInvalidState
	}
	b.done = true
	return readReply(b.stream)
}
