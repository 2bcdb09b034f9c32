package socks4

import (
	"bytes"
	"errors"
	"io"
	"net"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/dienet/socksneg"
)

func pipe() (net.Conn, net.Conn) {
	return net.Pipe()
}

func mustReadFull(t *testing.T, r io.Reader, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		t.Fatalf("read: %v", err)
	}
	return buf
}

// TestConnectSocks4aDomain covers a SOCKS4a CONNECT to "example.com":80
// with user-id "u".
func TestConnectSocks4aDomain(t *testing.T) {
	client, server := pipe()
	defer client.Close()
	defer server.Close()

	g := errgroup.Group{}
	g.Go(func() error {
		got := mustReadFull(t, server, 22)
		want := []byte{0x04, 0x01, 0x00, 0x50, 0x00, 0x00, 0x00, 0x01, 'u', 0x00}
		want = append(want, "example.com"...)
		want = append(want, 0x00)
		if !bytes.Equal(got, want) {
			t.Errorf("request = % x, want % x", got, want)
		}
		_, err := server.Write([]byte{0x00, 0x5A, 0x00, 0x50, 0xC0, 0x00, 0x02, 0x01})
		return err
	})

	bound, err := Connect(client, socksneg.DestinationDomain("example.com", 80), []byte("u"))
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if bound.Port != 80 || !bound.IP.Equal(net.IPv4(192, 0, 2, 1)) {
		t.Errorf("bound = %v", bound)
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestConnectIPv4(t *testing.T) {
	client, server := pipe()
	defer client.Close()
	defer server.Close()

	g := errgroup.Group{}
	g.Go(func() error {
		got := mustReadFull(t, server, 9)
		want := []byte{0x04, 0x01, 0x00, 0x50, 0x7F, 0x00, 0x00, 0x01, 0x00}
		if !bytes.Equal(got, want) {
			t.Errorf("request = % x, want % x", got, want)
		}
		_, err := server.Write([]byte{0x00, 0x5A, 0x00, 0x50, 0x7F, 0x00, 0x00, 0x01})
		return err
	})

	bound, err := Connect(client, socksneg.DestinationIP(net.IPv4(127, 0, 0, 1), 80), nil)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if bound.Port != 80 || !bound.IP.Equal(net.IPv4(127, 0, 0, 1)) {
		t.Errorf("bound = %v", bound)
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestConnectRejectsIPv6(t *testing.T) {
	client, server := pipe()
	defer client.Close()
	defer server.Close()

	dest := socksneg.DestinationIP(net.ParseIP("2001:db8::1"), 80)
	_, err := Connect(client, dest, nil)
	if !errors.Is(err, socksneg.ErrSocks4IPv6) {
		t.Fatalf("err = %v, want ErrSocks4IPv6", err)
	}
}

func TestConnectRejectsNULInUserID(t *testing.T) {
	client, server := pipe()
	defer client.Close()
	defer server.Close()

	dest := socksneg.DestinationIP(net.IPv4(127, 0, 0, 1), 80)
	_, err := Connect(client, dest, []byte("u\x00ser"))
	if !errors.Is(err, socksneg.ErrInvalidAuthValues) {
		t.Fatalf("err = %v, want ErrInvalidAuthValues", err)
	}
}

func TestConnectInvalidResponseVersion(t *testing.T) {
	client, server := pipe()
	defer client.Close()
	defer server.Close()

	g := errgroup.Group{}
	g.Go(func() error {
		mustReadFull(t, server, 9)
		_, err := server.Write([]byte{0x01, 0x5A, 0x00, 0x50, 0x7F, 0x00, 0x00, 0x01})
		return err
	})

	_, err := Connect(client, socksneg.DestinationIP(net.IPv4(127, 0, 0, 1), 80), nil)
	if !errors.Is(err, socksneg.ErrInvalidResponseVersion) {
		t.Fatalf("err = %v, want ErrInvalidResponseVersion", err)
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestConnectStatusRejected(t *testing.T) {
	client, server := pipe()
	defer client.Close()
	defer server.Close()

	g := errgroup.Group{}
	g.Go(func() error {
		mustReadFull(t, server, 9)
		_, err := server.Write([]byte{0x00, 0x5B, 0x00, 0x50, 0x00, 0x00, 0x00, 0x00})
		return err
	})

	_, err := Connect(client, socksneg.DestinationIP(net.IPv4(127, 0, 0, 1), 80), nil)
	if !errors.Is(err, ErrRequestRejectedOrFailed) {
		t.Fatalf("err = %v, want ErrRequestRejectedOrFailed", err)
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestBindTwoPhase(t *testing.T) {
	client, server := pipe()
	defer client.Close()
	defer server.Close()

	g := errgroup.Group{}
	g.Go(func() error {
		mustReadFull(t, server, 9)
		if _, err := server.Write([]byte{0x00, 0x5A, 0x00, 0x50, 0xC0, 0x00, 0x02, 0x02}); err != nil {
			return err
		}
		_, err := server.Write([]byte{0x00, 0x5A, 0xBE, 0xEF, 0xC0, 0x00, 0x02, 0x03})
		return err
	})

	dest := socksneg.DestinationIP(net.IPv4(127, 0, 0, 1), 80)
	bound, session, err := Bind(client, dest, nil)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if !bound.IP.Equal(net.IPv4(192, 0, 2, 2)) {
		t.Errorf("bound = %v", bound)
	}

	peer, err := session.Accept()
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if peer.Port != 48879 || !peer.IP.Equal(net.IPv4(192, 0, 2, 3)) {
		t.Errorf("peer = %v", peer)
	}

	if _, err := session.Accept(); !errors.Is(err, socksneg.ErrInvalidState) {
		t.Fatalf("second Accept err = %v, want ErrInvalidState", err)
	}

	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
