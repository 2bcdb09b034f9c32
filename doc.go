// Package socksneg holds the data model shared by the socks5 and socks4
// handshake drivers: the destination address a caller wants reached, the
// command being requested, and the duplex byte-stream contract the drivers
// negotiate over.
//
// socksneg itself never opens a connection and never performs DNS
// resolution; callers hand it an already-open net.Conn (or anything else
// satisfying Stream) and it upgrades that stream in place. See the socks5
// and socks4 subpackages for the actual handshake drivers.
package socksneg
