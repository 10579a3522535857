// Package mockconn provides an in-memory net.Conn pair for driving the
// service client's state machine in tests without a real TCP socket —
// the pattern used throughout marmos91-dittofs's NFS callback/backchannel
// tests (net.Pipe backing a scripted peer).
package mockconn

import "net"

// Pair returns two ends of an in-memory, full-duplex connection. Give one
// end to the code under test and drive the other end from a goroutine
// playing the role of the remote peer.
func Pair() (clientSide net.Conn, serverSide net.Conn) {
	return net.Pipe()
}
