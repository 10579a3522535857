// Package client implements the TCPROS service client: it composes the
// header codec and the binary codec over a synchronous TCP connection to
// perform one request/response exchange per call.
//
// Call flow, all steps sequential within a single call:
//
//	connect → write request headers → read response headers →
//	write request body → read verification byte → decode response/failure
//
// Every transport-level fault (I/O error, bad header, short read) is a Go
// error — the call produced no service answer. A well-formed response the
// server itself rejected is a service.Result, not a Go error: callers must
// handle both axes (see clienterr and service.Result).
package client

import (
	"encoding/binary"
	"io"
	"net"
	"strings"
	"time"

	"tcpros/clienterr"
	"tcpros/codec"
	"tcpros/config"
	"tcpros/header"
	"tcpros/logging"
	"tcpros/service"
)

// Client performs TCPROS service calls against one named endpoint. A Client
// value carries only immutable configuration (service.ClientInfo, the
// service.Pair descriptor, dial options, and a logger) — no connection state
// is kept between calls, so a Client is cheaply shareable across goroutines
// and a clone of it is an entirely independent session.
type Client[Req codec.Encodable, Resp any, RespPtr service.DecodablePtr[Resp]] struct {
	info   service.ClientInfo
	pair   service.Pair[Req, Resp, RespPtr]
	dial   config.DialOptions
	logger *logging.Logger

	// testConn, when set, is returned by connect() in place of dialing a
	// real socket. Only test code in this package sets it.
	testConn net.Conn
}

// New constructs a Client. It performs no I/O.
func New[Req codec.Encodable, Resp any, RespPtr service.DecodablePtr[Resp]](
	info service.ClientInfo,
	pair service.Pair[Req, Resp, RespPtr],
	dial config.DialOptions,
	logger *logging.Logger,
) *Client[Req, Resp, RespPtr] {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Client[Req, Resp, RespPtr]{info: info, pair: pair, dial: dial, logger: logger}
}

// Req performs a synchronous service call: it blocks until the remote has
// fully responded or a transport fault terminates the call.
func (c *Client[Req, Resp, RespPtr]) Req(request Req) (service.Result[Resp], error) {
	var zero service.Result[Resp]

	id := logging.NewCallID()
	start := c.logger.Start(id, c.info.Service, c.info.URI)

	conn, err := c.connect()
	if err != nil {
		c.logger.Failed(id, start, err)
		return zero, err
	}
	defer conn.Close()
	c.logger.Step(id, "connected")

	if err := c.writeRequestHeaders(conn); err != nil {
		c.logger.Failed(id, start, err)
		return zero, err
	}
	c.logger.Step(id, "wrote-headers")

	if err := c.readResponseHeaders(conn); err != nil {
		c.logger.Failed(id, start, err)
		return zero, err
	}
	c.logger.Step(id, "read-headers")

	if err := c.writeRequestBody(conn, request); err != nil {
		c.logger.Failed(id, start, err)
		return zero, err
	}
	c.logger.Step(id, "wrote-body")

	result, err := c.readResponse(conn)
	if err != nil {
		c.logger.Failed(id, start, err)
		return zero, err
	}
	c.logger.Succeeded(id, start)
	return result, nil
}

// connect strips the rosrpc:// scheme (if present) and opens a TCP
// connection, applying the configured deadlines for the remainder of the
// call's blocking steps.
func (c *Client[Req, Resp, RespPtr]) connect() (net.Conn, error) {
	if c.testConn != nil {
		return c.testConn, nil
	}

	addr := strings.TrimPrefix(c.info.URI, "rosrpc://")

	var conn net.Conn
	var err error
	if c.dial.ConnectTimeout > 0 {
		conn, err = net.DialTimeout("tcp", addr, c.dial.ConnectTimeout)
	} else {
		conn, err = net.Dial("tcp", addr)
	}
	if err != nil {
		return nil, &clienterr.ConnectionFailError{Service: c.info.Service, URI: c.info.URI, Err: err}
	}

	if c.dial.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(c.dial.ReadTimeout))
	}
	if c.dial.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(c.dial.WriteTimeout))
	}
	return conn, nil
}

func (c *Client[Req, Resp, RespPtr]) writeRequestHeaders(conn net.Conn) error {
	fields := header.Fields{
		"callerid": c.info.CallerID,
		"service":  c.info.Service,
		"md5sum":   c.pair.MD5Sum,
		"type":     c.pair.MsgType,
	}
	return header.Encode(conn, fields)
}

func (c *Client[Req, Resp, RespPtr]) readResponseHeaders(conn net.Conn) error {
	fields, err := header.Decode(conn)
	if err != nil {
		return err
	}
	if _, ok := fields["callerid"]; !ok {
		return &clienterr.HeaderMissingFieldError{Field: "callerid"}
	}
	return nil
}

// writeRequestBody reserves 4 bytes at the start of an in-memory buffer,
// encodes the request value, then writes the body length (total bytes
// written after the prefix) into the reserved prefix, flushing the whole
// buffer as a single write.
func (c *Client[Req, Resp, RespPtr]) writeRequestBody(conn net.Conn, request Req) error {
	enc := codec.NewEncoder()
	if err := request.EncodeTo(enc); err != nil {
		return err
	}
	body := enc.Bytes()

	buf := make([]byte, 4+len(body))
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(body)))
	copy(buf[4:], body)

	_, err := conn.Write(buf)
	return err
}

// readResponse reads the single verification byte, then either the success
// path (discard advisory length, decode Response) or the failure path
// (decode a length-prefixed failure string).
func (c *Client[Req, Resp, RespPtr]) readResponse(conn net.Conn) (service.Result[Resp], error) {
	var zero service.Result[Resp]

	var verification [1]byte
	if _, err := io.ReadFull(conn, verification[:]); err != nil {
		return zero, &clienterr.ResponseInterruptionError{Err: err}
	}

	dec := codec.NewDecoder(conn)
	if verification[0] != 0 {
		// The body-length prefix here is advisory only (see DESIGN.md):
		// it is read and discarded rather than used to bound the decode
		// that follows.
		if _, err := dec.ReadU32(); err != nil {
			return zero, err
		}
		resp, respPtr := c.pair.NewResponse()
		if err := respPtr.DecodeFrom(dec); err != nil {
			return zero, err
		}
		return service.Ok[Resp](resp), nil
	}

	msg, err := dec.ReadString()
	if err != nil {
		return zero, err
	}
	return service.Err[Resp](msg), nil
}
