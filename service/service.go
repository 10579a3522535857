// Package service defines the static description of a TCPROS service type
// and the small immutable value types the client layer shares across calls.
package service

import "tcpros/codec"

// DecodablePtr constrains a pointer type whose pointee is Resp and which
// itself implements the decode half of the codec contract — the standard
// Go generics idiom for "give me a type I can both allocate a zero value of
// and decode into via its pointer receiver".
type DecodablePtr[Resp any] interface {
	*Resp
	codec.Decodable
}

// Pair is the static description of one request/response service type: a
// stable content-hash string used as the peer's type-compatibility check, a
// canonical textual type name, and the Go types participating in the codec
// contract. One Pair value exists per service type and is never mutated.
type Pair[Req codec.Encodable, Resp any, RespPtr DecodablePtr[Resp]] struct {
	MD5Sum  string
	MsgType string
}

// NewResponse allocates a zero Response value and returns it through its
// decodable pointer, ready for Decoder.ReadComposite or direct field reads.
func (Pair[Req, Resp, RespPtr]) NewResponse() (Resp, RespPtr) {
	var resp Resp
	return resp, RespPtr(&resp)
}

// ClientInfo is the immutable {caller identity, endpoint URI, service name}
// triple shared across every call made through a Client. It is never
// mutated after construction, so a Client value is cheaply shareable.
type ClientInfo struct {
	CallerID string
	URI      string
	Service  string
}

// Result is a two-variant outcome distinct from transport-level errors: Ok
// carries a decoded response, Err carries a server-side failure message.
// Callers must handle both this axis (service-level outcome) and the
// transport-level error axis (the Go error returned alongside Result)
// separately — a well-formed response the server itself rejected is a
// Result, not a Go error.
type Result[T any] struct {
	value T
	msg   string
	ok    bool
}

// Ok builds a successful Result carrying the decoded response.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Err builds a failed Result carrying the server's failure message.
func Err[T any](msg string) Result[T] {
	return Result[T]{msg: msg, ok: false}
}

// IsOk reports whether the service accepted the call.
func (r Result[T]) IsOk() bool { return r.ok }

// Value returns the decoded response and true if the call succeeded, or the
// zero value and false otherwise.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.ok
}

// Message returns the server's failure string and true if the call failed,
// or the empty string and false otherwise.
func (r Result[T]) Message() (string, bool) {
	return r.msg, !r.ok
}
