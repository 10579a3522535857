package client

import (
	"context"

	"tcpros/clienterr"
	"tcpros/codec"
	"tcpros/ratelimit"
	"tcpros/service"
)

// ClientResponse owns a worker goroutine's eventual outcome. It is
// single-use: Read (or Callback, which calls Read internally) consumes the
// handle and must not be called twice.
type ClientResponse[Resp any] struct {
	done chan asyncOutcome[Resp]
}

type asyncOutcome[Resp any] struct {
	result service.Result[Resp]
	err    error
}

// ReqAsync spawns a worker performing the identical state machine of Req on
// a dedicated goroutine and returns immediately with a handle.
func (c *Client[Req, Resp, RespPtr]) ReqAsync(request Req) *ClientResponse[Resp] {
	ch := make(chan asyncOutcome[Resp], 1)
	go func() {
		defer close(ch)
		defer func() {
			if recover() != nil {
				ch <- asyncOutcome[Resp]{err: &clienterr.ResponseUnknownError{}}
			}
		}()
		result, err := c.Req(request)
		ch <- asyncOutcome[Resp]{result: result, err: err}
	}()
	return &ClientResponse[Resp]{done: ch}
}

// Read blocks until the worker completes and returns its exact outcome. If
// the worker terminated abnormally (panicked), Read returns
// ResponseUnknownError rather than propagating the panic.
func (h *ClientResponse[Resp]) Read() (service.Result[Resp], error) {
	outcome, ok := <-h.done
	if !ok {
		return service.Result[Resp]{}, &clienterr.ResponseUnknownError{}
	}
	return outcome.result, outcome.err
}

// Callback schedules a second worker that performs the blocking join, then
// invokes fn with the outcome. fn runs on that second worker's goroutine —
// never on the caller's goroutine.
func (h *ClientResponse[Resp]) Callback(fn func(service.Result[Resp], error)) {
	go func() {
		result, err := h.Read()
		fn(result, err)
	}()
}

// BoundedClient wraps a Client so that ReqAsync is subject to admission
// control: the caller blocks on the limiter before a worker is spawned,
// bounding the rate at which async calls are started (a completed call does
// not give its token back, so calls in flight are not counted). Plain Req and
// a BoundedClient's underlying Client are unaffected — only async fan-out
// is bounded.
type BoundedClient[Req codec.Encodable, Resp any, RespPtr service.DecodablePtr[Resp]] struct {
	*Client[Req, Resp, RespPtr]
	limiter *ratelimit.Limiter
}

// BoundAsync decorates c with an admission limiter for req_async calls.
func (c *Client[Req, Resp, RespPtr]) BoundAsync(limiter *ratelimit.Limiter) *BoundedClient[Req, Resp, RespPtr] {
	return &BoundedClient[Req, Resp, RespPtr]{Client: c, limiter: limiter}
}

// ReqAsync blocks on the limiter's admission token, then spawns a worker
// exactly as Client.ReqAsync does.
func (b *BoundedClient[Req, Resp, RespPtr]) ReqAsync(ctx context.Context, request Req) (*ClientResponse[Resp], error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return b.Client.ReqAsync(request), nil
}
