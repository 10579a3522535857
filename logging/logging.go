// Package logging instruments the service client's call lifecycle.
//
// A call is a fixed sequence of state-machine transitions rather than a
// pluggable handler chain, so instrumentation here is a small set of
// explicit call sites in client.Client.Req instead of a decorator.
package logging

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
)

// Logger emits one line per state-machine transition of a single call,
// tagged with a per-call correlation ID so interleaved concurrent calls
// (independent clones of the same Client) remain distinguishable in a
// shared log stream.
type Logger struct {
	out *log.Logger
}

// New returns a Logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{out: log.New(w, "", log.LstdFlags)}
}

// Default returns a Logger writing to stderr.
func Default() *Logger {
	return New(os.Stderr)
}

// Nop returns a Logger that discards everything, for tests and callers that
// don't want call-lifecycle logging.
func Nop() *Logger {
	return New(io.Discard)
}

// CallID is a per-call correlation ID, attached to every log line emitted
// while that call's state machine runs.
type CallID string

// NewCallID mints a fresh correlation ID for a single req/req_async
// invocation.
func NewCallID() CallID {
	return CallID(uuid.NewString())
}

// Start logs the beginning of a call and returns the time it started, to be
// passed back to Succeeded or Failed for duration accounting.
func (l *Logger) Start(id CallID, service, uri string) time.Time {
	start := time.Now()
	if l != nil && l.out != nil {
		l.out.Printf("call=%s service=%s uri=%s state=start", id, service, uri)
	}
	return start
}

// Step logs an intermediate state-machine transition (connect, handshake
// write, handshake read, body write). The verification read and response
// decode are reported by Succeeded or Failed.
func (l *Logger) Step(id CallID, state string) {
	if l != nil && l.out != nil {
		l.out.Printf("call=%s state=%s", id, state)
	}
}

// Succeeded logs that the call produced a service.Result (success or
// server-reported failure both count — this only tracks that the transport
// layer completed, not the service-level outcome).
func (l *Logger) Succeeded(id CallID, start time.Time) {
	if l != nil && l.out != nil {
		l.out.Printf("call=%s state=done duration=%s result=ok", id, time.Since(start))
	}
}

// Failed logs a transport-level failure that terminated the call.
func (l *Logger) Failed(id CallID, start time.Time, err error) {
	if l != nil && l.out != nil {
		l.out.Printf("call=%s state=done duration=%s result=error error=%v", id, time.Since(start), err)
	}
}
