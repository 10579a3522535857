package logging

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerEmitsCallLifecycle(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	id := NewCallID()

	start := l.Start(id, "/add_two_ints", "rosrpc://localhost:11311")
	l.Step(id, "connect")
	l.Succeeded(id, start)

	out := buf.String()
	assert.Contains(t, out, string(id))
	assert.Contains(t, out, "state=start")
	assert.Contains(t, out, "state=connect")
	assert.Contains(t, out, "result=ok")
}

func TestLoggerFailed(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	id := NewCallID()
	start := l.Start(id, "svc", "uri")
	l.Failed(id, start, errors.New("boom"))
	assert.True(t, strings.Contains(buf.String(), "result=error"))
}

func TestNopLoggerWritesNothing(t *testing.T) {
	l := Nop()
	id := NewCallID()
	start := l.Start(id, "svc", "uri")
	l.Succeeded(id, start)
	assert.Equal(t, io.Discard, l.out.Writer())
}
