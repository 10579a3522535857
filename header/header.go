// Package header implements the TCPROS connection-header codec: a mapping
// of string field names to byte values, framed for the handshake exchange
// that precedes every service call.
//
// Wire format:
//
//	┌──────────────┬───────┬───────┬─────┐
//	│ totalLen(u32)│ entry │ entry │ ... │
//	└──────────────┴───────┴───────┴─────┘
//
// Each entry is itself a 4-byte LE length followed by that many raw bytes of
// the form "key=value" (split on the first '='; no escaping). Field order on
// the wire carries no meaning.
package header

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Fields is a header field-name to field-value mapping.
type Fields map[string]string

// MalformedFieldError is returned when a decoded entry has no '=' separator.
type MalformedFieldError struct {
	Entry string
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("header: malformed field entry %q: missing '='", e.Entry)
}

// DuplicateFieldError is returned when the same field name appears twice.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("header: duplicate field %q", e.Field)
}

// TruncatedError is returned when an entry's declared length runs past the
// end of the framed header body.
type TruncatedError struct{}

func (e *TruncatedError) Error() string { return "header: truncated entry" }

// Encode writes fields to w in field-name sorted order, for reproducible
// output; the wire format itself attaches no meaning to field order.
func Encode(w io.Writer, fields Fields) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var body bytes.Buffer
	for _, k := range keys {
		entry := k + "=" + fields[k]
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(entry)))
		body.Write(lenBuf[:])
		body.WriteString(entry)
	}

	var totalBuf [4]byte
	binary.LittleEndian.PutUint32(totalBuf[:], uint32(body.Len()))
	if _, err := w.Write(totalBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

// Decode reads a framed header from r and returns its fields. An entry
// lacking '=' or a duplicate key is a malformed header and is fatal.
func Decode(r io.Reader) (Fields, error) {
	var totalBuf [4]byte
	if _, err := io.ReadFull(r, totalBuf[:]); err != nil {
		return nil, err
	}
	total := binary.LittleEndian.Uint32(totalBuf[:])

	body := make([]byte, total)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}

	fields := make(Fields)
	pos := 0
	for pos < len(body) {
		if pos+4 > len(body) {
			return nil, &TruncatedError{}
		}
		entryLen := int(binary.LittleEndian.Uint32(body[pos : pos+4]))
		pos += 4
		if pos+entryLen > len(body) {
			return nil, &TruncatedError{}
		}
		entry := string(body[pos : pos+entryLen])
		pos += entryLen

		idx := strings.IndexByte(entry, '=')
		if idx < 0 {
			return nil, &MalformedFieldError{Entry: entry}
		}
		key, value := entry[:idx], entry[idx+1:]
		if _, exists := fields[key]; exists {
			return nil, &DuplicateFieldError{Field: key}
		}
		fields[key] = value
	}
	return fields, nil
}
