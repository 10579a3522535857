// Package codec implements the length-prefixed little-endian binary codec
// used by the TCPROS wire format: a streaming Encoder that serializes
// primitives, strings, tuples, structs and homogeneous sequences into the
// exact byte layout a TCPROS peer expects, and a mirrored Decoder.
//
// The wire format is fixed-width and schema-less: admitting variable-shape
// values (options, maps, enums, platform-sized integers) would break peer
// compatibility, so the set of supported leaf and composite shapes is closed
// rather than an open extensibility point.
package codec

import "io"

// Encodable is implemented by any Request or Response value that participates
// in the codec contract (the ServicePair collaborator interface).
type Encodable interface {
	EncodeTo(e *Encoder) error
}

// Decodable is the mirror of Encodable for the decode direction.
type Decodable interface {
	DecodeFrom(d *Decoder) error
}

// Encoder accumulates an ordered sequence of byte chunks. Composite values
// (tuples, structs, sequences) reserve a chunk for their 4-byte length
// prefix before their content is known, then backfill it once the content
// has been written — this is why the state is a slice of chunks rather than
// a single growing buffer: a single buffer would require shifting everything
// after an insertion point, while a chunk list only needs the one placeholder
// slot overwritten.
type Encoder struct {
	chunks [][]byte
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Len reports the total number of bytes the Encoder would write.
func (e *Encoder) Len() int {
	total := 0
	for _, c := range e.chunks {
		total += len(c)
	}
	return total
}

// Bytes concatenates all chunks into a single contiguous slice.
func (e *Encoder) Bytes() []byte {
	out := make([]byte, 0, e.Len())
	for _, c := range e.chunks {
		out = append(out, c...)
	}
	return out
}

// WriteTo writes every chunk, in order, to w.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, c := range e.chunks {
		m, err := w.Write(c)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func (e *Encoder) pushChunk(b []byte) {
	e.chunks = append(e.chunks, b)
}

// reserve appends a placeholder chunk and returns its index so it can later
// be overwritten by backfillLength.
func (e *Encoder) reserve() int {
	e.chunks = append(e.chunks, nil)
	return len(e.chunks) - 1
}

// backfillLength overwrites the placeholder chunk at position with the
// 4-byte little-endian encoding of v.
func (e *Encoder) backfillLength(position int, v uint32) {
	e.chunks[position] = encodeU32(v)
}

// lengthFrom sums the byte length of every chunk at index position or later.
func (e *Encoder) lengthFrom(position int) int {
	total := 0
	for _, c := range e.chunks[position:] {
		total += len(c)
	}
	return total
}

// Decoder is a cursor over an io.Reader that consumes leaf widths in the
// order dictated by the codec's traversal rules. It does not validate outer
// size prefixes against consumed bytes — it relies on leaf widths and
// element counts to determine consumption, treating the outer length as
// advisory (see DESIGN.md).
type Decoder struct {
	r io.Reader
}

// NewDecoder wraps r in a Decoder. r is typically a net.Conn (the service
// client decodes directly off the wire) or a bytes.Reader in tests.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

func (d *Decoder) readFull(buf []byte) error {
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return &EndOfBufferError{Err: err}
	}
	return nil
}
