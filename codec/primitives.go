package codec

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

func encodeU16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func encodeU32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func encodeU64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// WriteU8 writes a single unsigned byte.
func (e *Encoder) WriteU8(v uint8) error {
	e.pushChunk([]byte{v})
	return nil
}

// WriteI8 writes a single signed byte, two's-complement.
func (e *Encoder) WriteI8(v int8) error {
	e.pushChunk([]byte{byte(v)})
	return nil
}

// WriteU16 writes a 2-byte little-endian unsigned integer.
func (e *Encoder) WriteU16(v uint16) error {
	e.pushChunk(encodeU16(v))
	return nil
}

// WriteI16 writes a 2-byte little-endian signed integer.
func (e *Encoder) WriteI16(v int16) error {
	e.pushChunk(encodeU16(uint16(v)))
	return nil
}

// WriteU32 writes a 4-byte little-endian unsigned integer.
func (e *Encoder) WriteU32(v uint32) error {
	e.pushChunk(encodeU32(v))
	return nil
}

// WriteI32 writes a 4-byte little-endian signed integer.
func (e *Encoder) WriteI32(v int32) error {
	e.pushChunk(encodeU32(uint32(v)))
	return nil
}

// WriteU64 writes an 8-byte little-endian unsigned integer.
func (e *Encoder) WriteU64(v uint64) error {
	e.pushChunk(encodeU64(v))
	return nil
}

// WriteI64 writes an 8-byte little-endian signed integer.
func (e *Encoder) WriteI64(v int64) error {
	e.pushChunk(encodeU64(uint64(v)))
	return nil
}

// WriteF32 writes a 4-byte IEEE-754 little-endian float.
func (e *Encoder) WriteF32(v float32) error {
	e.pushChunk(encodeU32(math.Float32bits(v)))
	return nil
}

// WriteF64 writes an 8-byte IEEE-754 little-endian float.
func (e *Encoder) WriteF64(v float64) error {
	e.pushChunk(encodeU64(math.Float64bits(v)))
	return nil
}

// WriteBool writes a single byte: 1 for true, 0 for false.
func (e *Encoder) WriteBool(v bool) error {
	if v {
		e.pushChunk([]byte{1})
	} else {
		e.pushChunk([]byte{0})
	}
	return nil
}

// WriteString writes a 4-byte LE length prefix followed by the raw UTF-8 bytes.
func (e *Encoder) WriteString(v string) error {
	data := []byte(v)
	e.pushChunk(encodeU32(uint32(len(data))))
	e.pushChunk(data)
	return nil
}

// The following leaf kinds are outside the closed set this wire format
// admits. Each fails immediately with UnsupportedDataError so callers get a
// consistent, typed signal rather than a panic or a silently wrong encoding.

// WriteNil always fails: the wire format has no unit/nil representation.
func (e *Encoder) WriteNil() error {
	return &UnsupportedDataError{Kind: "nil"}
}

// WriteUint always fails: platform-sized integers have ambiguous width
// across peers running on different architectures.
func (e *Encoder) WriteUint(uint) error {
	return &UnsupportedDataError{Kind: "usize"}
}

// WriteInt always fails, for the same reason as WriteUint.
func (e *Encoder) WriteInt(int) error {
	return &UnsupportedDataError{Kind: "isize"}
}

// WriteChar always fails: callers must expose a char as a string or a u32.
func (e *Encoder) WriteChar(rune) error {
	return &UnsupportedDataError{Kind: "char"}
}

// WriteOption always fails: the wire format has no nullable/optional shape.
func (e *Encoder) WriteOption(func(*Encoder) error) error {
	return &UnsupportedDataError{Kind: "option"}
}

// WriteMap always fails: the wire format has no keyed-collection shape.
func (e *Encoder) WriteMap(int, func(*Encoder) error) error {
	return &UnsupportedDataError{Kind: "map"}
}

// WriteEnum always fails: the wire format has no discriminated-variant shape.
func (e *Encoder) WriteEnum(string, func(*Encoder) error) error {
	return &UnsupportedDataError{Kind: "enum"}
}

// ReadU8 reads a single unsigned byte.
func (d *Decoder) ReadU8() (uint8, error) {
	var buf [1]byte
	if err := d.readFull(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadI8 reads a single signed byte.
func (d *Decoder) ReadI8() (int8, error) {
	v, err := d.ReadU8()
	return int8(v), err
}

// ReadU16 reads a 2-byte little-endian unsigned integer.
func (d *Decoder) ReadU16() (uint16, error) {
	var buf [2]byte
	if err := d.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// ReadI16 reads a 2-byte little-endian signed integer.
func (d *Decoder) ReadI16() (int16, error) {
	v, err := d.ReadU16()
	return int16(v), err
}

// ReadU32 reads a 4-byte little-endian unsigned integer.
func (d *Decoder) ReadU32() (uint32, error) {
	var buf [4]byte
	if err := d.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadI32 reads a 4-byte little-endian signed integer.
func (d *Decoder) ReadI32() (int32, error) {
	v, err := d.ReadU32()
	return int32(v), err
}

// ReadU64 reads an 8-byte little-endian unsigned integer.
func (d *Decoder) ReadU64() (uint64, error) {
	var buf [8]byte
	if err := d.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// ReadI64 reads an 8-byte little-endian signed integer.
func (d *Decoder) ReadI64() (int64, error) {
	v, err := d.ReadU64()
	return int64(v), err
}

// ReadF32 reads a 4-byte IEEE-754 little-endian float.
func (d *Decoder) ReadF32() (float32, error) {
	v, err := d.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadF64 reads an 8-byte IEEE-754 little-endian float.
func (d *Decoder) ReadF64() (float64, error) {
	v, err := d.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadBool reads a single byte: any nonzero value decodes to true.
func (d *Decoder) ReadBool() (bool, error) {
	v, err := d.ReadU8()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// ReadString reads a 4-byte LE length prefix followed by that many raw bytes,
// validated as UTF-8.
func (d *Decoder) ReadString() (string, error) {
	n, err := d.ReadU32()
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if err := d.readFull(buf); err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", &InvalidStringError{Err: errInvalidUTF8}
	}
	return string(buf), nil
}

var errInvalidUTF8 = &invalidUTF8Error{}

type invalidUTF8Error struct{}

func (*invalidUTF8Error) Error() string { return "invalid UTF-8 byte sequence" }
