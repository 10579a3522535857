package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedBytes(t *testing.T, fn func(e *Encoder) error) []byte {
	t.Helper()
	e := NewEncoder()
	require.NoError(t, fn(e))
	return e.Bytes()
}

func TestEncoderStartsEmpty(t *testing.T) {
	e := NewEncoder()
	assert.Equal(t, 0, e.Len())
}

func TestWriteU8(t *testing.T) {
	data := encodedBytes(t, func(e *Encoder) error { return e.WriteU8(150) })
	assert.Equal(t, []byte{150}, data)
}

func TestWriteU16(t *testing.T) {
	data := encodedBytes(t, func(e *Encoder) error { return e.WriteU16(0xA234) })
	assert.Equal(t, []byte{0x34, 0xA2}, data)
}

func TestWriteU32(t *testing.T) {
	data := encodedBytes(t, func(e *Encoder) error { return e.WriteU32(0xCD012345) })
	assert.Equal(t, []byte{0x45, 0x23, 0x01, 0xCD}, data)
}

func TestWriteU64(t *testing.T) {
	data := encodedBytes(t, func(e *Encoder) error { return e.WriteU64(0xAB9876543210AABB) })
	assert.Equal(t, []byte{0xBB, 0xAA, 0x10, 0x32, 0x54, 0x76, 0x98, 0xAB}, data)
}

func TestWriteI8(t *testing.T) {
	data := encodedBytes(t, func(e *Encoder) error { return e.WriteI8(-100) })
	assert.Equal(t, []byte{156}, data)
}

func TestWriteI16(t *testing.T) {
	data := encodedBytes(t, func(e *Encoder) error { return e.WriteI16(-30000) })
	assert.Equal(t, []byte{0xD0, 0x8A}, data)
}

func TestWriteI32(t *testing.T) {
	data := encodedBytes(t, func(e *Encoder) error { return e.WriteI32(-2000000000) })
	assert.Equal(t, []byte{0x00, 0x6C, 0xCA, 0x88}, data)
}

func TestWriteI64(t *testing.T) {
	data := encodedBytes(t, func(e *Encoder) error { return e.WriteI64(-9000000000000000000) })
	assert.Equal(t, []byte{0x00, 0x00, 0x7c, 0x1d, 0xaf, 0x93, 0x19, 0x83}, data)
}

func TestWriteF32(t *testing.T) {
	data := encodedBytes(t, func(e *Encoder) error { return e.WriteF32(1005.75) })
	assert.Equal(t, []byte{0x00, 0x70, 0x7b, 0x44}, data)
}

func TestWriteF64(t *testing.T) {
	data := encodedBytes(t, func(e *Encoder) error { return e.WriteF64(1005.75) })
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x6e, 0x8f, 0x40}, data)
}

func TestWriteBool(t *testing.T) {
	assert.Equal(t, []byte{1}, encodedBytes(t, func(e *Encoder) error { return e.WriteBool(true) }))
	assert.Equal(t, []byte{0}, encodedBytes(t, func(e *Encoder) error { return e.WriteBool(false) }))
}

func TestWriteString(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 0, 0}, encodedBytes(t, func(e *Encoder) error { return e.WriteString("") }))

	want := []byte{13, 0, 0, 0, 72, 101, 108, 108, 111, 44, 32, 87, 111, 114, 108, 100, 33}
	got := encodedBytes(t, func(e *Encoder) error { return e.WriteString("Hello, World!") })
	assert.Equal(t, want, got)
}

func TestWriteSequenceOfI16(t *testing.T) {
	values := []int16{7, 1025, 33, 57}
	data := encodedBytes(t, func(e *Encoder) error {
		return e.WriteSequence(len(values), func(e *Encoder, i int) error {
			return e.WriteI16(values[i])
		})
	})
	want := []byte{12, 0, 0, 0, 4, 0, 0, 0, 7, 0, 1, 4, 33, 0, 57, 0}
	assert.Equal(t, want, data)
}

// TestWriteTuple encodes a tuple of (i16, bool, u8, string, []bool).
func TestWriteTuple(t *testing.T) {
	data := encodedBytes(t, func(e *Encoder) error {
		return e.WriteTuple(func(e *Encoder) error {
			if err := e.WriteI16(2050); err != nil {
				return err
			}
			if err := e.WriteBool(true); err != nil {
				return err
			}
			if err := e.WriteU8(7); err != nil {
				return err
			}
			if err := e.WriteString("ABC012"); err != nil {
				return err
			}
			bools := []bool{true, false, false, true}
			return e.WriteSequence(len(bools), func(e *Encoder, i int) error {
				return e.WriteBool(bools[i])
			})
		})
	})
	want := []byte{
		26, 0, 0, 0,
		2, 8,
		1,
		7,
		6, 0, 0, 0, 65, 66, 67, 48, 49, 50,
		8, 0, 0, 0, 4, 0, 0, 0, 1, 0, 0, 1,
	}
	assert.Equal(t, want, data)
}

type testStructOne struct {
	A int16
	B bool
	C uint8
	D string
	E []bool
}

func (s *testStructOne) EncodeTo(e *Encoder) error {
	return e.WriteStruct(func(e *Encoder) error {
		if err := e.WriteI16(s.A); err != nil {
			return err
		}
		if err := e.WriteBool(s.B); err != nil {
			return err
		}
		if err := e.WriteU8(s.C); err != nil {
			return err
		}
		if err := e.WriteString(s.D); err != nil {
			return err
		}
		return e.WriteSequence(len(s.E), func(e *Encoder, i int) error {
			return e.WriteBool(s.E[i])
		})
	})
}

func TestWriteSimpleStruct(t *testing.T) {
	s := &testStructOne{A: 2050, B: true, C: 7, D: "ABC012", E: []bool{true, false, false, true}}
	e := NewEncoder()
	require.NoError(t, s.EncodeTo(e))
	want := []byte{
		26, 0, 0, 0,
		2, 8,
		1,
		7,
		6, 0, 0, 0, 65, 66, 67, 48, 49, 50,
		8, 0, 0, 0, 4, 0, 0, 0, 1, 0, 0, 1,
	}
	assert.Equal(t, want, e.Bytes())
}

type testStructPart struct {
	A string
	B bool
}

func (p *testStructPart) EncodeTo(e *Encoder) error {
	return e.WriteStruct(func(e *Encoder) error {
		if err := e.WriteString(p.A); err != nil {
			return err
		}
		return e.WriteBool(p.B)
	})
}

type testStructBig struct {
	A []*testStructPart
	B string
}

func (s *testStructBig) EncodeTo(e *Encoder) error {
	return e.WriteStruct(func(e *Encoder) error {
		if err := e.WriteSequence(len(s.A), func(e *Encoder, i int) error {
			return s.A[i].EncodeTo(e)
		}); err != nil {
			return err
		}
		return e.WriteString(s.B)
	})
}

func TestWriteComplexStruct(t *testing.T) {
	s := &testStructBig{
		A: []*testStructPart{
			{A: "ABC", B: true},
			{A: "1!!!!", B: true},
			{A: "234b", B: false},
		},
		B: "EEe",
	}
	e := NewEncoder()
	require.NoError(t, s.EncodeTo(e))
	want := []byte{
		54, 0, 0, 0, 43, 0, 0, 0, 3, 0, 0, 0, 8, 0, 0, 0, 3, 0, 0, 0, 65, 66, 67,
		1, 10, 0, 0, 0, 5, 0, 0, 0, 49, 33, 33, 33, 33, 1, 9, 0, 0, 0, 4, 0, 0,
		0, 50, 51, 52, 98, 0, 3, 0, 0, 0, 69, 69, 101,
	}
	assert.Equal(t, want, e.Bytes())
	assert.Equal(t, 58, e.Len())
}

// TestEncodeLengthInvariant checks that encode(v) begins with a 4-byte LE
// length equal to len(encode(v)) - 4.
func TestEncodeLengthInvariant(t *testing.T) {
	s := &testStructOne{A: 1, B: true, C: 2, D: "xyz", E: []bool{false, true}}
	e := NewEncoder()
	require.NoError(t, s.EncodeTo(e))
	data := e.Bytes()
	require.GreaterOrEqual(t, len(data), 4)

	prefix := uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
	assert.Equal(t, uint32(len(data)-4), prefix)
}

func TestUnsupportedLeavesFail(t *testing.T) {
	e := NewEncoder()
	assert.Error(t, e.WriteNil())
	assert.Error(t, e.WriteUint(0))
	assert.Error(t, e.WriteInt(0))
	assert.Error(t, e.WriteChar('x'))
	assert.Error(t, e.WriteOption(func(*Encoder) error { return nil }))
	assert.Error(t, e.WriteMap(0, func(*Encoder) error { return nil }))
	assert.Error(t, e.WriteEnum("x", func(*Encoder) error { return nil }))

	var unsupported *UnsupportedDataError
	assert.ErrorAs(t, e.WriteNil(), &unsupported)
}

// TestRoundTripPrimitives exercises every leaf width's decode path against
// its own encoding: round-trip is the identity.
func TestRoundTripPrimitives(t *testing.T) {
	e := NewEncoder()
	require.NoError(t, e.WriteU8(200))
	require.NoError(t, e.WriteI8(-5))
	require.NoError(t, e.WriteU16(4000))
	require.NoError(t, e.WriteI16(-4000))
	require.NoError(t, e.WriteU32(3000000000))
	require.NoError(t, e.WriteI32(-1))
	require.NoError(t, e.WriteU64(1 << 40))
	require.NoError(t, e.WriteI64(-123456789))
	require.NoError(t, e.WriteF32(3.5))
	require.NoError(t, e.WriteF64(-2.25))
	require.NoError(t, e.WriteBool(true))
	require.NoError(t, e.WriteString("round-trip"))

	d := NewDecoder(bytes.NewReader(e.Bytes()))
	u8, err := d.ReadU8()
	require.NoError(t, err)
	assert.EqualValues(t, 200, u8)

	i8, err := d.ReadI8()
	require.NoError(t, err)
	assert.EqualValues(t, -5, i8)

	u16, err := d.ReadU16()
	require.NoError(t, err)
	assert.EqualValues(t, 4000, u16)

	i16, err := d.ReadI16()
	require.NoError(t, err)
	assert.EqualValues(t, -4000, i16)

	u32, err := d.ReadU32()
	require.NoError(t, err)
	assert.EqualValues(t, 3000000000, u32)

	i32, err := d.ReadI32()
	require.NoError(t, err)
	assert.EqualValues(t, -1, i32)

	u64, err := d.ReadU64()
	require.NoError(t, err)
	assert.EqualValues(t, 1<<40, u64)

	i64, err := d.ReadI64()
	require.NoError(t, err)
	assert.EqualValues(t, -123456789, i64)

	f32, err := d.ReadF32()
	require.NoError(t, err)
	assert.EqualValues(t, 3.5, f32)

	f64, err := d.ReadF64()
	require.NoError(t, err)
	assert.EqualValues(t, -2.25, f64)

	b, err := d.ReadBool()
	require.NoError(t, err)
	assert.True(t, b)

	s, err := d.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "round-trip", s)
}

func TestDecodeShortReadFails(t *testing.T) {
	d := NewDecoder(bytes.NewReader([]byte{1, 2}))
	_, err := d.ReadU32()
	require.Error(t, err)
	var eob *EndOfBufferError
	assert.ErrorAs(t, err, &eob)
}

func TestDecodeInvalidUTF8Fails(t *testing.T) {
	// Length-prefixed string body containing an invalid UTF-8 byte.
	buf := append(encodeU32(1), 0xFF)
	d := NewDecoder(bytes.NewReader(buf))
	_, err := d.ReadString()
	require.Error(t, err)
	var invalid *InvalidStringError
	assert.ErrorAs(t, err, &invalid)
}

func (s *testStructOne) DecodeFrom(d *Decoder) error {
	return d.ReadComposite(func(d *Decoder) error {
		var err error
		if s.A, err = d.ReadI16(); err != nil {
			return err
		}
		if s.B, err = d.ReadBool(); err != nil {
			return err
		}
		if s.C, err = d.ReadU8(); err != nil {
			return err
		}
		if s.D, err = d.ReadString(); err != nil {
			return err
		}
		_, err = d.ReadSequence(func(d *Decoder, i int) error {
			v, err := d.ReadBool()
			if err != nil {
				return err
			}
			s.E = append(s.E, v)
			return nil
		})
		return err
	})
}

func TestStructRoundTrip(t *testing.T) {
	original := &testStructOne{A: 2050, B: true, C: 7, D: "ABC012", E: []bool{true, false, false, true}}
	e := NewEncoder()
	require.NoError(t, original.EncodeTo(e))

	decoded := &testStructOne{}
	d := NewDecoder(bytes.NewReader(e.Bytes()))
	require.NoError(t, decoded.DecodeFrom(d))
	assert.Equal(t, original, decoded)
}
