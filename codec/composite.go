package codec

// WriteStruct serializes a struct's fields as a tuple of its fields in
// declaration order: a 4-byte LE size prefix of the total serialized field
// content, then the field bytes in order. Field names are never written —
// only the codec's traversal order determines layout, so the caller's fn
// must invoke the same Write* calls in the same order on every call.
func (e *Encoder) WriteStruct(fn func(e *Encoder) error) error {
	return e.writeLengthPrefixed(fn)
}

// WriteTuple has byte-identical layout to WriteStruct: reserve a slot for a
// 4-byte LE size prefix, encode each element in order, then backfill the
// prefix with the count of bytes written after it.
func (e *Encoder) WriteTuple(fn func(e *Encoder) error) error {
	return e.writeLengthPrefixed(fn)
}

func (e *Encoder) writeLengthPrefixed(fn func(e *Encoder) error) error {
	placeholder := e.reserve()
	start := len(e.chunks)
	if err := fn(e); err != nil {
		return err
	}
	e.backfillLength(placeholder, uint32(e.lengthFrom(start)))
	return nil
}

// WriteSequence serializes a homogeneous sequence: reserve a slot for a
// 4-byte LE outer byte-size prefix, write a 4-byte LE element-count, encode
// each element via elem, then backfill the outer prefix with the total bytes
// that followed it (including the element-count's own 4 bytes).
func (e *Encoder) WriteSequence(n int, elem func(e *Encoder, i int) error) error {
	return e.writeLengthPrefixed(func(e *Encoder) error {
		if err := e.WriteU32(uint32(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := elem(e, i); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadComposite consumes a tuple or struct: it reads and discards the
// 4-byte outer length prefix (treated as advisory — see DESIGN.md) and then
// runs fn to consume the fields.
func (d *Decoder) ReadComposite(fn func(d *Decoder) error) error {
	if _, err := d.ReadU32(); err != nil {
		return err
	}
	return fn(d)
}

// ReadSequence consumes a homogeneous sequence: it reads and discards the
// outer byte-size prefix, reads the 4-byte element count, then invokes elem
// once per element. It returns the element count actually read.
func (d *Decoder) ReadSequence(elem func(d *Decoder, i int) error) (int, error) {
	if _, err := d.ReadU32(); err != nil { // outer byte-size prefix, advisory only
		return 0, err
	}
	n, err := d.ReadU32()
	if err != nil {
		return 0, err
	}
	for i := 0; i < int(n); i++ {
		if err := elem(d, i); err != nil {
			return i, err
		}
	}
	return int(n), nil
}
