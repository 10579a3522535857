package codec

import "fmt"

// UnsupportedDataError is returned when the caller asks the codec to encode
// or decode a value shape outside the closed set the wire format admits:
// nil/unit, platform-sized integers, char, optionals, maps, enum variants.
type UnsupportedDataError struct {
	Kind string
}

func (e *UnsupportedDataError) Error() string {
	return fmt.Sprintf("codec: unsupported data shape: %s", e.Kind)
}

// EndOfBufferError is returned when a leaf read runs past the available bytes.
type EndOfBufferError struct {
	Err error
}

func (e *EndOfBufferError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("codec: end of buffer: %v", e.Err)
	}
	return "codec: end of buffer"
}

func (e *EndOfBufferError) Unwrap() error { return e.Err }

// InvalidStringError is returned when a decoded string is not valid UTF-8.
type InvalidStringError struct {
	Err error
}

func (e *InvalidStringError) Error() string {
	return fmt.Sprintf("codec: invalid string: %v", e.Err)
}

func (e *InvalidStringError) Unwrap() error { return e.Err }
