// Package mbuf provides cursor-based reading and writing of binary
// primitives over in-memory buffers.
//
// A Reader wraps a caller-owned byte slice and decodes fixed-width
// integers, floats, strings and raw byte ranges sequentially, advancing a
// cursor by the exact width of each operation. A Writer owns a growable
// buffer and encodes the same primitives, resizing transparently and
// tracking the high-water mark of written bytes so sparse writes and
// placeholder back-patching work naturally.
//
// Neither type is safe for concurrent use; callers sharing an instance
// across goroutines must synchronize externally.
package mbuf

// Encoder is implemented by types that can encode themselves to a Writer.
type Encoder interface {
	Encode(w *Writer) error
}

// Decoder is implemented by types that can decode themselves from a Reader.
type Decoder interface {
	Decode(r *Reader) error
}

type EncodeDecoder interface {
	Encoder
	Decoder
}
