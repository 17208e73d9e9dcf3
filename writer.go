package mbuf

import (
	"math"

	"github.com/pkg/errors"
)

const (
	// defaultSize is the buffer capacity used by NewWriter.
	defaultSize = 256

	// growChunk bounds growth: buffers at or above this capacity grow by a
	// fixed increment instead of doubling.
	growChunk = 2048
)

// Writer encodes binary primitives into a growable, zero-filled buffer at a
// movable cursor, tracking the high-water mark of written bytes. The
// exported result is exactly the first high-water-mark bytes, regardless of
// cursor position or allocated capacity.
//
// Write operations cannot fail; buffer growth is transparent and an
// allocation failure is the runtime's out-of-memory panic.
type Writer struct {
	buf       []byte
	cursor    int
	maxCursor int
}

// NewWriter returns a Writer with the default initial capacity.
func NewWriter() *Writer {
	return NewWriterSize(defaultSize)
}

// NewWriterSize returns a Writer whose buffer starts with capacity size.
// A negative size is treated as zero.
func NewWriterSize(size int) *Writer {
	if size < 0 {
		size = 0
	}
	return &Writer{buf: make([]byte, size)}
}

// Pos returns the current cursor offset.
func (w *Writer) Pos() int {
	return w.cursor
}

// Len returns the high-water mark: the length of the output Bytes returns.
func (w *Writer) Len() int {
	return w.maxCursor
}

// Cap returns the allocated capacity of the backing buffer.
func (w *Writer) Cap() int {
	return len(w.buf)
}

// ensure grows the buffer so that at least need bytes are addressable.
// Capacity below growChunk doubles; above it grows by a fixed increment.
// Either way the result is overridden with need when still short, which
// also covers doubling from a zero capacity.
func (w *Writer) ensure(need int) {
	if need <= len(w.buf) {
		return
	}
	c := len(w.buf)
	if c >= growChunk {
		c += growChunk
	} else {
		c *= 2
	}
	if c < need {
		c = need
	}
	next := make([]byte, c)
	copy(next, w.buf)
	w.buf = next
}

// reserve grows for an n-byte write at the cursor, advances the cursor and
// updates the high-water mark, returning the slice to encode into.
func (w *Writer) reserve(n int) []byte {
	w.ensure(w.cursor + n)
	b := w.buf[w.cursor : w.cursor+n]
	w.cursor += n
	if w.cursor > w.maxCursor {
		w.maxCursor = w.cursor
	}
	return b
}

// Seek repositions the cursor to an absolute non-negative offset, which may
// lie beyond the high-water mark for sparse or placeholder writes. Capacity
// is grown to cover the offset so later writes keep their guarantees.
func (w *Writer) Seek(offset int) {
	w.cursor = offset
	w.ensure(offset)
}

// EnsureSize grows capacity to at least n, leaving the cursor, high-water
// mark and contents untouched. It returns the resulting capacity.
func (w *Writer) EnsureSize(n int) int {
	w.ensure(n)
	return len(w.buf)
}

// Bytes returns a newly allocated copy of the written output: exactly the
// first Len() bytes of the buffer.
func (w *Writer) Bytes() []byte {
	out := make([]byte, w.maxCursor)
	copy(out, w.buf[:w.maxCursor])
	return out
}

func (w *Writer) WriteUint8(v uint8) {
	w.reserve(1)[0] = v
}

func (w *Writer) WriteInt8(v int8) {
	w.WriteUint8(uint8(v))
}

// WriteBool writes a single byte: 1 for true, 0 for false.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
}

func (w *Writer) WriteUint16LE(v uint16) {
	LittleEndian.order().PutUint16(w.reserve(2), v)
}

func (w *Writer) WriteUint16BE(v uint16) {
	BigEndian.order().PutUint16(w.reserve(2), v)
}

func (w *Writer) WriteInt16LE(v int16) {
	w.WriteUint16LE(uint16(v))
}

func (w *Writer) WriteInt16BE(v int16) {
	w.WriteUint16BE(uint16(v))
}

func (w *Writer) WriteUint32LE(v uint32) {
	LittleEndian.order().PutUint32(w.reserve(4), v)
}

func (w *Writer) WriteUint32BE(v uint32) {
	BigEndian.order().PutUint32(w.reserve(4), v)
}

func (w *Writer) WriteInt32LE(v int32) {
	w.WriteUint32LE(uint32(v))
}

func (w *Writer) WriteInt32BE(v int32) {
	w.WriteUint32BE(uint32(v))
}

func (w *Writer) WriteUint64LE(v uint64) {
	LittleEndian.order().PutUint64(w.reserve(8), v)
}

func (w *Writer) WriteUint64BE(v uint64) {
	BigEndian.order().PutUint64(w.reserve(8), v)
}

func (w *Writer) WriteInt64LE(v int64) {
	w.WriteUint64LE(uint64(v))
}

func (w *Writer) WriteInt64BE(v int64) {
	w.WriteUint64BE(uint64(v))
}

func (w *Writer) WriteFloat32LE(v float32) {
	w.WriteUint32LE(math.Float32bits(v))
}

func (w *Writer) WriteFloat32BE(v float32) {
	w.WriteUint32BE(math.Float32bits(v))
}

// WriteFloat32 is an alias for WriteFloat32BE. Note the asymmetry: the bare
// float operations default to big-endian while the generic Write dispatcher
// defaults to little-endian.
func (w *Writer) WriteFloat32(v float32) {
	w.WriteFloat32BE(v)
}

func (w *Writer) WriteFloat64LE(v float64) {
	w.WriteUint64LE(math.Float64bits(v))
}

func (w *Writer) WriteFloat64BE(v float64) {
	w.WriteUint64BE(math.Float64bits(v))
}

// WriteFloat64 is an alias for WriteFloat64BE. See WriteFloat32 for the
// default-endianness asymmetry.
func (w *Writer) WriteFloat64(v float64) {
	w.WriteFloat64BE(v)
}

// WriteString writes the UTF-8 bytes of s followed by a single zero
// terminator, advancing past the terminator.
func (w *Writer) WriteString(s string) {
	copy(w.reserve(len(s)), s)
	w.WriteUint8(0)
}

// WriteChars writes the UTF-8 bytes of s with no terminator.
func (w *Writer) WriteChars(s string) {
	copy(w.reserve(len(s)), s)
}

// WriteBytes writes b verbatim.
func (w *Writer) WriteBytes(b []byte) {
	copy(w.reserve(len(b)), b)
}

// Write encodes a single value selected by kind. The value's dynamic type
// must match the kind. Multi-byte kinds use the given byte order, defaulting
// to little-endian when omitted.
func (w *Writer) Write(value interface{}, kind Kind, order ...ByteOrder) error {
	o := LittleEndian
	if len(order) > 0 {
		o = order[0]
	}

	switch kind {
	case KindUint8:
		v, ok := value.(uint8)
		if !ok {
			return mismatch(value, kind)
		}
		w.WriteUint8(v)
	case KindInt8:
		v, ok := value.(int8)
		if !ok {
			return mismatch(value, kind)
		}
		w.WriteInt8(v)
	case KindBool:
		v, ok := value.(bool)
		if !ok {
			return mismatch(value, kind)
		}
		w.WriteBool(v)
	case KindUint16:
		v, ok := value.(uint16)
		if !ok {
			return mismatch(value, kind)
		}
		if o == BigEndian {
			w.WriteUint16BE(v)
		} else {
			w.WriteUint16LE(v)
		}
	case KindInt16:
		v, ok := value.(int16)
		if !ok {
			return mismatch(value, kind)
		}
		if o == BigEndian {
			w.WriteInt16BE(v)
		} else {
			w.WriteInt16LE(v)
		}
	case KindUint32:
		v, ok := value.(uint32)
		if !ok {
			return mismatch(value, kind)
		}
		if o == BigEndian {
			w.WriteUint32BE(v)
		} else {
			w.WriteUint32LE(v)
		}
	case KindInt32:
		v, ok := value.(int32)
		if !ok {
			return mismatch(value, kind)
		}
		if o == BigEndian {
			w.WriteInt32BE(v)
		} else {
			w.WriteInt32LE(v)
		}
	case KindUint64:
		v, ok := value.(uint64)
		if !ok {
			return mismatch(value, kind)
		}
		if o == BigEndian {
			w.WriteUint64BE(v)
		} else {
			w.WriteUint64LE(v)
		}
	case KindInt64:
		v, ok := value.(int64)
		if !ok {
			return mismatch(value, kind)
		}
		if o == BigEndian {
			w.WriteInt64BE(v)
		} else {
			w.WriteInt64LE(v)
		}
	case KindFloat32:
		v, ok := value.(float32)
		if !ok {
			return mismatch(value, kind)
		}
		if o == BigEndian {
			w.WriteFloat32BE(v)
		} else {
			w.WriteFloat32LE(v)
		}
	case KindFloat64:
		v, ok := value.(float64)
		if !ok {
			return mismatch(value, kind)
		}
		if o == BigEndian {
			w.WriteFloat64BE(v)
		} else {
			w.WriteFloat64LE(v)
		}
	case KindString:
		v, ok := value.(string)
		if !ok {
			return mismatch(value, kind)
		}
		w.WriteString(v)
	default:
		return errors.Errorf("kind %d cannot be written", int(kind))
	}

	return nil
}

func mismatch(value interface{}, kind Kind) error {
	return errors.Errorf("value of type %T cannot be written as %s", value, kind)
}
