package mbuf

import (
	"math"

	"github.com/pkg/errors"
)

// ErrOutOfBounds is the cause of any read whose width extends past the end
// of the source buffer.
var ErrOutOfBounds = errors.New("read out of bounds")

// Reader decodes binary primitives from a byte slice, advancing a cursor by
// the exact width of each operation.
//
// The source slice is caller-owned: it is never copied or mutated. After a
// failed read the cursor is left where the read began and the Reader should
// be re-positioned with Seek before further use.
type Reader struct {
	source []byte
	cursor int
}

// NewReader returns a Reader over source with the cursor at offset 0.
func NewReader(source []byte) *Reader {
	return &Reader{source: source}
}

// Pos returns the current cursor offset.
func (r *Reader) Pos() int {
	return r.cursor
}

// Len returns the total length of the source buffer.
func (r *Reader) Len() int {
	return len(r.source)
}

// HasMore reports whether any unread bytes remain.
func (r *Reader) HasMore() bool {
	return r.cursor < len(r.source)
}

// Seek sets the cursor to an absolute offset. The offset is not validated
// here; an out-of-range cursor surfaces as an error on the next read.
func (r *Reader) Seek(offset int) {
	r.cursor = offset
}

// take returns the next n source bytes and advances the cursor. The
// returned slice aliases the source and must not escape to callers.
func (r *Reader) take(n int) ([]byte, error) {
	if r.cursor < 0 || n < 0 || r.cursor+n > len(r.source) {
		return nil, errors.Wrapf(ErrOutOfBounds, "%d bytes at offset %d of %d", n, r.cursor, len(r.source))
	}
	b := r.source[r.cursor : r.cursor+n]
	r.cursor += n
	return b, nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

// ReadBool reads one byte; any nonzero value is true.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadUint8()
	return v != 0, err
}

func (r *Reader) ReadUint16LE() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return LittleEndian.order().Uint16(b), nil
}

func (r *Reader) ReadUint16BE() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return BigEndian.order().Uint16(b), nil
}

func (r *Reader) ReadInt16LE() (int16, error) {
	v, err := r.ReadUint16LE()
	return int16(v), err
}

func (r *Reader) ReadInt16BE() (int16, error) {
	v, err := r.ReadUint16BE()
	return int16(v), err
}

func (r *Reader) ReadUint32LE() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return LittleEndian.order().Uint32(b), nil
}

func (r *Reader) ReadUint32BE() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return BigEndian.order().Uint32(b), nil
}

func (r *Reader) ReadInt32LE() (int32, error) {
	v, err := r.ReadUint32LE()
	return int32(v), err
}

func (r *Reader) ReadInt32BE() (int32, error) {
	v, err := r.ReadUint32BE()
	return int32(v), err
}

func (r *Reader) ReadUint64LE() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return LittleEndian.order().Uint64(b), nil
}

func (r *Reader) ReadUint64BE() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return BigEndian.order().Uint64(b), nil
}

func (r *Reader) ReadInt64LE() (int64, error) {
	v, err := r.ReadUint64LE()
	return int64(v), err
}

func (r *Reader) ReadInt64BE() (int64, error) {
	v, err := r.ReadUint64BE()
	return int64(v), err
}

func (r *Reader) ReadFloat32LE() (float32, error) {
	v, err := r.ReadUint32LE()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadFloat32BE() (float32, error) {
	v, err := r.ReadUint32BE()
	return math.Float32frombits(v), err
}

// ReadFloat32 is an alias for ReadFloat32BE. Note the asymmetry: the bare
// float operations default to big-endian while the generic Read dispatcher
// defaults to little-endian.
func (r *Reader) ReadFloat32() (float32, error) {
	return r.ReadFloat32BE()
}

func (r *Reader) ReadFloat64LE() (float64, error) {
	v, err := r.ReadUint64LE()
	return math.Float64frombits(v), err
}

func (r *Reader) ReadFloat64BE() (float64, error) {
	v, err := r.ReadUint64BE()
	return math.Float64frombits(v), err
}

// ReadFloat64 is an alias for ReadFloat64BE. See ReadFloat32 for the
// default-endianness asymmetry.
func (r *Reader) ReadFloat64() (float64, error) {
	return r.ReadFloat64BE()
}

// ReadString reads bytes until a zero terminator and returns them as UTF-8
// text, excluding the terminator. The cursor ends just past the terminator.
// A missing terminator is an out-of-bounds error.
func (r *Reader) ReadString() (string, error) {
	start := r.cursor
	var s []byte
	for {
		c, err := r.ReadUint8()
		if err != nil {
			r.cursor = start
			return "", errors.Wrap(err, "unterminated string")
		}
		if c == 0 {
			break
		}
		s = append(s, c)
	}
	return string(s), nil
}

// ReadBytes returns a copy of the next n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadChars reads exactly n bytes and returns them as UTF-8 text. No
// terminator is consumed or expected.
func (r *Reader) ReadChars(n int) (string, error) {
	b, err := r.take(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadRest returns a copy of all bytes from the cursor to the end of the
// source and moves the cursor to the end.
func (r *Reader) ReadRest() []byte {
	if r.cursor < 0 || r.cursor > len(r.source) {
		r.cursor = len(r.source)
		return nil
	}
	out := make([]byte, len(r.source)-r.cursor)
	copy(out, r.source[r.cursor:])
	r.cursor = len(r.source)
	return out
}

// Read decodes a single value selected by kind. Multi-byte kinds use the
// given byte order, defaulting to little-endian when omitted.
func (r *Reader) Read(kind Kind, order ...ByteOrder) (interface{}, error) {
	o := LittleEndian
	if len(order) > 0 {
		o = order[0]
	}

	switch kind {
	case KindUint8:
		v, err := r.ReadUint8()
		return v, err
	case KindInt8:
		v, err := r.ReadInt8()
		return v, err
	case KindBool:
		v, err := r.ReadBool()
		return v, err
	case KindUint16:
		if o == BigEndian {
			v, err := r.ReadUint16BE()
			return v, err
		}
		v, err := r.ReadUint16LE()
		return v, err
	case KindInt16:
		if o == BigEndian {
			v, err := r.ReadInt16BE()
			return v, err
		}
		v, err := r.ReadInt16LE()
		return v, err
	case KindUint32:
		if o == BigEndian {
			v, err := r.ReadUint32BE()
			return v, err
		}
		v, err := r.ReadUint32LE()
		return v, err
	case KindInt32:
		if o == BigEndian {
			v, err := r.ReadInt32BE()
			return v, err
		}
		v, err := r.ReadInt32LE()
		return v, err
	case KindUint64:
		if o == BigEndian {
			v, err := r.ReadUint64BE()
			return v, err
		}
		v, err := r.ReadUint64LE()
		return v, err
	case KindInt64:
		if o == BigEndian {
			v, err := r.ReadInt64BE()
			return v, err
		}
		v, err := r.ReadInt64LE()
		return v, err
	case KindFloat32:
		if o == BigEndian {
			v, err := r.ReadFloat32BE()
			return v, err
		}
		v, err := r.ReadFloat32LE()
		return v, err
	case KindFloat64:
		if o == BigEndian {
			v, err := r.ReadFloat64BE()
			return v, err
		}
		v, err := r.ReadFloat64LE()
		return v, err
	case KindString:
		v, err := r.ReadString()
		return v, err
	default:
		return nil, errors.Errorf("kind %d cannot be read", int(kind))
	}
}
