package mbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterEndianness(t *testing.T) {
	w := NewWriter()
	w.WriteUint32LE(0x12345678)
	w.WriteUint32BE(0x12345678)
	require.Equal(t, []byte{0x78, 0x56, 0x34, 0x12, 0x12, 0x34, 0x56, 0x78}, w.Bytes())
}

func TestWriterFloats(t *testing.T) {
	w := NewWriter()
	w.WriteFloat32BE(1.5)
	w.WriteFloat32LE(1.5)
	w.WriteFloat32(1.5) // bare alias defaults to big-endian
	require.Equal(t, []byte{
		0x3f, 0xc0, 0x00, 0x00,
		0x00, 0x00, 0xc0, 0x3f,
		0x3f, 0xc0, 0x00, 0x00,
	}, w.Bytes())

	w = NewWriter()
	w.WriteFloat64(1.5)
	require.Equal(t, []byte{0x3f, 0xf8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, w.Bytes())
}

func TestWriterString(t *testing.T) {
	w := NewWriter()
	w.WriteString("test")
	require.Equal(t, []byte{116, 101, 115, 116, 0}, w.Bytes())

	w = NewWriter()
	w.WriteChars("test")
	require.Equal(t, []byte{116, 101, 115, 116}, w.Bytes())
}

func TestWriterGrowth(t *testing.T) {
	w := NewWriterSize(2)
	w.WriteUint8(1)
	w.WriteUint8(1)
	w.WriteUint8(1)
	require.Equal(t, 4, w.Cap())
	require.Equal(t, 3, w.Len())

	// Doubling 4 to 8 is short of cursor(3)+size(8), so capacity lands on
	// exactly the needed 11 bytes.
	w.WriteUint64LE(1)
	require.Equal(t, 11, w.Cap())
	require.Equal(t, []byte{1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0}, w.Bytes())
}

func TestWriterGrowthFromZero(t *testing.T) {
	w := NewWriterSize(0)
	require.Equal(t, 0, w.Cap())
	w.WriteUint8(7)
	require.Equal(t, 1, w.Cap())
	require.Equal(t, []byte{7}, w.Bytes())
}

func TestWriterGrowthLarge(t *testing.T) {
	w := NewWriterSize(2048)
	w.Seek(2048)
	w.WriteUint8(1)
	require.Equal(t, 2048+2048, w.Cap())
}

func TestWriterSeek(t *testing.T) {
	w := NewWriter()
	w.WriteUint8(1)
	w.Seek(8)
	w.WriteUint8(2)

	out := w.Bytes()
	require.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0, 2}, out)
	require.Equal(t, 9, w.Len())
}

func TestWriterSeekBackPatch(t *testing.T) {
	w := NewWriter()
	w.WriteUint32BE(0)
	w.WriteString("body")
	w.Seek(0)
	w.WriteUint32BE(5)

	// Overwriting earlier bytes does not shrink the output.
	require.Equal(t, []byte{0, 0, 0, 5, 'b', 'o', 'd', 'y', 0}, w.Bytes())
	require.Equal(t, 4, w.Pos())
}

func TestWriterSeekBeyondCapacityGrows(t *testing.T) {
	w := NewWriterSize(2)
	w.Seek(100)
	require.True(t, w.Cap() >= 100)
	require.Equal(t, 0, w.Len())
}

func TestWriterEnsureSize(t *testing.T) {
	w := NewWriterSize(4)
	w.WriteUint8(9)

	// No-op when the capacity already suffices.
	require.Equal(t, 4, w.EnsureSize(2))
	require.Equal(t, 4, w.Cap())
	require.Equal(t, 1, w.Pos())
	require.Equal(t, 1, w.Len())
	require.Equal(t, []byte{9}, w.Bytes())

	got := w.EnsureSize(100)
	require.Equal(t, w.Cap(), got)
	require.True(t, got >= 100)
	require.Equal(t, 1, w.Pos())
	require.Equal(t, 1, w.Len())
	require.Equal(t, []byte{9}, w.Bytes())
}

func TestWriterBytesIsSnapshot(t *testing.T) {
	w := NewWriter()
	w.WriteUint8(1)
	w.WriteUint8(2)

	out := w.Bytes()
	out[0] = 0xff
	require.Equal(t, []byte{1, 2}, w.Bytes())

	// Cursor position does not affect the export.
	w.Seek(0)
	require.Equal(t, []byte{1, 2}, w.Bytes())
}

func TestWriterGenericDispatch(t *testing.T) {
	w := NewWriter()

	// The dispatcher defaults to little-endian.
	require.NoError(t, w.Write(uint32(0x12345678), KindUint32))
	require.NoError(t, w.Write(uint16(0x1234), KindUint16, BigEndian))
	require.NoError(t, w.Write(true, KindBool))
	require.NoError(t, w.Write("hi", KindString))
	require.Equal(t, []byte{0x78, 0x56, 0x34, 0x12, 0x12, 0x34, 1, 'h', 'i', 0}, w.Bytes())
}

func TestWriterGenericDispatchErrors(t *testing.T) {
	w := NewWriter()

	err := w.Write("nope", KindUint32)
	require.Error(t, err)
	require.Contains(t, err.Error(), "uint32")

	err = w.Write(uint8(1), Kind(99))
	require.Error(t, err)
	require.Equal(t, 0, w.Len())
}

func TestWriterDefaultCapacity(t *testing.T) {
	w := NewWriter()
	require.Equal(t, 256, w.Cap())
	require.Equal(t, 0, w.Len())
	require.Equal(t, 0, w.Pos())
	require.Equal(t, []byte{}, w.Bytes())
}

func TestWriterNegativeSize(t *testing.T) {
	w := NewWriterSize(-1)
	require.Equal(t, 0, w.Cap())
}
